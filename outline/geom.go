package outline

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length below which a vector is treated as degenerate.
const Epsilon = 1e-9

// Cross returns the z component of the 2D cross product a x b.
func Cross(a, b mgl64.Vec2) float64 { return a[0]*b[1] - a[1]*b[0] }

// Orient2D returns twice the signed area of triangle a, b, c.
func Orient2D(a, b, c mgl64.Vec2) float64 { return Cross(b.Sub(a), c.Sub(a)) }

// SafeNormalize returns v scaled to unit length, or the zero vector if v
// is degenerate.
func SafeNormalize(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}

// EdgeNormal returns the outward unit normal of the edge a->b. With y
// pointing down and solid pixels on the right, outward is to the left.
func EdgeNormal(a, b mgl64.Vec2) mgl64.Vec2 {
	d := b.Sub(a)
	return SafeNormalize(mgl64.Vec2{d[1], -d[0]})
}

// SegmentsIntersect reports whether segment p1-p2 crosses segment q1-q2.
// Segments that only share an endpoint do not intersect; collinear
// overlapping segments do.
func SegmentsIntersect(p1, p2, q1, q2 mgl64.Vec2) bool {
	if p1 == q1 || p1 == q2 || p2 == q1 || p2 == q2 {
		return collinearOverlap(p1, p2, q1, q2)
	}
	d1 := Orient2D(q1, q2, p1)
	d2 := Orient2D(q1, q2, p2)
	d3 := Orient2D(p1, p2, q1)
	d4 := Orient2D(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

// collinearOverlap handles segments sharing an endpoint: they intersect
// only when they fold back over each other.
func collinearOverlap(p1, p2, q1, q2 mgl64.Vec2) bool {
	if Orient2D(p1, p2, q1) != 0 || Orient2D(p1, p2, q2) != 0 {
		return false
	}
	var shared, a, b mgl64.Vec2
	switch {
	case p1 == q1:
		shared, a, b = p1, p2, q2
	case p1 == q2:
		shared, a, b = p1, p2, q1
	case p2 == q1:
		shared, a, b = p2, p1, q2
	default:
		shared, a, b = p2, p1, q1
	}
	return a.Sub(shared).Dot(b.Sub(shared)) > 0
}

func onSegment(a, b, p mgl64.Vec2) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}

// PointLineDistance returns the perpendicular distance from p to the line
// through a and b, or the distance to a when a and b coincide.
func PointLineDistance(p, a, b mgl64.Vec2) float64 {
	d := b.Sub(a)
	l := d.Len()
	if l < Epsilon {
		return p.Sub(a).Len()
	}
	return math.Abs(Cross(d, p.Sub(a))) / l
}
