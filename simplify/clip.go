package simplify

import "github.com/go-gl/mathgl/mgl64"

// clipToRect clips the closed polygon pts to the rectangle [min,max] one
// edge at a time. Vertex order, and so winding, is preserved.
func clipToRect(pts []mgl64.Vec2, min, max mgl64.Vec2) []mgl64.Vec2 {
	planes := []struct {
		axis  int
		value float64
		keep  func(v, limit float64) bool
	}{
		{0, min[0], func(v, l float64) bool { return v >= l }},
		{0, max[0], func(v, l float64) bool { return v <= l }},
		{1, min[1], func(v, l float64) bool { return v >= l }},
		{1, max[1], func(v, l float64) bool { return v <= l }},
	}

	for _, pl := range planes {
		if len(pts) == 0 {
			break
		}
		in := pts
		pts = nil
		prev := in[len(in)-1]
		for _, cur := range in {
			curIn := pl.keep(cur[pl.axis], pl.value)
			prevIn := pl.keep(prev[pl.axis], pl.value)
			switch {
			case curIn && !prevIn:
				pts = append(pts, cut(prev, cur, pl.axis, pl.value), cur)
			case curIn:
				pts = append(pts, cur)
			case prevIn:
				pts = append(pts, cut(prev, cur, pl.axis, pl.value))
			}
			prev = cur
		}
	}
	return pts
}

// cut returns the point of segment a-b whose coordinate on axis equals v.
func cut(a, b mgl64.Vec2, axis int, v float64) mgl64.Vec2 {
	t := (v - a[axis]) / (b[axis] - a[axis])
	p := a.Add(b.Sub(a).Mul(t))
	p[axis] = v
	return p
}
