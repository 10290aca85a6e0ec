// Package outline defines the closed polygon paths produced by the contour
// tracer and consumed by the simplifiers, the mesh decomposer, and any
// interactive polygon editor.
//
// All coordinates are in pixel space with y growing downward. Every path is
// oriented so that solid pixels lie to the right of the direction of travel:
// outer boundaries ('+') have a positive shoelace area and holes ('-') a
// negative one.
package outline

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Sign classifies a path as an outer boundary or a hole.
type Sign byte

const (
	// Outer encloses solid pixels.
	Outer Sign = '+'
	// Hole encloses transparent pixels inside an outer boundary.
	Hole Sign = '-'
)

func (s Sign) String() string { return string(s) }

// Vertex is one corner of a Path.
type Vertex struct {
	Pos mgl64.Vec2
	// Normal is the outward unit normal; valid only after RecomputeNormals.
	Normal mgl64.Vec2
	// Cost is the simplification priority. Negative means "do not remove".
	Cost float64
	// Convex is +1 when the vertex pokes out of the solid region, -1 otherwise.
	Convex int
	// Split is used by the segment-splitting simplifier.
	Split int
}

// Path is a cyclic sequence of vertices.
type Path struct {
	Vertices []Vertex
	Sign     Sign
	// Area is the absolute enclosed area in square pixels.
	Area float64
}

// PathSet is every path detected in one image.
type PathSet []*Path

// New returns a path through pts.
func New(sign Sign, pts ...mgl64.Vec2) *Path {
	p := &Path{Sign: sign, Vertices: make([]Vertex, len(pts))}
	for i, pt := range pts {
		p.Vertices[i].Pos = pt
	}
	p.Area = abs(p.SignedArea())
	return p
}

func (p *Path) String() string {
	return fmt.Sprintf("%v path: %v vertices, area %.1f", p.Sign, len(p.Vertices), p.Area)
}

// Len returns the number of vertices.
func (p *Path) Len() int { return len(p.Vertices) }

// At returns the position of vertex i, wrapping around the cycle.
func (p *Path) At(i int) mgl64.Vec2 { return p.Vertices[p.wrap(i)].Pos }

// Set moves vertex i.
func (p *Path) Set(i int, pos mgl64.Vec2) { p.Vertices[p.wrap(i)].Pos = pos }

// Insert adds a vertex at pos before index i. i may equal Len to append.
func (p *Path) Insert(i int, pos mgl64.Vec2) {
	p.Vertices = append(p.Vertices, Vertex{})
	copy(p.Vertices[i+1:], p.Vertices[i:])
	p.Vertices[i] = Vertex{Pos: pos}
}

// Remove deletes vertex i.
func (p *Path) Remove(i int) {
	i = p.wrap(i)
	p.Vertices = append(p.Vertices[:i], p.Vertices[i+1:]...)
}

func (p *Path) wrap(i int) int {
	n := len(p.Vertices)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Points returns a copy of the vertex positions.
func (p *Path) Points() []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, len(p.Vertices))
	for i, v := range p.Vertices {
		pts[i] = v.Pos
	}
	return pts
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	c := *p
	c.Vertices = append([]Vertex(nil), p.Vertices...)
	return &c
}

// SignedArea returns the shoelace area of the path.
func (p *Path) SignedArea() float64 {
	var sum float64
	n := len(p.Vertices)
	for i, v := range p.Vertices {
		sum += Cross(v.Pos, p.Vertices[(i+1)%n].Pos)
	}
	return 0.5 * sum
}

// Reverse reverses the vertex order in place.
func (p *Path) Reverse() {
	for l, r := 0, len(p.Vertices)-1; l < r; l, r = l+1, r-1 {
		p.Vertices[l], p.Vertices[r] = p.Vertices[r], p.Vertices[l]
	}
}

// Orient reverses the path if its winding disagrees with its sign and
// refreshes Area.
func (p *Path) Orient() {
	a := p.SignedArea()
	if (p.Sign == Outer && a < 0) || (p.Sign == Hole && a > 0) {
		p.Reverse()
	}
	p.Area = abs(a)
}

// Bounds returns the axis-aligned bounding box of the path.
func (p *Path) Bounds() (min, max mgl64.Vec2) {
	if len(p.Vertices) == 0 {
		return min, max
	}
	min, max = p.Vertices[0].Pos, p.Vertices[0].Pos
	for _, v := range p.Vertices[1:] {
		for k := 0; k < 2; k++ {
			if v.Pos[k] < min[k] {
				min[k] = v.Pos[k]
			}
			if v.Pos[k] > max[k] {
				max[k] = v.Pos[k]
			}
		}
	}
	return min, max
}

// RecomputeNormals sets each vertex normal to the normalized sum of the
// outward normals of its two adjacent edges.
func (p *Path) RecomputeNormals() {
	n := len(p.Vertices)
	if n < 3 {
		return
	}
	for i := range p.Vertices {
		prev := p.Vertices[(i+n-1)%n].Pos
		cur := p.Vertices[i].Pos
		next := p.Vertices[(i+1)%n].Pos
		p.Vertices[i].Normal = SafeNormalize(EdgeNormal(prev, cur).Add(EdgeNormal(cur, next)))
	}
}

// Offset moves every vertex by d along its normal. RecomputeNormals must
// have been called first.
func (p *Path) Offset(d float64) {
	if d == 0 {
		return
	}
	for i := range p.Vertices {
		p.Vertices[i].Pos = p.Vertices[i].Pos.Add(p.Vertices[i].Normal.Mul(d))
	}
}

// EdgeIntersects reports whether the segment a-b properly crosses any edge
// of the path other than those touching vertex indices skip.
func (p *Path) EdgeIntersects(a, b mgl64.Vec2, skip ...int) bool {
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if contains(skip, i) || contains(skip, j) {
			continue
		}
		if SegmentsIntersect(a, b, p.Vertices[i].Pos, p.Vertices[j].Pos) {
			return true
		}
	}
	return false
}

// SelfIntersects reports whether any two non-adjacent edges of the path
// cross.
func (p *Path) SelfIntersects() bool {
	n := len(p.Vertices)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := p.Vertices[i].Pos, p.Vertices[(i+1)%n].Pos
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if SegmentsIntersect(a, b, p.Vertices[j].Pos, p.Vertices[(j+1)%n].Pos) {
				return true
			}
		}
	}
	return false
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// VertexCount returns the total number of vertices in the set.
func (ps PathSet) VertexCount() int {
	var n int
	for _, p := range ps {
		n += len(p.Vertices)
	}
	return n
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
