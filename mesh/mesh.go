// Package mesh turns simplified outline paths into an indexed triangle
// mesh ready for rendering.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	libtess2 "github.com/hajimehoshi/go-libtess2"

	"github.com/gmlewis/spritemesh/internal/logging"
	"github.com/gmlewis/spritemesh/outline"
)

// ErrTessellator reports output from the tessellator that breaks its
// contract: a partial triangle or an index out of range.
var ErrTessellator = errors.New("mesh: invalid tessellator output")

const (
	// DefaultEpsilon is the weld distance in pixels.
	DefaultEpsilon = 1e-3
	// DefaultPixelsPerUnit is used when Options.PixelsPerUnit is zero.
	DefaultPixelsPerUnit = 100
)

// Vertex is one welded mesh vertex.
type Vertex struct {
	// Position is (pixel - pivot) / pixels per unit.
	Position mgl32.Vec2
	// UV is pixel / texture size.
	UV mgl32.Vec2
}

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	Min, Max mgl32.Vec2
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool { return r.Max[0] <= r.Min[0] || r.Max[1] <= r.Min[1] }

// Mesh is a deduplicated vertex list and a flat triangle index list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	// Bounds covers every vertex in pixel space.
	Bounds Rect
}

// TriangleCount returns len(Indices)/3.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Options maps pixel coordinates into mesh space.
type Options struct {
	TextureSize   mgl32.Vec2
	Pivot         mgl32.Vec2
	PixelsPerUnit float32
	// Epsilon is the weld distance; DefaultEpsilon when zero.
	Epsilon float32
}

// Decompose tessellates every path of ps together with the nonzero winding
// rule, so holes wound against their outer path stay empty. Paths with
// fewer than three vertices are ignored and an empty set yields an empty
// mesh.
func Decompose(ps outline.PathSet, opts Options) (*Mesh, error) {
	var contours []libtess2.Contour
	for _, p := range ps {
		if p.Len() < 3 {
			continue
		}
		c := make(libtess2.Contour, p.Len())
		for i, v := range p.Vertices {
			c[i] = libtess2.Vertex{X: float32(v.Pos[0]), Y: float32(v.Pos[1])}
		}
		contours = append(contours, c)
	}
	if len(contours) == 0 {
		return &Mesh{}, nil
	}

	elems, verts, err := libtess2.Tesselate(contours, libtess2.WindingRuleNonzero)
	if err != nil {
		return nil, fmt.Errorf("Tesselate: %w: %v", ErrTessellator, err)
	}
	if len(elems) == 0 {
		logging.Logger().Debug("mesh: tessellator produced no triangles", "contours", len(contours))
		return &Mesh{}, nil
	}
	if len(elems)%3 != 0 {
		return nil, fmt.Errorf("Tesselate: %w: %v indices", ErrTessellator, len(elems))
	}

	eps := opts.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	w := newWelder(eps)
	remap := make([]uint32, len(verts))
	for i, v := range verts {
		remap[i] = w.add(mgl32.Vec2{v.X, v.Y})
	}

	m := &Mesh{}
	var dropped int
	for t := 0; t < len(elems); t += 3 {
		var tri [3]uint32
		for k := 0; k < 3; k++ {
			e := elems[t+k]
			if e < 0 || e >= len(verts) {
				return nil, fmt.Errorf("Tesselate: %w: index %v of %v vertices", ErrTessellator, e, len(verts))
			}
			tri[k] = remap[e]
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] || flat(w.points, tri) {
			dropped++
			continue
		}
		m.Indices = append(m.Indices, tri[:]...)
	}
	if dropped > 0 {
		logging.Logger().Debug("mesh: dropped triangles collapsed by snapping", "count", dropped)
	}

	m.build(compact(w.points, m.Indices), opts)
	return m, nil
}

// compact drops the points no index refers to and renumbers indices in
// place, numbering vertices in order of first use.
func compact(pts []mgl32.Vec2, indices []uint32) []mgl32.Vec2 {
	renum := make([]int, len(pts))
	for i := range renum {
		renum[i] = -1
	}
	var out []mgl32.Vec2
	for i, idx := range indices {
		if renum[idx] < 0 {
			renum[idx] = len(out)
			out = append(out, pts[idx])
		}
		indices[i] = uint32(renum[idx])
	}
	return out
}

// flat reports whether the snapped triangle tri covers no area.
func flat(pts []mgl32.Vec2, tri [3]uint32) bool {
	a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
	e1, e2 := b.Sub(a), c.Sub(a)
	return e1[0]*e2[1]-e1[1]*e2[0] == 0
}

// build fills in the vertex attributes and the covering rectangle.
func (m *Mesh) build(pts []mgl32.Vec2, opts Options) {
	ppu := opts.PixelsPerUnit
	if ppu <= 0 {
		ppu = DefaultPixelsPerUnit
	}

	m.Vertices = make([]Vertex, len(pts))
	for i, p := range pts {
		var uv mgl32.Vec2
		for k := 0; k < 2; k++ {
			if opts.TextureSize[k] > 0 {
				uv[k] = p[k] / opts.TextureSize[k]
			}
		}
		m.Vertices[i] = Vertex{
			Position: p.Sub(opts.Pivot).Mul(1 / ppu),
			UV:       uv,
		}

		if i == 0 {
			m.Bounds = Rect{Min: p, Max: p}
			continue
		}
		for k := 0; k < 2; k++ {
			if p[k] < m.Bounds.Min[k] {
				m.Bounds.Min[k] = p[k]
			}
			if p[k] > m.Bounds.Max[k] {
				m.Bounds.Max[k] = p[k]
			}
		}
	}
}
