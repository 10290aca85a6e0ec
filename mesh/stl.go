package mesh

import (
	"fmt"

	"github.com/gmlewis/spritemesh/stl"
)

// TriWriter is a writer that accepts STL triangles.
type TriWriter interface {
	Write(t *stl.Tri) error
}

var _ TriWriter = &stl.Client{}

type edgeKey struct{ a, b uint32 }

// WriteSTL writes m as a closed slab depth units thick: the mesh as the
// front face at z=depth, a mirrored back face at z=0, and side walls along
// every boundary edge.
func WriteSTL(w TriWriter, m *Mesh, depth float32) error {
	pos := func(i uint32, z float32) [3]float32 {
		p := m.Vertices[i].Position
		return [3]float32{p[0], p[1], z}
	}

	// Edge use counts decide which edges are on the boundary.
	uses := map[edgeKey]int{}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.frontFacing(t)
		for _, e := range []edgeKey{{a, b}, {b, c}, {c, a}} {
			uses[e]++
		}

		front := stl.Tri{N: [3]float32{0, 0, 1}, V1: pos(a, depth), V2: pos(b, depth), V3: pos(c, depth)}
		if err := w.Write(&front); err != nil {
			return fmt.Errorf("front face: %w", err)
		}
		back := stl.Tri{N: [3]float32{0, 0, -1}, V1: pos(a, 0), V2: pos(c, 0), V3: pos(b, 0)}
		if err := w.Write(&back); err != nil {
			return fmt.Errorf("back face: %w", err)
		}
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.frontFacing(t)
		for _, e := range []edgeKey{{a, b}, {b, c}, {c, a}} {
			if uses[edgeKey{e.b, e.a}] > 0 {
				continue // shared with a neighbour
			}
			if err := m.writeWall(w, e, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// frontFacing returns triangle t wound counter-clockwise in mesh space.
func (m *Mesh) frontFacing(t int) (a, b, c uint32) {
	a, b, c = m.Indices[t], m.Indices[t+1], m.Indices[t+2]
	pa, pb, pc := m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position
	e1, e2 := pb.Sub(pa), pc.Sub(pa)
	if e1[0]*e2[1]-e1[1]*e2[0] < 0 {
		b, c = c, b
	}
	return a, b, c
}

func (m *Mesh) writeWall(w TriWriter, e edgeKey, depth float32) error {
	p, q := m.Vertices[e.a].Position, m.Vertices[e.b].Position
	d := q.Sub(p)
	n := [3]float32{d[1], -d[0], 0}
	if l := d.Len(); l > 0 {
		n[0], n[1] = n[0]/l, n[1]/l
	}

	p0, p1 := [3]float32{p[0], p[1], 0}, [3]float32{p[0], p[1], depth}
	q0, q1 := [3]float32{q[0], q[1], 0}, [3]float32{q[0], q[1], depth}
	for _, tri := range []stl.Tri{
		{N: n, V1: p0, V2: q0, V3: q1},
		{N: n, V1: p0, V2: q1, V3: p1},
	} {
		if err := w.Write(&tri); err != nil {
			return fmt.Errorf("side wall: %w", err)
		}
	}
	return nil
}
