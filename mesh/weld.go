package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// welder snaps tessellator output vertices to the half-pixel grid and
// merges any that land within epsilon of a vertex already emitted, so
// no two emitted vertices share a position.
type welder struct {
	eps    float32
	points []mgl32.Vec2
}

func newWelder(eps float32) *welder {
	return &welder{eps: eps}
}

// snap rounds v to the nearest half pixel.
func snap(v float32) float32 { return math32.Round(v*2) / 2 }

// add returns the index of the welded vertex for p. The scan is linear;
// sprite meshes stay small enough that a spatial index does not pay off.
func (w *welder) add(p mgl32.Vec2) uint32 {
	p = mgl32.Vec2{snap(p[0]), snap(p[1])}
	for i, q := range w.points {
		if math32.Abs(p[0]-q[0]) <= w.eps && math32.Abs(p[1]-q[1]) <= w.eps {
			return uint32(i)
		}
	}
	w.points = append(w.points, p)
	return uint32(len(w.points) - 1)
}
