// Package binvox writes the solid pixels of an alpha mask as a one voxel
// thick binvox model, handy for checking tolerance settings in a voxel
// viewer.
package binvox

import (
	"fmt"

	"github.com/gmlewis/stldice/v4/binvox"

	"github.com/gmlewis/spritemesh/mask"
)

// New returns a model with one voxel per solid pixel. Image rows are
// flipped so that the sprite is upright with +Y up. pixelsPerUnit sets the
// model scale; values <= 0 mean one unit per pixel.
func New(a *mask.Alpha, pixelsPerUnit float64) *binvox.BinVOX {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	dim := a.Width()
	if a.Height() > dim {
		dim = a.Height()
	}
	b := binvox.New(a.Width(), a.Height(), 1, 0, 0, 0, float64(dim)/pixelsPerUnit, false)

	for i := 0; i < a.Len(); i++ {
		if !a.Solid(i) {
			continue
		}
		x, y := a.XY(i)
		b.Add(x, a.Height()-1-y, 0)
	}
	return b
}

// Write writes the model of a to filename.
func Write(filename string, a *mask.Alpha, pixelsPerUnit float64) error {
	b := New(a, pixelsPerUnit)
	if err := b.Write(filename, 0, 0, 0, b.NX, b.NY, b.NZ); err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	return nil
}
