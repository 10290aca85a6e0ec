package slicer

import (
	"image"

	"github.com/gmlewis/spritemesh/mask"
)

// GridOptions describes a fixed sprite-sheet layout.
type GridOptions struct {
	// Offset is the top-left corner of the first cell.
	Offset image.Point
	// Size is the cell size; both dimensions must be positive.
	Size image.Point
	// Padding is the gap between neighbouring cells.
	Padding image.Point
}

// Grid returns every whole cell of the layout that fits in bounds, in
// raster order. When a is not nil, cells without a solid pixel are
// skipped.
func Grid(bounds image.Rectangle, opts GridOptions, a *mask.Alpha) []image.Rectangle {
	if opts.Size.X <= 0 || opts.Size.Y <= 0 {
		return nil
	}
	step := opts.Size.Add(opts.Padding)
	if step.X <= 0 || step.Y <= 0 {
		return nil
	}

	var out []image.Rectangle
	origin := bounds.Min.Add(opts.Offset)
	for y := origin.Y; y+opts.Size.Y <= bounds.Max.Y; y += step.Y {
		for x := origin.X; x+opts.Size.X <= bounds.Max.X; x += step.X {
			r := image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+opts.Size.X, y+opts.Size.Y)}
			if a != nil && !solid(a, r) {
				continue
			}
			out = append(out, r)
		}
	}
	return out
}

func solid(a *mask.Alpha, r image.Rectangle) bool {
	r = r.Intersect(a.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if a.Solid(a.Index(x, y)) {
				return true
			}
		}
	}
	return false
}
