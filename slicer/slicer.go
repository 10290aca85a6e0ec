// Package slicer finds the axis-aligned rectangles used to cut a sprite
// sheet into individual sprites.
package slicer

import (
	"image"
	"math"

	"github.com/gmlewis/spritemesh/flood"
	"github.com/gmlewis/spritemesh/internal/logging"
	"github.com/gmlewis/spritemesh/mask"
)

// Options controls automatic slicing.
type Options struct {
	// MinSize is the smallest accepted region dimension. Regions narrower
	// and shorter than MinSize are folded into their nearest neighbour.
	MinSize int
	// Extrude grows every rectangle on all sides, clamped to the image.
	Extrude int
}

// Auto returns one rectangle per group of solid (alpha above tolerance)
// regions. Regions whose bounds overlap are merged, and regions smaller
// than MinSize in both dimensions are merged into the nearest accepted
// rectangle. An image with only small regions keeps them as they are.
func Auto(a *mask.Alpha, opts Options) []image.Rectangle {
	var accepted, small []image.Rectangle
	flood.Scan(a, a.Solid, func(r image.Rectangle) {
		if r.Dx() < opts.MinSize && r.Dy() < opts.MinSize {
			small = append(small, r)
			return
		}
		accepted = add(accepted, r)
	})

	if len(accepted) == 0 {
		if len(small) > 0 {
			logging.Logger().Debug("slicer: no region reached the minimum size", "regions", len(small), "min", opts.MinSize)
		}
		accepted = small
	} else {
		for _, s := range small {
			i := nearest(accepted, s)
			accepted[i] = accepted[i].Union(s)
			accepted = settle(accepted, i)
		}
	}

	bounds := a.Bounds()
	out := make([]image.Rectangle, 0, len(accepted))
	for _, r := range accepted {
		out = append(out, r.Inset(-opts.Extrude).Intersect(bounds))
	}
	return out
}

// add merges r into the first rectangle of rs it overlaps, or appends it.
func add(rs []image.Rectangle, r image.Rectangle) []image.Rectangle {
	for i, q := range rs {
		if q.Overlaps(r) {
			rs[i] = q.Union(r)
			return settle(rs, i)
		}
	}
	return append(rs, r)
}

// settle repeatedly merges rs[i] with any other rectangle it now
// overlaps. The merged rectangle takes the earlier of the two slots.
func settle(rs []image.Rectangle, i int) []image.Rectangle {
	for {
		j := -1
		for k, q := range rs {
			if k != i && q.Overlaps(rs[i]) {
				j = k
				break
			}
		}
		if j < 0 {
			return rs
		}
		u := rs[i].Union(rs[j])
		if j < i {
			i, j = j, i
		}
		rs[i] = u
		rs = append(rs[:j], rs[j+1:]...)
	}
}

// nearest returns the index of the rectangle of rs closest to r. Ties go
// to the earliest rectangle.
func nearest(rs []image.Rectangle, r image.Rectangle) int {
	best, bestDist := 0, math.Inf(1)
	for i, q := range rs {
		if d := Distance(q, r); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Distance returns the gap between a and b: 0 when they overlap or touch,
// the axis gap when they are beside each other, and the corner-to-corner
// distance when they are diagonal.
func Distance(a, b image.Rectangle) float64 {
	left := b.Max.X <= a.Min.X
	right := b.Min.X >= a.Max.X
	above := b.Max.Y <= a.Min.Y
	below := b.Min.Y >= a.Max.Y

	switch {
	case a.Overlaps(b):
		return 0
	case left && above:
		return math.Hypot(float64(a.Min.X-b.Max.X), float64(a.Min.Y-b.Max.Y))
	case right && above:
		return math.Hypot(float64(b.Min.X-a.Max.X), float64(a.Min.Y-b.Max.Y))
	case left && below:
		return math.Hypot(float64(a.Min.X-b.Max.X), float64(b.Min.Y-a.Max.Y))
	case right && below:
		return math.Hypot(float64(b.Min.X-a.Max.X), float64(b.Min.Y-a.Max.Y))
	case left:
		return float64(a.Min.X - b.Max.X)
	case right:
		return float64(b.Min.X - a.Max.X)
	case above:
		return float64(a.Min.Y - b.Max.Y)
	case below:
		return float64(b.Min.Y - a.Max.Y)
	}
	logging.Logger().Warn("slicer: undefined rectangle distance", "a", a, "b", b)
	return 0
}
