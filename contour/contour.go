// Package contour traces the boundaries of the regions in an alpha mask
// into closed outline paths.
//
// Tracing walks pixel corners, so a fully opaque WxH image yields a single
// path with corners (0,0) and (W,H). After a boundary is traced, every pixel
// it encloses is toggled in the visited mask using horizontal scanlines;
// holes inside a shape then appear "on" in the working state (alpha XOR
// visited) and are traced as '-' paths by later calls.
package contour

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gmlewis/spritemesh/internal/logging"
	"github.com/gmlewis/spritemesh/mask"
	"github.com/gmlewis/spritemesh/outline"
)

const (
	// MinArea is the smallest |area| in square pixels of a kept trace.
	MinArea = 4
	// HoleAreaLimit is the fraction of the image area below which holes
	// are dropped.
	HoleAreaLimit = 0.25
)

// Tracer lazily yields the paths of one mask. It is not restartable: a
// new Tracer needs a fresh visited mask.
type Tracer struct {
	alpha   *mask.Alpha
	visited *mask.Visited
	next    int
}

// NewTracer returns a Tracer over a using visited as its toggle mask.
func NewTracer(a *mask.Alpha, visited *mask.Visited) *Tracer {
	return &Tracer{alpha: a, visited: visited}
}

func (t *Tracer) working(x, y int) bool {
	if x < 0 || y < 0 || x >= t.alpha.Width() || y >= t.alpha.Height() {
		return false
	}
	i := t.alpha.Index(x, y)
	return t.alpha.On(i) != t.visited.Test(i)
}

// Next returns the next path in raster order of its top-left corner. Paths
// smaller than MinArea are skipped, but their pixels are still consumed.
func (t *Tracer) Next() (*outline.Path, bool) {
	for t.next < t.alpha.Len() {
		x, y := t.alpha.XY(t.next)
		if !t.working(x, y) {
			t.next++
			continue
		}

		sign := outline.Hole
		if t.alpha.On(t.next) {
			sign = outline.Outer
		}

		pts := t.walk(x, y)
		t.toggle(pts, x)

		p := outline.New(sign, pts...)
		p.Orient()
		if p.Area < MinArea {
			logging.Logger().Debug("contour: dropping degenerate trace", "x", x, "y", y, "area", p.Area)
			continue
		}
		return p, true
	}
	return nil, false
}

// walk follows the boundary starting at the top-left corner of pixel
// (x0,y0), keeping working pixels on the right, and returns its corners.
func (t *Tracer) walk(x0, y0 int) []mgl64.Vec2 {
	pts := []mgl64.Vec2{{float64(x0), float64(y0)}}
	x, y := x0, y0
	dx, dy := 1, 0

	maxSteps := 4 * (t.alpha.Width() + 1) * (t.alpha.Height() + 1)
	for steps := 0; steps < maxSteps; steps++ {
		x += dx
		y += dy
		if x == x0 && y == y0 {
			return pts
		}

		rx, ry := -dy, dx
		lx, ly := dy, -dx
		right := t.working(x+(dx+rx-1)/2, y+(dy+ry-1)/2)
		left := t.working(x+(dx+lx-1)/2, y+(dy+ly-1)/2)

		switch {
		case left:
			// Covers both a wall ahead and a diagonal touch, which keeps
			// regions 8-connected.
			dx, dy = lx, ly
		case right:
			continue
		default:
			dx, dy = rx, ry
		}
		pts = append(pts, mgl64.Vec2{float64(x), float64(y)})
	}

	logging.Logger().Warn("contour: boundary walk did not close", "x", x0, "y", y0)
	return pts
}

// toggle flips every pixel enclosed by the corner polygon pts. Each
// vertical edge toggles its rows between the edge and column xa.
func (t *Tracer) toggle(pts []mgl64.Vec2, xa int) {
	n := len(pts)
	for i, a := range pts {
		b := pts[(i+1)%n]
		if a[0] != b[0] {
			continue
		}
		x := int(a[0])
		y0, y1 := int(a[1]), int(b[1])
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		for y := y0; y < y1; y++ {
			t.visited.ToggleRow(y, x, xa)
		}
	}
}

// Options controls which traced paths are kept.
type Options struct {
	DetectHoles bool
	// Detail < 0 forces every hole to be kept regardless of its area.
	Detail float64
}

// Trace collects every path of a into a PathSet.
func Trace(a *mask.Alpha, opts Options) outline.PathSet {
	limit := HoleAreaLimit * float64(a.Width()*a.Height())
	t := NewTracer(a, mask.NewVisited(a))

	var ps outline.PathSet
	for p, ok := t.Next(); ok; p, ok = t.Next() {
		if p.Sign == outline.Hole {
			if !opts.DetectHoles {
				continue
			}
			if opts.Detail >= 0 && p.Area < limit {
				logging.Logger().Debug("contour: dropping small hole", "area", p.Area, "limit", limit)
				continue
			}
		}
		ps = append(ps, p)
	}
	return ps
}
