// Package flood finds 8-connected regions of "on" pixels in an alpha mask.
//
// The fill is driven by an explicit index stack that is reused between
// regions, so region size is bounded only by the image resolution.
package flood

import (
	"image"

	"github.com/gmlewis/spritemesh/mask"
)

// OnFunc reports whether the pixel at linear index i belongs to a shape.
type OnFunc func(i int) bool

// Explorer performs stack-based flood fills over one mask and one
// visited bitmap.
type Explorer struct {
	width, height int
	on            OnFunc
	visited       *mask.Visited

	stack []int
}

// New returns an Explorer over a. If on is nil, Alpha.On is used.
func New(a *mask.Alpha, visited *mask.Visited, on OnFunc) *Explorer {
	if on == nil {
		on = a.On
	}
	return &Explorer{
		width:   a.Width(),
		height:  a.Height(),
		on:      on,
		visited: visited,
	}
}

// Bounds flood-fills the region containing start and returns the
// rectangle enclosing all member pixels (Max is exclusive). Every member
// is marked visited. If start is not an unvisited "on" pixel the returned
// rectangle is empty.
func (e *Explorer) Bounds(start int) image.Rectangle {
	var r image.Rectangle
	first := true
	e.fill(start, func(x, y int) {
		if first {
			r = image.Rect(x, y, x+1, y+1)
			first = false
			return
		}
		r = r.Union(image.Rect(x, y, x+1, y+1))
	})
	return r
}

// Region flood-fills the region containing start and returns the linear
// indices of its members in the order they were accepted.
func (e *Explorer) Region(start int) []int {
	var members []int
	e.fill(start, func(x, y int) {
		members = append(members, y*e.width+x)
	})
	return members
}

func (e *Explorer) fill(start int, accept func(x, y int)) {
	e.stack = append(e.stack[:0], start)
	for len(e.stack) > 0 {
		i := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		if e.visited.Test(i) || !e.on(i) {
			continue
		}
		e.visited.Mark(i)

		x, y := i%e.width, i/e.width
		accept(x, y)

		for dy := -1; dy <= 1; dy++ {
			ny := y + dy
			if ny < 0 || ny >= e.height {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				nx := x + dx
				if (dx == 0 && dy == 0) || nx < 0 || nx >= e.width {
					continue
				}
				if n := ny*e.width + nx; !e.visited.Test(n) {
					e.stack = append(e.stack, n)
				}
			}
		}
	}
}

// Scan visits every pixel of the mask once in raster order, calling fn
// with the bounds of each region whose first pixel is encountered.
func Scan(a *mask.Alpha, on OnFunc, fn func(r image.Rectangle)) {
	visited := mask.NewVisited(a)
	e := New(a, visited, on)
	for i := 0; i < a.Len(); i++ {
		if !visited.Test(i) && e.on(i) {
			fn(e.Bounds(i))
		}
		visited.Mark(i)
	}
}
