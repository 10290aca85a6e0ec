package slicer

import (
	"fmt"
	"image"
	"math"
	"reflect"
	"testing"

	"github.com/gmlewis/spritemesh/mask"
)

// sheet builds a w x h mask with the given opaque rectangles.
func sheet(t *testing.T, w, h int, rects ...image.Rectangle) *mask.Alpha {
	t.Helper()
	pix := make([]uint8, 4*w*h)
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				pix[4*(y*w+x)+3] = 255
			}
		}
	}
	a, err := mask.Build(pix, w, h, 0)
	if err != nil {
		t.Fatalf("mask.Build: %v", err)
	}
	return a
}

func TestAuto(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		rects []image.Rectangle
		opts  Options
		want  []image.Rectangle
	}{
		{
			name: "empty",
			w:    8, h: 8,
			opts: Options{MinSize: 4},
		},
		{
			name:  "two sprites",
			w:     20, h: 10,
			rects: []image.Rectangle{image.Rect(1, 1, 6, 6), image.Rect(10, 2, 18, 9)},
			opts:  Options{MinSize: 4},
			want:  []image.Rectangle{image.Rect(1, 1, 6, 6), image.Rect(10, 2, 18, 9)},
		},
		{
			name:  "speck absorbed by nearest sprite",
			w:     20, h: 20,
			rects: []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(15, 15, 17, 17)},
			opts:  Options{MinSize: 4},
			want:  []image.Rectangle{image.Rect(0, 0, 17, 17)},
		},
		{
			name: "speck picks the closer sprite",
			w:    30, h: 10,
			rects: []image.Rectangle{
				image.Rect(0, 0, 6, 6),
				image.Rect(20, 0, 26, 6),
				image.Rect(16, 2, 17, 3),
			},
			opts: Options{MinSize: 4},
			want: []image.Rectangle{image.Rect(0, 0, 6, 6), image.Rect(16, 0, 26, 6)},
		},
		{
			name: "nested region merges with its frame",
			w:    12, h: 12,
			rects: []image.Rectangle{
				image.Rect(0, 0, 10, 2), image.Rect(0, 8, 10, 10),
				image.Rect(0, 2, 2, 8), image.Rect(8, 2, 10, 8),
				image.Rect(4, 4, 6, 6),
			},
			opts: Options{MinSize: 1},
			want: []image.Rectangle{image.Rect(0, 0, 10, 10)},
		},
		{
			name:  "only small regions are kept",
			w:     10, h: 10,
			rects: []image.Rectangle{image.Rect(1, 1, 2, 2), image.Rect(6, 6, 8, 8)},
			opts:  Options{MinSize: 4},
			want:  []image.Rectangle{image.Rect(1, 1, 2, 2), image.Rect(6, 6, 8, 8)},
		},
		{
			name:  "extrude is clamped to the image",
			w:     10, h: 10,
			rects: []image.Rectangle{image.Rect(1, 4, 9, 6)},
			opts:  Options{MinSize: 1, Extrude: 2},
			want:  []image.Rectangle{image.Rect(0, 2, 10, 8)},
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v: %v", i, tt.name), func(t *testing.T) {
			got := Auto(sheet(t, tt.w, tt.h, tt.rects...), tt.opts)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Auto = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAutoUsesTolerance(t *testing.T) {
	pix := make([]uint8, 4*8*4)
	for x := 0; x < 8; x++ {
		pix[4*x+3] = 10         // faint row 0
		pix[4*(2*8+x)+3] = 200 // solid row 2
	}
	a, err := mask.Build(pix, 8, 4, 50)
	if err != nil {
		t.Fatalf("mask.Build: %v", err)
	}
	want := []image.Rectangle{image.Rect(0, 2, 8, 3)}
	if got := Auto(a, Options{MinSize: 2}); !reflect.DeepEqual(got, want) {
		t.Errorf("Auto = %v, want %v", got, want)
	}
}

func TestDistance(t *testing.T) {
	a := image.Rect(10, 10, 20, 20)

	tests := []struct {
		b    image.Rectangle
		want float64
	}{
		{b: image.Rect(15, 15, 25, 25), want: 0},
		{b: image.Rect(20, 12, 22, 14), want: 0}, // touching
		{b: image.Rect(0, 12, 4, 14), want: 6},
		{b: image.Rect(25, 12, 30, 14), want: 5},
		{b: image.Rect(12, 0, 14, 7), want: 3},
		{b: image.Rect(12, 28, 14, 30), want: 8},
		{b: image.Rect(0, 0, 7, 6), want: 5},
		{b: image.Rect(23, 24, 30, 30), want: 5},
		{b: image.Rect(26, 0, 30, 2), want: 10},
		{b: image.Rect(0, 28, 4, 30), want: 10},
		{b: image.Rectangle{Min: image.Pt(15, 15), Max: image.Pt(15, 15)}, want: 0}, // undefined
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v", i), func(t *testing.T) {
			if got := Distance(a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %v, want %v", a, tt.b, got, tt.want)
			}
		})
	}
}

func TestGrid(t *testing.T) {
	a := sheet(t, 10, 6, image.Rect(0, 0, 2, 2), image.Rect(7, 4, 8, 5))
	bounds := a.Bounds()

	tests := []struct {
		name string
		opts GridOptions
		a    *mask.Alpha
		want []image.Rectangle
	}{
		{
			name: "plain",
			opts: GridOptions{Size: image.Pt(4, 3)},
			want: []image.Rectangle{
				image.Rect(0, 0, 4, 3), image.Rect(4, 0, 8, 3),
				image.Rect(0, 3, 4, 6), image.Rect(4, 3, 8, 6),
			},
		},
		{
			name: "offset and padding",
			opts: GridOptions{Offset: image.Pt(1, 1), Size: image.Pt(3, 2), Padding: image.Pt(1, 1)},
			want: []image.Rectangle{
				image.Rect(1, 1, 4, 3), image.Rect(5, 1, 8, 3),
				image.Rect(1, 4, 4, 6), image.Rect(5, 4, 8, 6),
			},
		},
		{
			name: "skip empty cells",
			opts: GridOptions{Size: image.Pt(4, 3)},
			a:    a,
			want: []image.Rectangle{image.Rect(0, 0, 4, 3), image.Rect(4, 3, 8, 6)},
		},
		{
			name: "zero size",
			opts: GridOptions{},
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v: %v", i, tt.name), func(t *testing.T) {
			got := Grid(bounds, tt.opts, tt.a)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Grid = %v, want %v", got, tt.want)
			}
		})
	}
}
