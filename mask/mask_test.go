package mask

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"
)

func rgba(alphas ...uint8) []uint8 {
	pix := make([]uint8, 0, 4*len(alphas))
	for _, a := range alphas {
		pix = append(pix, 255, 255, 255, a)
	}
	return pix
}

func TestBuild(t *testing.T) {
	tests := []struct {
		pix       []uint8
		w, h      int
		tolerance uint8
		wantOn    []bool
		wantSolid []bool
		wantErr   error
	}{
		{
			pix:       rgba(0, 1, 128, 255),
			w:         2,
			h:         2,
			tolerance: 127,
			wantOn:    []bool{false, true, true, true},
			wantSolid: []bool{false, false, true, true},
		},
		{
			pix:     rgba(0, 1, 128),
			w:       2,
			h:       2,
			wantErr: ErrBufferSize,
		},
		{
			w:       MaxPixels,
			h:       2,
			wantErr: ErrTooLarge,
		},
		{}, // empty image
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v", i), func(t *testing.T) {
			a, err := Build(tt.pix, tt.w, tt.h, tt.tolerance)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Build err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			for j := range tt.wantOn {
				if got := a.On(j); got != tt.wantOn[j] {
					t.Errorf("On(%v) = %v, want %v", j, got, tt.wantOn[j])
				}
				if got := a.Solid(j); got != tt.wantSolid[j] {
					t.Errorf("Solid(%v) = %v, want %v", j, got, tt.wantSolid[j])
				}
			}
		})
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	img.Set(10, 20, color.NRGBA{A: 255})
	img.Set(12, 21, color.NRGBA{A: 5})

	a, err := FromImage(img, 10)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if a.Width() != 3 || a.Height() != 2 {
		t.Fatalf("size = %vx%v, want 3x2", a.Width(), a.Height())
	}
	if !a.At(0, 0) || !a.At(2, 1) || a.At(1, 0) {
		t.Errorf("unexpected mask contents")
	}
	if a.At(-1, 0) || a.At(3, 0) {
		t.Errorf("out of bounds pixels must be off")
	}
	if a.Solid(a.Index(2, 1)) {
		t.Errorf("alpha 5 must not pass tolerance 10")
	}
}

func TestVisitedToggleRow(t *testing.T) {
	a, err := Build(rgba(0, 0, 0, 0, 0, 0, 0, 0), 4, 2, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	v := NewVisited(a)
	v.ToggleRow(1, 3, 1)
	v.ToggleRow(1, 2, 4)
	want := []bool{false, false, false, false, false, true, false, true}
	for i, w := range want {
		if v.Test(i) != w {
			t.Errorf("Test(%v) = %v, want %v", i, v.Test(i), w)
		}
	}
	if got := v.Count(); got != 2 {
		t.Errorf("Count = %v, want 2", got)
	}
}
