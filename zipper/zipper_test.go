package zipper

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	sheet := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	sheet.SetNRGBA(5, 2, color.NRGBA{R: 255, A: 255})

	tests := []struct {
		name  string
		img   image.Image
		rects []image.Rectangle
	}{
		{
			name:  "sub imager",
			img:   sheet,
			rects: []image.Rectangle{image.Rect(0, 0, 4, 4), image.Rect(4, 1, 8, 3)},
		},
		{
			name:  "offset generic image",
			img:   offsetImage{sheet},
			rects: []image.Rectangle{image.Rect(4, 1, 8, 3)},
		},
		{
			name: "no sprites",
			img:  sheet,
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v: %v", i, tt.name), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.img, tt.rects); err != nil {
				t.Fatalf("Write: %v", err)
			}

			zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
			if err != nil {
				t.Fatalf("zip.NewReader: %v", err)
			}
			if len(zr.File) != len(tt.rects)+1 {
				t.Fatalf("got %v entries, want %v", len(zr.File), len(tt.rects)+1)
			}

			for n, r := range tt.rects {
				f := zr.File[n]
				if f.Name != spriteName(n) {
					t.Errorf("entry %v name = %q", n, f.Name)
				}
				rc, err := f.Open()
				if err != nil {
					t.Fatalf("Open: %v", err)
				}
				img, err := png.Decode(rc)
				rc.Close()
				if err != nil {
					t.Fatalf("png.Decode: %v", err)
				}
				if img.Bounds().Dx() != r.Dx() || img.Bounds().Dy() != r.Dy() {
					t.Errorf("sprite %v is %v, want %vx%v", n, img.Bounds(), r.Dx(), r.Dy())
				}
				if r == image.Rect(4, 1, 8, 3) {
					b := img.Bounds()
					if _, _, _, a := img.At(b.Min.X+1, b.Min.Y+1).RGBA(); a != 0xffff {
						t.Errorf("sprite %v lost its opaque pixel", n)
					}
				}
			}

			m := zr.File[len(zr.File)-1]
			rc, err := m.Open()
			if err != nil {
				t.Fatalf("Open manifest: %v", err)
			}
			manifest, _ := io.ReadAll(rc)
			rc.Close()
			if !strings.Contains(string(manifest), fmt.Sprintf(`sprites="%v"`, len(tt.rects))) {
				t.Errorf("manifest = %s", manifest)
			}
		})
	}
}

// offsetImage hides SubImage and moves the origin to (10,20).
type offsetImage struct{ img *image.NRGBA }

func (o offsetImage) ColorModel() color.Model { return o.img.ColorModel() }
func (o offsetImage) Bounds() image.Rectangle { return o.img.Bounds().Add(image.Pt(10, 20)) }
func (o offsetImage) At(x, y int) color.Color { return o.img.At(x-10, y-20) }
