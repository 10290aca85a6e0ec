// Package mask builds the per-image alpha and visited bitmaps used by the
// flood fill, contour tracing, and rectangle slicing stages.
package mask

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// MaxPixels is the largest width*height a single mask may cover.
const MaxPixels = 16384 * 16384

var (
	// ErrTooLarge is returned when an image exceeds the scratch memory limit.
	ErrTooLarge = errors.New("mask: image exceeds scratch memory limit")
	// ErrBufferSize is returned when a pixel buffer does not match its dimensions.
	ErrBufferSize = errors.New("mask: pixel buffer does not match dimensions")
)

// Alpha is an immutable width*height bit grid where a pixel is "on" when its
// alpha channel is non-zero. The raw alpha byte is retained so that callers
// can apply a tolerance test later.
type Alpha struct {
	width, height int
	tolerance     uint8
	alpha         []uint8
}

// Build creates an Alpha mask from a tightly packed RGBA8 buffer.
func Build(pix []uint8, width, height int, tolerance uint8) (*Alpha, error) {
	n, err := pixelCount(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) != 4*n {
		return nil, fmt.Errorf("%w: got %v bytes for %vx%v", ErrBufferSize, len(pix), width, height)
	}

	alpha := make([]uint8, n)
	for i := range alpha {
		alpha[i] = pix[4*i+3]
	}

	return &Alpha{width: width, height: height, tolerance: tolerance, alpha: alpha}, nil
}

// FromImage creates an Alpha mask from any image. The image's bounds are
// translated so that the mask always starts at (0,0).
func FromImage(img image.Image, tolerance uint8) (*Alpha, error) {
	b := img.Bounds()
	if _, err := pixelCount(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	rgba, ok := img.(*image.NRGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != 4*b.Dx() {
		rgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}
	return Build(rgba.Pix, b.Dx(), b.Dy(), tolerance)
}

func pixelCount(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: negative dimensions %vx%v", ErrBufferSize, width, height)
	}
	if height > 0 && width > MaxPixels/height {
		return 0, fmt.Errorf("%w: %vx%v", ErrTooLarge, width, height)
	}
	return width * height, nil
}

// Width returns the mask width in pixels.
func (a *Alpha) Width() int { return a.width }

// Height returns the mask height in pixels.
func (a *Alpha) Height() int { return a.height }

// Len returns width*height.
func (a *Alpha) Len() int { return len(a.alpha) }

// Tolerance returns the alpha tolerance the mask was built with.
func (a *Alpha) Tolerance() uint8 { return a.tolerance }

// Bounds returns the mask rectangle.
func (a *Alpha) Bounds() image.Rectangle { return image.Rect(0, 0, a.width, a.height) }

// Index returns the linear index of (x,y).
func (a *Alpha) Index(x, y int) int { return y*a.width + x }

// XY converts a linear index back to pixel coordinates.
func (a *Alpha) XY(i int) (x, y int) { return i % a.width, i / a.width }

// On reports whether pixel i has a non-zero alpha.
func (a *Alpha) On(i int) bool { return a.alpha[i] > 0 }

// At reports whether (x,y) is inside the mask and on.
func (a *Alpha) At(x, y int) bool {
	if x < 0 || y < 0 || x >= a.width || y >= a.height {
		return false
	}
	return a.alpha[y*a.width+x] > 0
}

// Solid reports whether pixel i exceeds the alpha tolerance.
func (a *Alpha) Solid(i int) bool { return a.alpha[i] > a.tolerance }

// Empty reports whether no pixel is on.
func (a *Alpha) Empty() bool {
	for _, v := range a.alpha {
		if v > 0 {
			return false
		}
	}
	return true
}
