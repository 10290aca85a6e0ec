// Package zipper writes the sprites cut from a sheet to a ZIP file, one
// PNG per slicing rectangle plus an XML manifest of the rectangles.
package zipper

import (
	"archive/zip"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log"
	"os"
	"time"
)

// Slice writes the sub-images of img selected by rects to zipName.
func Slice(zipName string, img image.Image, rects []image.Rectangle) error {
	zf, err := os.Create(zipName)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	if err := Write(zf, img, rects); err != nil {
		zf.Close()
		return err
	}
	if err := zf.Close(); err != nil {
		return fmt.Errorf("Unable to close ZIP file: %w", err)
	}
	log.Printf("Wrote %v sprites to %v", len(rects), zipName)
	return nil
}

// Write streams the ZIP archive to out.
func Write(out io.Writer, img image.Image, rects []image.Rectangle) error {
	zp := &zipper{w: zip.NewWriter(out), now: time.Now()}
	for n, r := range rects {
		if err := zp.writeSprite(n, img, r); err != nil {
			return err
		}
	}
	if err := zp.writeManifest(img.Bounds(), rects); err != nil {
		return err
	}
	if err := zp.w.Close(); err != nil {
		return fmt.Errorf("Unable to close ZIP writer: %w", err)
	}
	return nil
}

// zipper writes the entries of one archive.
type zipper struct {
	w   *zip.Writer
	now time.Time
}

// spriteName returns the archive name of sprite n.
func spriteName(n int) string { return fmt.Sprintf("sprite%04d.png", n) }

func (zp *zipper) writeSprite(n int, img image.Image, r image.Rectangle) error {
	fh := &zip.FileHeader{
		Name:     spriteName(n),
		Comment:  fmt.Sprintf("rect=%v", r),
		Modified: zp.now,
		Method:   zip.Deflate,
	}
	f, err := zp.w.CreateHeader(fh)
	if err != nil {
		return fmt.Errorf("Unable to create ZIP file %q: %w", fh.Name, err)
	}
	if err := png.Encode(f, crop(img, r)); err != nil {
		return fmt.Errorf("PNG encode: %w", err)
	}
	return nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// crop returns the part of img inside r, offset by img's origin.
func crop(img image.Image, r image.Rectangle) image.Image {
	r = r.Add(img.Bounds().Min).Intersect(img.Bounds())
	if si, ok := img.(subImager); ok {
		return si.SubImage(r)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Rect, img, r.Min, draw.Src)
	return dst
}
