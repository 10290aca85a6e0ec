package zipper

import (
	"archive/zip"
	"fmt"
	"image"
)

func (zp *zipper) writeManifest(sheet image.Rectangle, rects []image.Rectangle) error {
	fh := &zip.FileHeader{
		Name:     "manifest.xml",
		Modified: zp.now,
	}
	f, err := zp.w.CreateHeader(fh)
	if err != nil {
		return fmt.Errorf("Unable to create ZIP file %q: %w", fh.Name, err)
	}

	fmt.Fprintf(f, manifestHeader, sheet.Dx(), sheet.Dy(), len(rects))
	for n, r := range rects {
		fmt.Fprintf(f, spriteFmt, spriteName(n), r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	}
	fmt.Fprint(f, manifestFooter)
	return nil
}

var manifestHeader = `<?xml version="1.0"?>

<sheet version="1.0" width="%v" height="%v" sprites="%v">
`

var spriteFmt = `    <sprite file=%q x="%v" y="%v" width="%v" height="%v" />
`

var manifestFooter = `</sheet>
`
