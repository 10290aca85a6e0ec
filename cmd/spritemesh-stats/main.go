// spritemesh-stats sweeps the outline detail of each image and prints the
// resulting vertex count, triangle count and STL file size so that a
// correlation between detail and mesh cost might be inferred.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gmlewis/spritemesh"
	"github.com/gmlewis/spritemesh/config"
	"github.com/gmlewis/spritemesh/mesh"
	"github.com/gmlewis/spritemesh/stl"
)

const outFile = "outfile-stats.stl"

var (
	maxTriangles = flag.Int("max", 5000, "Stop sweeping once the triangle count exceeds max")
	mode         = flag.String("mode", "reduce", "Simplification mode: reduce or embed")
)

func main() {
	flag.Parse()

	s := config.Default()
	check("-mode: %v", s.Mode.UnmarshalText([]byte(*mode)))

	inputs := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}

	pts := []string{"image\tdetail\tvertices\ttriangles\tstl-bytes"}
	for _, arg := range flag.Args() {
		img, err := decode(arg)
		check("%v: %v", arg, err)

		a, err := spritemesh.NewMask(img, s)
		check("NewMask: %v", err)

		name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		for _, detail := range inputs {
			s.Detail = detail
			m, err := spritemesh.Mesh(a, s)
			check("Mesh: %v", err)

			size, err := stlSize(name, m)
			check("stlSize: %v", err)
			log.Printf("%v: detail=%v, %v triangles, %v bytes", arg, detail, m.TriangleCount(), size)
			pts = append(pts, fmt.Sprintf("%v\t%v\t%v\t%v\t%v", name, detail, len(m.Vertices), m.TriangleCount(), size))

			if m.TriangleCount() >= *maxTriangles {
				break
			}
		}
	}

	fmt.Printf("%v\n", strings.Join(pts, "\n"))
	log.Printf("Done.")
}

// stlSize writes m as an STL to outFile and reports the file size.
func stlSize(name string, m *mesh.Mesh) (int64, error) {
	w, err := stl.New(outFile, name)
	if err != nil {
		return 0, err
	}
	if err := mesh.WriteSTL(w, m, 1); err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	defer os.Remove(outFile)

	fi, err := os.Stat(outFile)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func decode(filename string) (image.Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func check(fmtStr string, args ...interface{}) {
	if err := args[len(args)-1]; err != nil {
		log.Fatalf(fmtStr, args...)
	}
}
