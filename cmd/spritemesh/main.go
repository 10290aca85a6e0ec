// spritemesh traces the opaque pixels of one or more sprite images into
// simplified outlines and triangle meshes.
//
// It then writes an extruded STL of each mesh, a ZIP of the sliced
// sprites, a binvox of the alpha mask, or any combination.
//
// By default, spritemesh only reports outline and mesh statistics.
// To generate output, at least one of -stl, -zip or -binvox must be supplied.
package main

import (
	"flag"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gmlewis/spritemesh"
	"github.com/gmlewis/spritemesh/binvox"
	"github.com/gmlewis/spritemesh/config"
	"github.com/gmlewis/spritemesh/mesh"
	"github.com/gmlewis/spritemesh/stl"
	"github.com/gmlewis/spritemesh/zipper"
)

var (
	settings = flag.String("settings", "", "Settings file (.json, .yaml, .yml or .toml)")
	verbose  = flag.Bool("v", false, "Log tracing and simplification details")

	mode      = flag.String("mode", "", "Simplification mode: reduce or embed")
	detail    = flag.Float64("detail", 0, "Outline detail in [0,1]; negative derives it from -budget")
	budget    = flag.Int("budget", 0, "Triangle budget used when -detail is negative")
	extrude   = flag.Int("extrude", 0, "Grow outer outlines by this many pixels")
	tolerance = flag.Int("tolerance", 0, "Alpha values at or below this are transparent")
	holes     = flag.Bool("holes", true, "Detect holes")
	ppu       = flag.Float64("ppu", 0, "Pixels per mesh unit")
	minSize   = flag.Int("min", 0, "Smallest sprite kept on its own by auto slicing")
	grid      = flag.Int("grid", 0, "Slice into square cells of this size instead of auto slicing")

	depth       = flag.Float64("depth", 1, "STL extrusion depth in mesh units")
	writeBinvox = flag.Bool("binvox", false, "Write a binvox file of the alpha mask, one per image")
	writeSTL    = flag.Bool("stl", false, "Write an extruded STL file of the mesh, one per image")
	writeZip    = flag.Bool("zip", false, "Write the sliced sprites to a zip file, one per image")
)

func main() {
	flag.Parse()

	if !*writeBinvox && !*writeSTL && !*writeZip {
		log.Printf("-binvox, -stl, or -zip must be supplied to generate output. Reporting statistics only.")
	}

	s := loadSettings()
	if *verbose {
		spritemesh.SetLogger(newLogger())
	}

	for _, arg := range flag.Args() {
		log.Printf("Processing image %q...", arg)
		img, err := decode(arg)
		check("%v: %v", arg, err)

		a, err := spritemesh.NewMask(img, s)
		check("NewMask: %v", err)

		m, err := spritemesh.Mesh(a, s)
		check("Mesh: %v", err)
		log.Printf("%v: %v vertices, %v triangles, bounds %v-%v", arg, len(m.Vertices), m.TriangleCount(), m.Bounds.Min, m.Bounds.Max)

		baseName := strings.TrimSuffix(arg, filepath.Ext(arg))

		if *writeBinvox {
			filename := baseName + ".binvox"
			log.Printf("Writing: %v", filename)
			err = binvox.Write(filename, a, s.PixelsPerUnit)
			check("binvox.Write: %v", err)
		}

		if *writeSTL {
			filename := baseName + ".stl"
			log.Printf("Writing: %v", filename)
			err = saveSTL(filename, filepath.Base(baseName), m, float32(*depth))
			check("saveSTL: %v", err)
		}

		if *writeZip {
			rects := spritemesh.Slice(a, s)
			filename := baseName + "-sprites.zip"
			log.Printf("Slicing %v sprites into %v...", len(rects), filename)
			err = zipper.Slice(filename, img, rects)
			check("zipper.Slice: %v", err)
		}
	}

	log.Println("Done.")
}

// loadSettings reads the settings file, if any, then applies the flags
// that were given explicitly on the command line.
func loadSettings() config.Settings {
	s := config.Default()
	if *settings != "" {
		var err error
		s, err = config.Load(*settings)
		check("config.Load: %v", err)
	}

	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			err = s.Mode.UnmarshalText([]byte(*mode))
		case "detail":
			s.Detail = *detail
		case "budget":
			s.TriangleBudget = *budget
		case "extrude":
			s.Extrude = *extrude
		case "tolerance":
			s.Tolerance = *tolerance
		case "holes":
			s.DetectHoles = *holes
		case "ppu":
			s.PixelsPerUnit = *ppu
		case "min":
			s.Slicing.MinSize = *minSize
		case "grid":
			s.Slicing.GridSize = [2]int{*grid, *grid}
		}
	})
	check("-mode: %v", err)
	check("settings: %v", s.Validate())
	return s
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
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

func saveSTL(filename, name string, m *mesh.Mesh, depth float32) error {
	w, err := stl.New(filename, name)
	if err != nil {
		return err
	}
	if err := mesh.WriteSTL(w, m, depth); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func check(fmtStr string, args ...interface{}) {
	if err := args[len(args)-1]; err != nil {
		log.Fatalf(fmtStr, args...)
	}
}
