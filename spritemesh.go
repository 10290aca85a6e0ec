// Package spritemesh derives outline polygons, triangle meshes and slicing
// rectangles from the opaque content of sprite images.
//
// A typical import runs:
//
//	a, err := spritemesh.NewMask(img, settings)
//	m, err := spritemesh.Mesh(a, settings)
//	rects := spritemesh.AutoSlice(a, settings)
package spritemesh

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gmlewis/spritemesh/config"
	"github.com/gmlewis/spritemesh/contour"
	"github.com/gmlewis/spritemesh/internal/logging"
	"github.com/gmlewis/spritemesh/mask"
	"github.com/gmlewis/spritemesh/mesh"
	"github.com/gmlewis/spritemesh/outline"
	"github.com/gmlewis/spritemesh/simplify"
	"github.com/gmlewis/spritemesh/slicer"
)

// SetLogger installs the logger used by every spritemesh package. Nothing
// is logged by default; a nil logger restores that.
func SetLogger(l *slog.Logger) { logging.Set(l) }

// NewMask builds the alpha mask of img with the configured tolerance.
func NewMask(img image.Image, s config.Settings) (*mask.Alpha, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	a, err := mask.FromImage(img, uint8(s.Tolerance))
	if err != nil {
		return nil, fmt.Errorf("NewMask: %w", err)
	}
	return a, nil
}

// Outline traces every shape of a and simplifies it with the configured
// strategy.
func Outline(a *mask.Alpha, s config.Settings) (outline.PathSet, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	traced := contour.Trace(a, contour.Options{DetectHoles: s.DetectHoles, Detail: s.Detail})
	opts := simplify.Options{
		Detail:  math.Max(0, s.Detail),
		Bias:    float64(s.Extrude),
		ClipMax: mgl64.Vec2{float64(a.Width()), float64(a.Height())},
	}

	var limits []int
	if s.Detail < 0 {
		limits = autoLimits(traced, s.TriangleBudget)
	}

	strategy := s.Mode.Strategy()
	ps := make(outline.PathSet, 0, len(traced))
	for i, p := range traced {
		o := opts
		if limits != nil {
			o.Limit = limits[i]
		}
		ps = append(ps, strategy.Simplify(p, o))
	}

	logging.Logger().Info("spritemesh: outlined",
		"paths", len(ps), "traced", traced.VertexCount(), "kept", ps.VertexCount(), "mode", s.Mode)
	return ps, nil
}

// autoLimits shares a vertex allowance of budget+2 between the paths in
// proportion to their traced vertex counts.
func autoLimits(ps outline.PathSet, budget int) []int {
	total := ps.VertexCount()
	limits := make([]int, len(ps))
	if total == 0 {
		return limits
	}
	allowance := float64(budget + 2)
	for i, p := range ps {
		limits[i] = int(allowance * float64(p.Len()) / float64(total))
		if limits[i] < 1 {
			limits[i] = 1 // Options.Limit must stay positive to take effect.
		}
	}
	return limits
}

// Mesh outlines a and triangulates the result.
func Mesh(a *mask.Alpha, s config.Settings) (*mesh.Mesh, error) {
	ps, err := Outline(a, s)
	if err != nil {
		return nil, err
	}

	size := mgl32.Vec2{float32(a.Width()), float32(a.Height())}
	m, err := mesh.Decompose(ps, mesh.Options{
		TextureSize:   size,
		Pivot:         mgl32.Vec2{float32(s.Pivot.X) * size[0], float32(s.Pivot.Y) * size[1]},
		PixelsPerUnit: float32(s.PixelsPerUnit),
	})
	if err != nil {
		return nil, fmt.Errorf("Mesh: %w", err)
	}

	logging.Logger().Info("spritemesh: meshed", "vertices", len(m.Vertices), "triangles", m.TriangleCount())
	return m, nil
}

// AutoSlice returns the sprite rectangles found by flood filling a.
func AutoSlice(a *mask.Alpha, s config.Settings) []image.Rectangle {
	return slicer.Auto(a, slicer.Options{MinSize: s.Slicing.MinSize, Extrude: s.Slicing.Extrude})
}

// GridSlice returns the non-empty cells of the configured grid.
func GridSlice(a *mask.Alpha, s config.Settings) []image.Rectangle {
	return slicer.Grid(a.Bounds(), slicer.GridOptions{
		Offset:  image.Pt(s.Slicing.GridOffset[0], s.Slicing.GridOffset[1]),
		Size:    image.Pt(s.Slicing.GridSize[0], s.Slicing.GridSize[1]),
		Padding: image.Pt(s.Slicing.GridPadding[0], s.Slicing.GridPadding[1]),
	}, a)
}

// Slice uses the grid when one is configured and auto slicing otherwise.
func Slice(a *mask.Alpha, s config.Settings) []image.Rectangle {
	if s.Slicing.Grid() {
		return GridSlice(a, s)
	}
	return AutoSlice(a, s)
}
