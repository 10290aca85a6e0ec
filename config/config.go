// Package config loads and validates the import settings that drive the
// sprite pipeline.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gmlewis/spritemesh/simplify"
)

// ErrInvalid is returned for settings outside their documented ranges.
var ErrInvalid = errors.New("config: invalid settings")

// Limits of the numeric settings.
const (
	MaxTolerance = 254
	MaxExtrude   = 32
)

// Point is a 2D value in settings files.
type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Slicing configures sprite-sheet slicing.
type Slicing struct {
	// MinSize is the smallest accepted region dimension for auto slicing.
	MinSize int `json:"minSize" yaml:"minSize" toml:"minSize"`
	// Extrude grows every auto-sliced rectangle.
	Extrude int `json:"extrude" yaml:"extrude" toml:"extrude"`

	// A positive GridSize switches to fixed grid slicing.
	GridOffset  [2]int `json:"gridOffset" yaml:"gridOffset" toml:"gridOffset"`
	GridSize    [2]int `json:"gridSize" yaml:"gridSize" toml:"gridSize"`
	GridPadding [2]int `json:"gridPadding" yaml:"gridPadding" toml:"gridPadding"`
}

// Grid reports whether fixed grid slicing is configured.
func (s Slicing) Grid() bool { return s.GridSize[0] > 0 && s.GridSize[1] > 0 }

// Settings carries every pipeline parameter.
type Settings struct {
	// Tolerance is the alpha value a pixel must exceed to count as solid
	// when slicing.
	Tolerance int `json:"tolerance" yaml:"tolerance" toml:"tolerance"`
	// DetectHoles keeps transparent holes inside shapes.
	DetectHoles bool `json:"detectHoles" yaml:"detectHoles" toml:"detectHoles"`
	// Detail is the simplification strength in [0,1]; negative derives it
	// from TriangleBudget.
	Detail float64 `json:"detail" yaml:"detail" toml:"detail"`
	// Extrude is the outward offset in pixels applied to outer paths.
	Extrude int           `json:"extrude" yaml:"extrude" toml:"extrude"`
	Mode    simplify.Mode `json:"mode" yaml:"mode" toml:"mode"`
	// PixelsPerUnit scales pixel positions into mesh units.
	PixelsPerUnit float64 `json:"pixelsPerUnit" yaml:"pixelsPerUnit" toml:"pixelsPerUnit"`
	// Pivot is the mesh origin as a fraction of the image size.
	Pivot Point `json:"pivot" yaml:"pivot" toml:"pivot"`
	// TriangleBudget caps the triangle count when Detail is negative.
	TriangleBudget int `json:"triangleBudget" yaml:"triangleBudget" toml:"triangleBudget"`

	Slicing Slicing `json:"slicing" yaml:"slicing" toml:"slicing"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		DetectHoles:    true,
		Detail:         0.5,
		Extrude:        1,
		Mode:           simplify.Reduce,
		PixelsPerUnit:  100,
		Pivot:          Point{X: 0.5, Y: 0.5},
		TriangleBudget: 128,
		Slicing:        Slicing{MinSize: 4},
	}
}

// Load reads filename over Default and validates the result. The format
// is chosen by extension: .json, .yaml, .yml or .toml.
func Load(filename string) (Settings, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return Settings{}, fmt.Errorf("Load: %w", err)
	}
	s, err := Parse(buf, filepath.Ext(filename))
	if err != nil {
		return Settings{}, fmt.Errorf("Load %v: %w", filename, err)
	}
	return s, nil
}

// Parse decodes buf in the format named by ext over Default and validates
// the result.
func Parse(buf []byte, ext string) (Settings, error) {
	s := Default()
	var err error
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		err = dec.Decode(&s)
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(buf))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %q", ext)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("decode%v: %w", ext, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every setting against its documented range.
func (s Settings) Validate() error {
	switch {
	case s.Tolerance < 0 || s.Tolerance > MaxTolerance:
		return fmt.Errorf("%w: tolerance %v not in [0,%v]", ErrInvalid, s.Tolerance, MaxTolerance)
	case s.Extrude < 0 || s.Extrude > MaxExtrude:
		return fmt.Errorf("%w: extrude %v not in [0,%v]", ErrInvalid, s.Extrude, MaxExtrude)
	case s.Detail > 1:
		return fmt.Errorf("%w: detail %v greater than 1", ErrInvalid, s.Detail)
	case s.Detail < 0 && s.TriangleBudget <= 0:
		return fmt.Errorf("%w: automatic detail needs a positive triangle budget", ErrInvalid)
	case s.Mode != simplify.Reduce && s.Mode != simplify.Embed:
		return fmt.Errorf("%w: mode %v", ErrInvalid, s.Mode)
	case s.PixelsPerUnit <= 0:
		return fmt.Errorf("%w: pixels per unit %v must be positive", ErrInvalid, s.PixelsPerUnit)
	case s.Slicing.MinSize < 0:
		return fmt.Errorf("%w: slicing min size %v is negative", ErrInvalid, s.Slicing.MinSize)
	case s.Slicing.Extrude < 0 || s.Slicing.Extrude > MaxExtrude:
		return fmt.Errorf("%w: slicing extrude %v not in [0,%v]", ErrInvalid, s.Slicing.Extrude, MaxExtrude)
	}
	return nil
}
