package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmlewis/spritemesh/simplify"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseFormats(t *testing.T) {
	want := Default()
	want.Tolerance = 16
	want.Mode = simplify.Embed
	want.Detail = 0.75
	want.Pivot = Point{X: 0.5, Y: 0}
	want.Slicing.GridSize = [2]int{32, 32}

	docs := map[string]string{
		".json": `{
  "tolerance": 16,
  "mode": "embed",
  "detail": 0.75,
  "pivot": {"x": 0.5, "y": 0},
  "slicing": {"minSize": 4, "gridSize": [32, 32]}
}`,
		".yaml": `
tolerance: 16
mode: embed
detail: 0.75
pivot:
  x: 0.5
  y: 0
slicing:
  minSize: 4
  gridSize: [32, 32]
`,
		".toml": `
tolerance = 16
mode = "embed"
detail = 0.75

[pivot]
x = 0.5
y = 0.0

[slicing]
minSize = 4
gridSize = [32, 32]
`,
	}

	for ext, doc := range docs {
		t.Run(ext, func(t *testing.T) {
			got, err := Parse([]byte(doc), ext)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.True(t, got.Slicing.Grid())
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "sprite.yml")
	require.NoError(t, os.WriteFile(name, []byte("extrude: 4\ndetectHoles: false\n"), 0644))

	got, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Extrude)
	assert.False(t, got.DetectHoles)
	assert.Equal(t, simplify.Reduce, got.Mode, "unset fields keep their defaults")

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		ext     string
		invalid bool
	}{
		{name: "unknown extension", doc: `{}`, ext: ".ini"},
		{name: "unknown field", doc: `{"bogus": 1}`, ext: ".json"},
		{name: "bad mode", doc: `mode = "squash"`, ext: ".toml"},
		{name: "tolerance too high", doc: `{"tolerance": 255}`, ext: ".json", invalid: true},
		{name: "negative extrude", doc: "extrude: -1", ext: ".yaml", invalid: true},
		{name: "extrude too high", doc: "extrude = 33", ext: ".toml", invalid: true},
		{name: "detail above one", doc: `{"detail": 1.5}`, ext: ".json", invalid: true},
		{name: "auto detail without budget", doc: `{"detail": -1, "triangleBudget": 0}`, ext: ".json", invalid: true},
		{name: "zero pixels per unit", doc: `{"pixelsPerUnit": 0}`, ext: ".json", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), tt.ext)
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NotErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestModeRoundTrip(t *testing.T) {
	s := Default()
	s.Mode = simplify.Embed
	got, err := Parse([]byte(`{"mode":"embed"}`), ".JSON")
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
