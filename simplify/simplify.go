// Package simplify reduces the vertex count of traced outline paths.
//
// Two strategies are available behind the Strategy interface:
//
//   - Embed scores every vertex by the area change its removal causes and
//     greedily removes the cheapest, never letting the path self-intersect.
//   - Reduce keeps the points selected by a symmetric max-distance split,
//     collapses straight compass runs, and clips outer paths to the source
//     rectangle.
package simplify

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gmlewis/spritemesh/outline"
)

// Mode selects a simplification strategy.
type Mode int

const (
	// Reduce selects the max-distance splitting strategy.
	Reduce Mode = iota
	// Embed selects the cost-based decimation strategy.
	Embed
)

var modeNames = map[Mode]string{Reduce: "reduce", Embed: "embed"}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("simplify: unknown mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for k, v := range modeNames {
		if v == s {
			*m = k
			return nil
		}
	}
	return fmt.Errorf("simplify: unknown mode %q (want reduce or embed)", s)
}

// Strategy simplifies one path. The input path is never modified.
type Strategy interface {
	Simplify(p *outline.Path, opts Options) *outline.Path
}

// Strategy returns the implementation of m.
func (m Mode) Strategy() Strategy {
	if m == Embed {
		return embed{}
	}
	return reduce{}
}

// Options tunes a single Simplify call.
type Options struct {
	// Detail in [0,1]; 1 is the most simplified.
	Detail float64
	// Limit, when positive, is the target vertex count and overrides Detail.
	Limit int
	// Bias is the outward offset in pixels applied to outer paths.
	Bias float64
	// ClipMin and ClipMax bound the source rectangle outer paths are
	// clipped to in reduce mode. Clipping is skipped when ClipMax is not
	// greater than ClipMin.
	ClipMin, ClipMax mgl64.Vec2
}

func (o Options) clip() bool {
	return o.ClipMax[0] > o.ClipMin[0] && o.ClipMax[1] > o.ClipMin[1]
}

// limit returns the target vertex count for an n-vertex path.
func (o Options) limit(n, floor int) int {
	lim := o.Limit
	if lim <= 0 {
		lim = int(float64(n) * (1 - o.Detail))
	}
	if lim < floor {
		lim = floor
	}
	return lim
}

// Simplify simplifies every path of ps with mode and returns a new set.
func Simplify(ps outline.PathSet, mode Mode, opts Options) outline.PathSet {
	s := mode.Strategy()
	out := make(outline.PathSet, 0, len(ps))
	for _, p := range ps {
		out = append(out, s.Simplify(p, opts))
	}
	return out
}

// applyBias recomputes normals and pushes outer paths outward.
func applyBias(p *outline.Path, bias float64) {
	p.RecomputeNormals()
	if p.Sign == outline.Outer {
		p.Offset(bias)
	}
}
