package simplify

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gmlewis/spritemesh/internal/logging"
	"github.com/gmlewis/spritemesh/outline"
)

// embedFloor is the fewest vertices embed mode works with: scoring a
// vertex looks two neighbours out on each side.
const embedFloor = 5

type embed struct{}

func (embed) Simplify(p *outline.Path, opts Options) *outline.Path {
	out := p.Clone()
	n := out.Len()
	if n < embedFloor {
		return out
	}
	lim := opts.limit(n, embedFloor)

	e := &embedder{p: out, w: make([]float64, n)}
	for i := 0; i < n; i++ {
		e.score(i)
	}

	for out.Len() > lim {
		i := e.cheapest()
		if i < 0 {
			break
		}
		if !e.remove(i) {
			out.Vertices[i].Cost = -1
		}
	}

	applyBias(out, opts.Bias)
	out.Area = math.Abs(out.SignedArea())
	return out
}

// embedder holds the per-vertex offsets that accompany each cost.
type embedder struct {
	p *outline.Path
	w []float64
}

func (e *embedder) idx(i int) int {
	n := len(e.p.Vertices)
	return ((i % n) + n) % n
}

func (e *embedder) pos(i int) mgl64.Vec2 { return e.p.Vertices[e.idx(i)].Pos }

// normals returns the averaged outward normals of a and b when the edge
// a->b replaces the vertex between them.
func normals(pa, a, b, c mgl64.Vec2) (na, nb mgl64.Vec2) {
	ab := outline.EdgeNormal(a, b)
	na = outline.SafeNormalize(outline.EdgeNormal(pa, a).Add(ab))
	nb = outline.SafeNormalize(ab.Add(outline.EdgeNormal(b, c)))
	return na, nb
}

// score computes the removal cost of vertex i.
func (e *embedder) score(i int) {
	i = e.idx(i)
	pa, a, v, b, c := e.pos(i-2), e.pos(i-1), e.pos(i), e.pos(i+1), e.pos(i+2)
	vert := &e.p.Vertices[i]

	d := outline.Orient2D(a, v, b)
	if d <= 0 {
		// Concave or collinear: removal only adds coverage.
		vert.Convex = -1
		vert.Cost = -d / 2
		e.w[i] = 0
		return
	}

	vert.Convex = 1
	w, cost, ok := convexCost(pa, a, b, c, d/2)
	if !ok {
		logging.Logger().Debug("simplify: no offset root for convex vertex", "x", v[0], "y", v[1])
		vert.Cost, e.w[i] = -1, 0
		return
	}
	vert.Cost, e.w[i] = cost, w
}

// convexCost finds the smallest positive offset w such that pushing a and
// b outward by w regains the area lost by removing the vertex between
// them, and returns the total area of the four triangles that offset
// sweeps.
func convexCost(pa, a, b, c mgl64.Vec2, lost float64) (w, cost float64, ok bool) {
	na, nb := normals(pa, a, b, c)

	// Area gained is (qa*w*w + qb*w)/2.
	qa := outline.Cross(na, nb)
	qb := outline.Cross(pa.Sub(b), na) + outline.Cross(a.Sub(c), nb)

	w = -1
	if math.Abs(qa) < 1e-12 {
		if qb > outline.Epsilon {
			w = 2 * lost / qb
		}
	} else {
		disc := qb*qb + 8*qa*lost
		if disc >= 0 {
			sq := math.Sqrt(disc)
			for _, r := range []float64{(-qb - sq) / (2 * qa), (-qb + sq) / (2 * qa)} {
				if r > outline.Epsilon && (w < 0 || r < w) {
					w = r
				}
			}
		}
	}
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, -1, false
	}

	a2 := a.Add(na.Mul(w))
	b2 := b.Add(nb.Mul(w))
	cost = (math.Abs(outline.Orient2D(pa, a, a2)) +
		math.Abs(outline.Orient2D(a, b, b2)) +
		math.Abs(outline.Orient2D(a, b2, a2)) +
		math.Abs(outline.Orient2D(b, b2, c))) / 2
	return w, cost, true
}

// cheapest returns the index of the lowest non-negative cost, or -1.
func (e *embedder) cheapest() int {
	best := -1
	for i, v := range e.p.Vertices {
		if v.Cost < 0 {
			continue
		}
		if best < 0 || v.Cost < e.p.Vertices[best].Cost {
			best = i
		}
	}
	return best
}

// remove deletes vertex i if doing so keeps the path simple, moving its
// neighbours outward for convex vertices, and rescores the neighbourhood.
func (e *embedder) remove(i int) bool {
	n := len(e.p.Vertices)
	ia, ib := e.idx(i-1), e.idx(i+1)
	pa, a, b, c := e.pos(i-2), e.pos(i-1), e.pos(i+1), e.pos(i+2)

	if e.p.Vertices[i].Convex > 0 {
		na, nb := normals(pa, a, b, c)
		w := e.w[i]
		a2, b2 := a.Add(na.Mul(w)), b.Add(nb.Mul(w))
		if e.p.EdgeIntersects(pa, a2, ia, i, ib) ||
			e.p.EdgeIntersects(a2, b2, ia, i, ib) ||
			e.p.EdgeIntersects(b2, c, ia, i, ib) ||
			outline.SegmentsIntersect(pa, a2, b2, c) {
			return false
		}
		e.p.Vertices[ia].Pos = a2
		e.p.Vertices[ib].Pos = b2
	} else if e.p.EdgeIntersects(a, b, i) {
		return false
	}

	e.p.Remove(i)
	e.w = append(e.w[:i], e.w[i+1:]...)

	n--
	for k := i - 3; k <= i+2; k++ {
		e.score(((k % n) + n) % n)
	}
	return true
}
