package simplify

import (
	"container/heap"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gmlewis/spritemesh/internal/logging"
	"github.com/gmlewis/spritemesh/outline"
)

const (
	// reduceFloor is the fewest vertices reduce mode works with.
	reduceFloor = 4
	// runTolerance is the largest deviation in pixels allowed inside a
	// collapsed compass run.
	runTolerance = 0.5
)

type reduce struct{}

// Simplify reduces outer paths. Holes are never clipped, so they take
// the embed strategy instead.
func (reduce) Simplify(p *outline.Path, opts Options) *outline.Path {
	if p.Sign != outline.Outer {
		return embed{}.Simplify(p, opts)
	}
	out := p.Clone()
	n := out.Len()
	if n < reduceFloor {
		return out
	}

	keep := selectPoints(out, opts.limit(n, reduceFloor))
	if runs := collapseRuns(keep); len(runs) >= reduceFloor && !selfIntersects(runs) {
		keep = runs
	}
	out.Vertices = keep

	applyBias(out, opts.Bias)
	if opts.clip() {
		clipped := prune(clipToRect(out.Points(), opts.ClipMin, opts.ClipMax))
		if len(clipped) >= 3 {
			out.Vertices = make([]outline.Vertex, len(clipped))
			for i, pt := range clipped {
				out.Vertices[i].Pos = pt
			}
			out.RecomputeNormals()
		} else {
			logging.Logger().Debug("simplify: clip removed the path, keeping it unclipped", "vertices", out.Len())
		}
	}
	out.Area = math.Abs(out.SignedArea())
	return out
}

// prune drops duplicate and collinear points, such as those left where a
// clipped edge runs along the clip rectangle, down to reduceFloor.
func prune(pts []mgl64.Vec2) []mgl64.Vec2 {
	for changed := true; changed && len(pts) > reduceFloor; {
		changed = false
		n := len(pts)
		for i := range pts {
			prev, next := pts[(i+n-1)%n], pts[(i+1)%n]
			if math.Abs(outline.Orient2D(prev, pts[i], next)) < outline.Epsilon {
				pts = append(pts[:i], pts[i+1:]...)
				changed = true
				break
			}
		}
	}
	return pts
}

// arc is a run of path vertices strictly between two selected ones, keyed
// by its farthest point from the chord.
type arc struct {
	start, end int
	split      int
	dist       float64
	seq        int
}

// arcHeap is a max-heap on dist; earlier arcs win ties.
type arcHeap []arc

func (h arcHeap) Len() int { return len(h) }
func (h arcHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist > h[j].dist
	}
	return h[i].seq < h[j].seq
}
func (h arcHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *arcHeap) Push(x any)   { *h = append(*h, x.(arc)) }
func (h *arcHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// selectPoints picks up to lim vertices of p, starting from its two
// mutually farthest points and repeatedly splitting the arc whose interior
// strays farthest from its chord. Selected vertices keep their path order
// and record their selection rank in Split.
func selectPoints(p *outline.Path, lim int) []outline.Vertex {
	n := p.Len()
	pts := p.Points()

	s, e, best := 0, 1, -1.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d := pts[j].Sub(pts[i]).LenSqr(); d > best {
				s, e, best = i, j, d
			}
		}
	}

	rank := make([]int, n)
	for i := range rank {
		rank[i] = -1
	}
	rank[s], rank[e] = 0, 1
	count := 2

	h := &arcHeap{}
	seq := 0
	push := func(start, end int) {
		k, d := farthest(pts, start, end)
		if k < 0 {
			return
		}
		heap.Push(h, arc{start: start, end: end, split: k, dist: d, seq: seq})
		seq++
	}
	push(s, e)
	push(e, s)

	collect := func() []outline.Vertex {
		keep := make([]outline.Vertex, 0, count)
		for i, r := range rank {
			if r < 0 {
				continue
			}
			v := p.Vertices[i]
			v.Split = r
			keep = append(keep, v)
		}
		return keep
	}

	// Past lim, keep splitting only while the selection crosses itself.
	for h.Len() > 0 {
		if count >= lim && !selfIntersects(collect()) {
			break
		}
		a := heap.Pop(h).(arc)
		rank[a.split] = count
		count++
		push(a.start, a.split)
		push(a.split, a.end)
	}
	return collect()
}

func selfIntersects(vs []outline.Vertex) bool {
	return (&outline.Path{Vertices: vs}).SelfIntersects()
}

// farthest returns the vertex strictly between start and end (walking
// forward around the cycle) farthest from the chord start-end, or -1 when
// the arc has no interior.
func farthest(pts []mgl64.Vec2, start, end int) (int, float64) {
	n := len(pts)
	best, dist := -1, -1.0
	for k := (start + 1) % n; k != end; k = (k + 1) % n {
		if d := outline.PointLineDistance(pts[k], pts[start], pts[end]); d > dist {
			best, dist = k, d
		}
	}
	return best, dist
}

// collapseRuns greedily merges consecutive vertices into a single edge
// while the merged chord is horizontal, vertical or diagonal and no
// skipped vertex deviates from it by more than runTolerance.
func collapseRuns(vs []outline.Vertex) []outline.Vertex {
	n := len(vs)
	if n <= reduceFloor {
		return vs
	}
	at := func(i int) mgl64.Vec2 { return vs[i%n].Pos }

	var out []outline.Vertex
	for i := 0; i < n; {
		out = append(out, vs[i])
		next := i + 1
		for j := i + 2; j <= n; j++ {
			if !flat(at, i, j) {
				break
			}
			if compass(at(j).Sub(at(i))) {
				next = j
			}
		}
		i = next
	}
	return out
}

// flat reports whether every vertex strictly between i and j lies within
// runTolerance of the chord i-j.
func flat(at func(int) mgl64.Vec2, i, j int) bool {
	a, b := at(i), at(j)
	for k := i + 1; k < j; k++ {
		if outline.PointLineDistance(at(k), a, b) > runTolerance {
			return false
		}
	}
	return true
}

// compass reports whether d points along one of the eight compass
// directions.
func compass(d mgl64.Vec2) bool {
	x, y := math.Abs(d[0]), math.Abs(d[1])
	if x < outline.Epsilon && y < outline.Epsilon {
		return false
	}
	return x < outline.Epsilon || y < outline.Epsilon || math.Abs(x-y) < outline.Epsilon
}
