package mask

// Visited is a mutable width*height bit grid shared across one full-image
// scan. It is owned by a single pipeline invocation.
type Visited struct {
	width, height int
	bits          []bool
}

// NewVisited returns a cleared Visited mask matching a.
func NewVisited(a *Alpha) *Visited {
	return &Visited{width: a.width, height: a.height, bits: make([]bool, len(a.alpha))}
}

// Len returns width*height.
func (v *Visited) Len() int { return len(v.bits) }

// Test reports whether pixel i is marked.
func (v *Visited) Test(i int) bool { return v.bits[i] }

// Mark sets pixel i.
func (v *Visited) Mark(i int) { v.bits[i] = true }

// Toggle flips pixel i.
func (v *Visited) Toggle(i int) { v.bits[i] = !v.bits[i] }

// ToggleRow flips the pixels [x0,x1) on row y.
func (v *Visited) ToggleRow(y, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	row := v.bits[y*v.width : (y+1)*v.width]
	for x := x0; x < x1; x++ {
		row[x] = !row[x]
	}
}

// Count returns the number of marked pixels.
func (v *Visited) Count() int {
	var n int
	for _, b := range v.bits {
		if b {
			n++
		}
	}
	return n
}
