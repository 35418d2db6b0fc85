package metrics

import "github.com/PixelsForGlory/lsystem"

// Depth reports the maximum branch nesting seen in the most recent
// generation. A derivation without branches has depth 0.
type Depth[S lsystem.State[S]] struct {
	name string
	max  float64
}

func NewDepth[S lsystem.State[S]]() *Depth[S] {
	return &Depth[S]{name: "depth"}
}

func (d *Depth[S]) Name() string { return d.name }

func (d *Depth[S]) Observe(der *lsystem.Derivation[S], generation int) {
	max := 0
	der.Walk(func(depth int, _ *lsystem.Node[S]) bool {
		if depth > max {
			max = depth
		}
		return true
	})
	d.max = float64(max)
}

func (d *Depth[S]) Value() float64 {
	return d.max
}

func (d *Depth[S]) Reset() {
	d.max = 0
}

// Branches reports the branch count of the most recent generation.
type Branches[S lsystem.State[S]] struct {
	name string
	last float64
}

func NewBranches[S lsystem.State[S]]() *Branches[S] {
	return &Branches[S]{name: "branches"}
}

func (b *Branches[S]) Name() string { return b.name }

func (b *Branches[S]) Observe(d *lsystem.Derivation[S], generation int) {
	count := 0
	d.Walk(func(_ int, n *lsystem.Node[S]) bool {
		if n.Branch != nil {
			count++
		}
		return true
	})
	b.last = float64(count)
}

func (b *Branches[S]) Value() float64 {
	return b.last
}

func (b *Branches[S]) Reset() {
	b.last = 0
}
