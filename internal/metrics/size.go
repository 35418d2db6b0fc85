package metrics

import "github.com/PixelsForGlory/lsystem"

// Size reports the module count of the most recent generation, branches
// included.
type Size[S lsystem.State[S]] struct {
	name string
	last float64
}

func NewSize[S lsystem.State[S]]() *Size[S] {
	return &Size[S]{name: "size"}
}

func (s *Size[S]) Name() string { return s.name }

func (s *Size[S]) Observe(d *lsystem.Derivation[S], generation int) {
	s.last = float64(d.Count())
}

func (s *Size[S]) Value() float64 {
	return s.last
}

func (s *Size[S]) Reset() {
	s.last = 0
}

// Growth reports the average per-generation growth factor of the module
// count.
type Growth[S lsystem.State[S]] struct {
	name     string
	prev     float64
	sum      float64
	samples  int
	observed bool
}

func NewGrowth[S lsystem.State[S]]() *Growth[S] {
	return &Growth[S]{name: "growth"}
}

func (g *Growth[S]) Name() string { return g.name }

func (g *Growth[S]) Observe(d *lsystem.Derivation[S], generation int) {
	count := float64(d.Count())
	if g.observed && g.prev > 0 {
		g.sum += count / g.prev
		g.samples++
	}
	g.prev = count
	g.observed = true
}

func (g *Growth[S]) Value() float64 {
	if g.samples == 0 {
		return 0
	}
	return g.sum / float64(g.samples)
}

func (g *Growth[S]) Reset() {
	g.prev = 0
	g.sum = 0
	g.samples = 0
	g.observed = false
}
