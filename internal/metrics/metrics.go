// Package metrics collects per-generation observations over derivations.
package metrics

import "github.com/PixelsForGlory/lsystem"

// Metric observes each generation of a derivation and reduces the
// observations to a single value.
type Metric[S lsystem.State[S]] interface {
	Name() string
	Observe(d *lsystem.Derivation[S], generation int)
	Value() float64
	Reset()
}

// Defaults is the standard metric set reported after a run.
func Defaults[S lsystem.State[S]]() []Metric[S] {
	return []Metric[S]{
		NewSize[S](),
		NewGrowth[S](),
		NewDepth[S](),
		NewBranches[S](),
	}
}
