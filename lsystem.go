package lsystem

import (
	"math/rand"
	"time"
)

// LSystem owns the current derivation, an ordered production list and a
// monotonically increasing generation counter. Production order is
// significant: matching is first-match-wins in the order given.
type LSystem[S State[S]] struct {
	current     *Derivation[S]
	productions []Production[S]
	rng         Rand
	generation  int
}

// New builds an L-system from an axiom derivation and its productions.
// A nil rng falls back to a time-seeded source; inject a seeded one for
// reproducible probability outcomes.
func New[S State[S]](axiom *Derivation[S], productions []Production[S], rng Rand) *LSystem[S] {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LSystem[S]{
		current:     axiom,
		productions: productions,
		rng:         rng,
	}
}

// Step rewrites the current derivation into the next generation. On
// success the held derivation is replaced and the generation counter
// incremented; on failure both are left untouched and the error is
// returned.
func (l *LSystem[S]) Step() error {
	next, err := Rewrite(l.current, l.productions, l.generation+1, l.rng)
	if err != nil {
		return err
	}
	l.current = next
	l.generation++
	return nil
}

// Generation returns the number of completed steps.
func (l *LSystem[S]) Generation() int {
	return l.generation
}

// Derivation returns the current generation for structural inspection; no
// module hooks are invoked.
func (l *LSystem[S]) Derivation() *Derivation[S] {
	return l.current
}

// Evaluate replays the current generation with the given initial state,
// updating queryable module payloads in place, and returns the derivation
// together with the final state. Repeated calls with fresh states overwrite
// prior observations.
func (l *LSystem[S]) Evaluate(initial S) (*Derivation[S], S) {
	final := Evaluate(l.current, initial)
	return l.current, final
}
