package lsystem

// Rewrite derives the next generation from old in one synchronized step.
// All context lookups reference old exclusively; nodes produced during the
// step are never used as context within the same step. The new derivation
// is fully constructed before it is returned: on any error old remains
// valid and untouched.
//
// rng must be non-nil when any production carries a probability gate; the
// LSystem constructor supplies a time-seeded source when given none, so
// repeated steps share one sequence instead of reseeding per call.
func Rewrite[S State[S]](old *Derivation[S], productions []Production[S], step int, rng Rand) (*Derivation[S], error) {
	for i := range productions {
		if err := productions[i].validate(); err != nil {
			return nil, &RewriteError{Step: step, Position: i, Symbol: productions[i].Predecessor, Wrapped: err}
		}
	}
	return rewriteLevel(old, productions, step, rng)
}

func rewriteLevel[S State[S]](level *Derivation[S], productions []Production[S], step int, rng Rand) (*Derivation[S], error) {
	next := NewDerivation[S]()
	for i, n := range level.nodes {
		if n.Module == nil {
			return nil, &RewriteError{Step: step, Position: i, Wrapped: ErrNilModule}
		}
		if n.Module.Symbol() == Wildcard {
			return nil, &RewriteError{Step: step, Position: i, Wrapped: ErrUntaggedModule}
		}

		// Branches are disjoint context scopes; rewrite the old branch up
		// front so whatever inherits the branch slot receives its next
		// generation.
		var branch *Derivation[S]
		if n.Branch != nil {
			b, err := rewriteLevel(n.Branch, productions, step, rng)
			if err != nil {
				return nil, err
			}
			branch = b
		}

		ctx := Context[S]{Prev: level.Prev(i), Node: n, Next: level.Next(i)}
		prod := selectProduction(productions, ctx, rng)
		if prod == nil {
			// Identity rewrite: the node is carried forward unchanged.
			next.Append(&Node[S]{StepCreated: n.StepCreated, Module: n.Module, Branch: branch})
			continue
		}

		successors, err := prod.Successor(step, ctx)
		if err != nil {
			return nil, &RewriteError{Step: step, Position: i, Symbol: n.Module.Symbol(), Wrapped: err}
		}
		for _, s := range successors {
			if n.Branch != nil && s.Branch == n.Branch {
				s.Branch = branch
			}
			next.Append(s)
		}
	}
	return next, nil
}

// selectProduction returns the first production in list order satisfying
// all match conditions, or nil. The probability gate consumes exactly one
// uniform draw per attempt, and later gates are never evaluated once an
// earlier production succeeds.
func selectProduction[S State[S]](productions []Production[S], ctx Context[S], rng Rand) *Production[S] {
	for i := range productions {
		p := &productions[i]
		if !p.applies(ctx) {
			continue
		}
		if p.Probability != nil && !p.Probability(rng.Float64(), ctx) {
			continue
		}
		return p
	}
	return nil
}
