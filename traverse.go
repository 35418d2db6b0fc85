package lsystem

// Evaluate walks the derivation depth-first, threading state through each
// module: ChangeState first, then QueryState for queryable modules. On
// entering a branch the current state is cloned; the branch traverses the
// copy and the parent level resumes with the state exactly as it stood
// before the branch. The derivation's structure is never mutated, only
// payloads inside queryable modules. Returns the final state after the top
// level completes.
func Evaluate[S State[S]](d *Derivation[S], state S) S {
	evaluateLevel(d, state)
	return state
}

func evaluateLevel[S State[S]](level *Derivation[S], state S) {
	for _, n := range level.nodes {
		n.Module.ChangeState(state)
		if q, ok := n.Module.(QueryModule[S]); ok {
			q.QueryState(state)
		}
		if n.Branch != nil {
			evaluateLevel(n.Branch, state.Clone())
		}
	}
}
