package lsystem

// Symbol is the variant tag of a module. Production matching compares
// symbols exactly; two modules with different symbols never satisfy the
// same context slot.
type Symbol string

// Wildcard in a production context slot matches any neighbor, including a
// missing one.
const Wildcard Symbol = ""

// State is implemented by values threaded through a derivation during
// evaluation, e.g. a turtle pose. Clone must return a fully independent
// deep copy: branch traversal relies on it for isolation, and a shallow
// copy with shared mutable parts is unsupported.
type State[S any] interface {
	Clone() S
}

// Module is one typed symbol occupying a position in a derivation.
// ChangeState mutates the traversal state in place to reflect the symbol's
// effect (movement, rotation, no-op). Implementations must not retain the
// state beyond the call; its lifetime is scoped to the traversal.
type Module[S any] interface {
	Symbol() Symbol
	ChangeState(state S)
}

// QueryModule is a module that records an observation of the traversal
// state into its own payload. QueryState is invoked immediately after
// ChangeState for the same node.
type QueryModule[S any] interface {
	Module[S]
	QueryState(state S)
}

// Rand supplies uniform samples in [0,1) for probability gates.
// *math/rand.Rand satisfies it; tests inject fixed sequences for
// reproducible outcomes.
type Rand interface {
	Float64() float64
}
