package lsystem

// Context is the read-only match context for one node: the node itself and
// its immediate siblings at the same level of the previous generation.
// Prev and Next are nil at sequence boundaries. Successor generators must
// only dereference neighbors guaranteed by the production's context slots.
type Context[S State[S]] struct {
	Prev *Node[S]
	Node *Node[S]
	Next *Node[S]
}

// Production is a context-sensitive, conditional, probabilistic rewrite
// rule. A production applies to a node when, in order:
//
//  1. Predecessor equals the node's module symbol (required).
//  2. Left is Wildcard, or the previous sibling exists with that symbol.
//  3. Right is Wildcard, or the next sibling exists with that symbol.
//  4. Condition holds (nil means always).
//  5. Probability holds for one fresh uniform draw (nil means always).
//
// Successor builds the replacement nodes for the new generation; returning
// an empty slice deletes the node. A successor that reuses the matched
// node's Branch pointer inherits that branch's rewritten next generation.
type Production[S State[S]] struct {
	Predecessor Symbol
	Left        Symbol
	Right       Symbol
	Condition   func(ctx Context[S]) bool
	Probability func(draw float64, ctx Context[S]) bool
	Successor   func(step int, ctx Context[S]) ([]*Node[S], error)
}

func (p *Production[S]) validate() error {
	if p.Predecessor == Wildcard {
		return ErrNoPredecessor
	}
	if p.Successor == nil {
		return ErrNoSuccessor
	}
	return nil
}

// applies checks conditions 1-4; the probability gate is drawn separately
// so that exactly one sample is consumed per matching attempt.
func (p *Production[S]) applies(ctx Context[S]) bool {
	if ctx.Node.Module.Symbol() != p.Predecessor {
		return false
	}
	if p.Left != Wildcard && (ctx.Prev == nil || ctx.Prev.Module.Symbol() != p.Left) {
		return false
	}
	if p.Right != Wildcard && (ctx.Next == nil || ctx.Next.Module.Symbol() != p.Right) {
		return false
	}
	if p.Condition != nil && !p.Condition(ctx) {
		return false
	}
	return true
}
