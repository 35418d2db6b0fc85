// Package lsystem provides a generic, type-driven Lindenmayer-system
// rewrite engine.
//
// An L-system derives successive generations of an ordered, possibly
// branching sequence of typed symbols ("modules") by applying a set of
// context-sensitive, probabilistic production rules in parallel:
//
//   - [Module]: typed symbol with a state-mutation hook
//   - [Node]: a module plus an optional nested branch
//   - [Derivation]: one generation's ordered node sequence
//   - [Production]: context-sensitive, conditional, probabilistic rewrite rule
//   - [LSystem]: owns the current derivation and steps it
//
// # Example
//
//	axiom := lsystem.NewDerivation(lsystem.NewNode[*turtle.Turtle](0, turtle.Ident{Sym: "X"}))
//	sys := lsystem.New(axiom, productions, rand.New(rand.NewSource(42)))
//	if err := sys.Step(); err != nil { ... }
//	_, pose := sys.Evaluate(turtle.New())
//
// # Rewriting Semantics
//
// Each step is a parallel rewrite: context lookups (left/right neighbor,
// condition evaluation) always reference the previous generation, never
// nodes produced during the same step. Productions are tried in list order
// and the first one whose predecessor, context, condition and probability
// gate all hold is applied; a node matched by no production is carried
// forward unchanged.
//
// # Thread Safety
//
// LSystem instances are NOT thread-safe. Callers that step and evaluate the
// same instance from multiple goroutines must serialize access themselves.
package lsystem
