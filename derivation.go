package lsystem

import (
	"fmt"
	"strings"
)

// Node is a module positioned in a derivation, optionally owning a nested
// branch. StepCreated records the generation that produced the node; it is
// diagnostic only and never consulted by matching.
type Node[S State[S]] struct {
	StepCreated int
	Module      Module[S]
	Branch      *Derivation[S]
}

// NewNode returns a node created at the given generation step.
func NewNode[S State[S]](step int, m Module[S]) *Node[S] {
	return &Node[S]{StepCreated: step, Module: m}
}

// WithBranch attaches a branch and returns the node for chaining.
func (n *Node[S]) WithBranch(branch *Derivation[S]) *Node[S] {
	n.Branch = branch
	return n
}

// Derivation is one generation: an ordered sequence of nodes, each of which
// may root a nested sequence. Context lookups are scoped to a single level;
// a node's branch contents are never spliced into the parent sequence.
type Derivation[S State[S]] struct {
	nodes []*Node[S]
}

// NewDerivation builds a derivation from nodes in order.
func NewDerivation[S State[S]](nodes ...*Node[S]) *Derivation[S] {
	return &Derivation[S]{nodes: nodes}
}

// Append adds nodes to the end of this level.
func (d *Derivation[S]) Append(nodes ...*Node[S]) {
	d.nodes = append(d.nodes, nodes...)
}

func (d *Derivation[S]) Len() int {
	return len(d.nodes)
}

func (d *Derivation[S]) At(i int) *Node[S] {
	return d.nodes[i]
}

// Prev returns the previous sibling at this level, or nil for the first
// node. Branch boundaries are never crossed.
func (d *Derivation[S]) Prev(i int) *Node[S] {
	if i <= 0 || i >= len(d.nodes) {
		return nil
	}
	return d.nodes[i-1]
}

// Next returns the next sibling at this level, or nil for the last node.
func (d *Derivation[S]) Next(i int) *Node[S] {
	if i < 0 || i >= len(d.nodes)-1 {
		return nil
	}
	return d.nodes[i+1]
}

// Walk visits nodes depth-first: each node, then its branch, then its next
// sibling. The visitor receives the nesting depth (0 for the top level) and
// may return false to stop early.
func (d *Derivation[S]) Walk(visit func(depth int, n *Node[S]) bool) {
	d.walk(0, visit)
}

func (d *Derivation[S]) walk(depth int, visit func(depth int, n *Node[S]) bool) bool {
	for _, n := range d.nodes {
		if !visit(depth, n) {
			return false
		}
		if n.Branch != nil {
			if !n.Branch.walk(depth+1, visit) {
				return false
			}
		}
	}
	return true
}

// Count returns the total number of nodes, including branch contents.
func (d *Derivation[S]) Count() int {
	total := 0
	d.Walk(func(int, *Node[S]) bool {
		total++
		return true
	})
	return total
}

// String renders the derivation for diagnostics: modules in order separated
// by spaces, branches in square brackets directly after their owner.
// Modules implementing fmt.Stringer render themselves; others render as
// their symbol.
func (d *Derivation[S]) String() string {
	parts := make([]string, 0, len(d.nodes))
	for _, n := range d.nodes {
		var sb strings.Builder
		if s, ok := n.Module.(fmt.Stringer); ok {
			sb.WriteString(s.String())
		} else {
			sb.WriteString(string(n.Module.Symbol()))
		}
		if n.Branch != nil {
			sb.WriteString("[")
			sb.WriteString(n.Branch.String())
			sb.WriteString("]")
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, " ")
}
