package grammar

import (
	"fmt"

	"github.com/PixelsForGlory/lsystem"
	"github.com/PixelsForGlory/lsystem/turtle"
)

// Rule is a declarative rewrite rule over the single-character alphabet.
// Left and Right, when set, require the named neighbor symbol at the same
// branch level. Chance below 1 makes the rule stochastic; 0 means always.
type Rule struct {
	Predecessor string
	Successor   string
	Left        string
	Right       string
	Chance      float64
}

// Compile turns declarative rules into productions. Successor strings are
// parsed once up front to surface bracket errors, then re-parsed on every
// application so each expansion gets fresh module instances (a shared
// *Mark across generations would overwrite its own payload).
func (a Alphabet) Compile(rules []Rule) ([]lsystem.Production[*turtle.Turtle], error) {
	prods := make([]lsystem.Production[*turtle.Turtle], 0, len(rules))
	for i, r := range rules {
		if len(r.Predecessor) != 1 {
			return nil, fmt.Errorf("grammar: rule %d: predecessor must be a single symbol, got %q", i, r.Predecessor)
		}
		if lsystem.Symbol(r.Predecessor) == carrier {
			return nil, fmt.Errorf("grammar: rule %d: %q is reserved", i, carrier)
		}
		if _, err := a.Parse(r.Successor); err != nil {
			return nil, fmt.Errorf("grammar: rule %d: bad successor: %w", i, err)
		}

		succ := r.Successor
		chance := r.Chance
		p := lsystem.Production[*turtle.Turtle]{
			Predecessor: lsystem.Symbol(r.Predecessor),
			Left:        lsystem.Symbol(r.Left),
			Right:       lsystem.Symbol(r.Right),
			Successor: func(step int, ctx lsystem.Context[*turtle.Turtle]) ([]*lsystem.Node[*turtle.Turtle], error) {
				d, err := a.Parse(succ)
				if err != nil {
					return nil, err
				}
				nodes := make([]*lsystem.Node[*turtle.Turtle], 0, d.Len())
				d.Walk(func(_ int, n *lsystem.Node[*turtle.Turtle]) bool {
					n.StepCreated = step
					return true
				})
				for i := 0; i < d.Len(); i++ {
					nodes = append(nodes, d.At(i))
				}
				// A rewritten owner keeps its limb: hand the matched node's
				// old branch pointer to the last successor node so the engine
				// swaps in the rewritten branch. When that node already owns
				// a branch of its own (or the successor is empty), a carrier
				// takes the slot, matching how Parse treats ownerless
				// brackets.
				if ctx.Node.Branch != nil {
					var last *lsystem.Node[*turtle.Turtle]
					if len(nodes) > 0 {
						last = nodes[len(nodes)-1]
					}
					if last == nil || last.Branch != nil {
						last = lsystem.NewNode[*turtle.Turtle](step, turtle.Ident{Sym: carrier})
						nodes = append(nodes, last)
					}
					last.Branch = ctx.Node.Branch
				}
				return nodes, nil
			},
		}
		if chance > 0 && chance < 1 {
			p.Probability = func(draw float64, _ lsystem.Context[*turtle.Turtle]) bool {
				return draw < chance
			}
		}
		prods = append(prods, p)
	}
	return prods, nil
}

// System parses the axiom, compiles the rules, and assembles a ready
// L-system. A nil rng falls back to a time-seeded source.
func (a Alphabet) System(axiom string, rules []Rule, rng lsystem.Rand) (*lsystem.LSystem[*turtle.Turtle], error) {
	d, err := a.Parse(axiom)
	if err != nil {
		return nil, fmt.Errorf("grammar: bad axiom: %w", err)
	}
	prods, err := a.Compile(rules)
	if err != nil {
		return nil, err
	}
	return lsystem.New(d, prods, rng), nil
}
