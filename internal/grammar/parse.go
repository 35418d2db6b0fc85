// Package grammar is the bracketed-string front end for turtle L-systems:
// it parses axiom and successor strings like "F-[[X]+X]+F[+FX]-X" into
// typed derivations and compiles declarative rules into productions.
package grammar

import (
	"fmt"
	"strings"

	"github.com/PixelsForGlory/lsystem"
	"github.com/PixelsForGlory/lsystem/turtle"
)

// carrier owns a branch when the bracket string gives it no owner of its
// own ("F[+X][-X]" or a leading "[["). It is a reserved no-op symbol no
// rule may target.
const carrier = lsystem.Symbol(".")

// Alphabet fixes the geometric meaning of the single-character module
// alphabet: F/f advance by Step, +/- turn by Angle, letters listed in Pens
// draw like F under their own symbol, every other letter is an abstract
// no-op.
type Alphabet struct {
	Angle float64
	Step  float64
	Pens  string
}

// Parse converts a bracketed symbol string into a derivation. Brackets
// open a branch on the preceding node; whitespace is ignored.
func (a Alphabet) Parse(s string) (*lsystem.Derivation[*turtle.Turtle], error) {
	top := lsystem.NewDerivation[*turtle.Turtle]()
	stack := []*lsystem.Derivation[*turtle.Turtle]{top}

	for pos, r := range s {
		level := stack[len(stack)-1]
		switch r {
		case ' ', '\t', '\n':
			continue
		case '[':
			owner := (*lsystem.Node[*turtle.Turtle])(nil)
			if level.Len() > 0 {
				if last := level.At(level.Len() - 1); last.Branch == nil {
					owner = last
				}
			}
			if owner == nil {
				owner = lsystem.NewNode[*turtle.Turtle](0, turtle.Ident{Sym: carrier})
				level.Append(owner)
			}
			branch := lsystem.NewDerivation[*turtle.Turtle]()
			owner.Branch = branch
			stack = append(stack, branch)
		case ']':
			if len(stack) == 1 {
				return nil, fmt.Errorf("grammar: unmatched ']' at offset %d", pos)
			}
			stack = stack[:len(stack)-1]
		default:
			level.Append(lsystem.NewNode[*turtle.Turtle](0, a.module(r)))
		}
	}

	if len(stack) > 1 {
		return nil, fmt.Errorf("grammar: %d unclosed '['", len(stack)-1)
	}
	return top, nil
}

func (a Alphabet) module(r rune) lsystem.Module[*turtle.Turtle] {
	switch r {
	case 'F':
		return turtle.Draw{Len: a.Step}
	case 'f':
		return turtle.Move{Len: a.Step}
	case '+':
		return turtle.Left{Angle: a.Angle}
	case '-':
		return turtle.Right{Angle: a.Angle}
	case '?':
		return &turtle.Mark{}
	}
	if strings.ContainsRune(a.Pens, r) {
		return turtle.Pen{Sym: lsystem.Symbol(r), Len: a.Step}
	}
	return turtle.Ident{Sym: lsystem.Symbol(r)}
}

// Flatten renders a derivation back into a compact bracketed symbol
// string. Carrier nodes render as their brackets only.
func Flatten(d *lsystem.Derivation[*turtle.Turtle]) string {
	var sb strings.Builder
	flattenLevel(d, &sb)
	return sb.String()
}

func flattenLevel(level *lsystem.Derivation[*turtle.Turtle], sb *strings.Builder) {
	for i := 0; i < level.Len(); i++ {
		n := level.At(i)
		if n.Module.Symbol() != carrier {
			sb.WriteString(string(n.Module.Symbol()))
		}
		if n.Branch != nil {
			sb.WriteString("[")
			flattenLevel(n.Branch, sb)
			sb.WriteString("]")
		}
	}
}
