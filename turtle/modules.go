package turtle

import (
	"fmt"

	"github.com/PixelsForGlory/lsystem"
)

// Draw moves the turtle forward, drawing a segment.
type Draw struct {
	Len float64
}

func (Draw) Symbol() lsystem.Symbol { return "F" }

func (d Draw) ChangeState(t *Turtle) { t.Advance(d.Len) }

func (d Draw) String() string { return fmt.Sprintf("F(%g)", d.Len) }

// Move moves the turtle forward without drawing.
type Move struct {
	Len float64
}

func (Move) Symbol() lsystem.Symbol { return "f" }

func (m Move) ChangeState(t *Turtle) { t.Advance(m.Len) }

func (m Move) String() string { return fmt.Sprintf("f(%g)", m.Len) }

// Left turns the turtle counterclockwise by Angle degrees.
type Left struct {
	Angle float64
}

func (Left) Symbol() lsystem.Symbol { return "+" }

func (l Left) ChangeState(t *Turtle) { t.Rotate(l.Angle) }

func (Left) String() string { return "+" }

// Right turns the turtle clockwise by Angle degrees.
type Right struct {
	Angle float64
}

func (Right) Symbol() lsystem.Symbol { return "-" }

func (r Right) ChangeState(t *Turtle) { t.Rotate(-r.Angle) }

func (Right) String() string { return "-" }

// Mark is a queryable position probe: it records the turtle's position
// into its own payload each time the derivation is evaluated.
type Mark struct {
	X, Y float64
}

func (*Mark) Symbol() lsystem.Symbol { return "?" }

func (*Mark) ChangeState(*Turtle) {}

func (m *Mark) QueryState(t *Turtle) {
	m.X, m.Y = t.X, t.Y
}

func (m *Mark) String() string { return fmt.Sprintf("?(%.4g,%.4g)", m.X, m.Y) }

// Pen draws like Draw under a custom symbol, for alphabets with more than
// one drawing letter (e.g. the Sierpinski F/G pair).
type Pen struct {
	Sym lsystem.Symbol
	Len float64
}

func (p Pen) Symbol() lsystem.Symbol { return p.Sym }

func (p Pen) ChangeState(t *Turtle) { t.Advance(p.Len) }

func (p Pen) String() string { return string(p.Sym) }

// Ident is a no-op module for abstract grammar letters (X, A, ...). It
// exists only to be matched and rewritten.
type Ident struct {
	Sym lsystem.Symbol
}

func (id Ident) Symbol() lsystem.Symbol { return id.Sym }

func (Ident) ChangeState(*Turtle) {}
