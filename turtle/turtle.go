// Package turtle provides a 2D turtle-graphics interpretation of
// derivations: a pose state threaded through a generation plus the
// standard module alphabet (draw, move, turn, mark).
package turtle

import "math"

// Turtle is a pen pose in world coordinates. It is the traversal state for
// the module set in this package; Clone returns an independent copy so
// branches leave the parent pose untouched.
type Turtle struct {
	X, Y    float64
	Heading float64 // degrees counterclockwise from +x
}

// New returns a turtle at the origin facing up.
func New() *Turtle {
	return &Turtle{Heading: 90}
}

func (t *Turtle) Clone() *Turtle {
	c := *t
	return &c
}

// Advance moves the turtle along its heading.
func (t *Turtle) Advance(dist float64) {
	rad := t.Heading * math.Pi / 180
	t.X += dist * math.Cos(rad)
	t.Y += dist * math.Sin(rad)
}

// Rotate turns the turtle counterclockwise by deg degrees.
func (t *Turtle) Rotate(deg float64) {
	t.Heading += deg
	for t.Heading >= 360 {
		t.Heading -= 360
	}
	for t.Heading < 0 {
		t.Heading += 360
	}
}
