package turtle

import "github.com/PixelsForGlory/lsystem"

// Segment is one drawn line in world coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Trace replays a derivation from the given start pose and collects the
// segments drawn by Draw modules, branching with the same copy-on-branch
// semantics as evaluation. The start pose is not mutated.
func Trace(d *lsystem.Derivation[*Turtle], start *Turtle) []Segment {
	segs := make([]Segment, 0, d.Count())
	traceLevel(d, start.Clone(), &segs)
	return segs
}

func traceLevel(level *lsystem.Derivation[*Turtle], t *Turtle, segs *[]Segment) {
	for i := 0; i < level.Len(); i++ {
		n := level.At(i)
		x0, y0 := t.X, t.Y
		n.Module.ChangeState(t)
		if q, ok := n.Module.(lsystem.QueryModule[*Turtle]); ok {
			q.QueryState(t)
		}
		switch n.Module.(type) {
		case Draw, Pen:
			*segs = append(*segs, Segment{X1: x0, Y1: y0, X2: t.X, Y2: t.Y})
		}
		if n.Branch != nil {
			traceLevel(n.Branch, t.Clone(), segs)
		}
	}
}
