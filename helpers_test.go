package lsystem

import "fmt"

// log is a minimal traversal state: an append-only event trail with a deep
// Clone, so branch isolation failures are visible as leaked events.
type log struct {
	events []string
}

func (l *log) Clone() *log {
	c := make([]string, len(l.events))
	copy(c, l.events)
	return &log{events: c}
}

// sym is a plain module carrying an integer payload.
type sym struct {
	tag Symbol
	val int
}

func (s sym) Symbol() Symbol { return s.tag }

func (s sym) ChangeState(l *log) {
	l.events = append(l.events, s.String())
}

func (s sym) String() string { return fmt.Sprintf("%s(%d)", s.tag, s.val) }

// probe is a queryable module that snapshots the trail it observed.
type probe struct {
	tag  Symbol
	seen []string
}

func (p *probe) Symbol() Symbol { return p.tag }

func (p *probe) ChangeState(l *log) {
	l.events = append(l.events, string(p.tag))
}

func (p *probe) QueryState(l *log) {
	p.seen = append([]string(nil), l.events...)
}

// fixedRand replays a fixed draw sequence and counts consumption.
type fixedRand struct {
	draws []float64
	used  int
}

func (f *fixedRand) Float64() float64 {
	v := f.draws[f.used%len(f.draws)]
	f.used++
	return v
}

func nodes(mods ...Module[*log]) *Derivation[*log] {
	d := NewDerivation[*log]()
	for _, m := range mods {
		d.Append(NewNode[*log](0, m))
	}
	return d
}
