package lsystem

import (
	"errors"
	"fmt"
)

// Domain errors for rewrite operations.
var (
	// ErrNoPredecessor indicates a production without a predecessor symbol.
	ErrNoPredecessor = errors.New("lsystem: production has no predecessor symbol")

	// ErrNoSuccessor indicates a production without a successor generator.
	ErrNoSuccessor = errors.New("lsystem: production has no successor generator")

	// ErrUntaggedModule indicates a node whose module carries no symbol.
	ErrUntaggedModule = errors.New("lsystem: module has no symbol")

	// ErrNilModule indicates a node without a module.
	ErrNilModule = errors.New("lsystem: node has no module")
)

// RewriteError wraps an error with the generation step and the position of
// the production or node it originated from.
type RewriteError struct {
	Step     int
	Position int
	Symbol   Symbol
	Wrapped  error
}

func (e *RewriteError) Error() string {
	if e.Symbol == Wildcard {
		return fmt.Sprintf("step %d, position %d: %v", e.Step, e.Position, e.Wrapped)
	}
	return fmt.Sprintf("step %d, position %d (%s): %v", e.Step, e.Position, e.Symbol, e.Wrapped)
}

func (e *RewriteError) Unwrap() error {
	return e.Wrapped
}
