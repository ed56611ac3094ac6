package machines

import (
	"errors"
	"fmt"
)

var (
	ErrLoopOverflow     = errors.New("too many nested loops")
	ErrUnmatchedLoopEnd = errors.New("unmatched ']'")
	ErrProgramMismatch  = errors.New("snapshot taken from another program")
)

// RunError is a fatal error raised by the instruction at PC.
type RunError struct {
	PC   int
	Addr int
	Op   Op
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("pc %d: '%c' at address %d: %v", e.PC, e.Op, e.Addr, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
