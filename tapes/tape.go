package tapes

import (
	"errors"
	"fmt"
)

var ErrExhausted = errors.New("tape exhausted")

// Tape is a byte tape unbounded in both directions.
// Address a >= 0 lives in Positive[a], address a < 0 in Negative[-a-1].
type Tape struct {
	Positive []byte
	Negative []byte

	// MaxCells bounds the length of each half, zero means unbounded
	MaxCells int

	// OnGrow is called after a half grew to size cells
	OnGrow func(negative bool, size int)
}

func New() *Tape {
	return &Tape{}
}

func split(addr int) (negative bool, index int) {
	if addr < 0 {
		return true, -addr - 1
	}
	return false, addr
}

// Resolve returns the cell at addr, materializing zero cells as needed.
// The returned pointer is only valid until the next call that may grow the tape.
func (t *Tape) Resolve(addr int) (*byte, error) {
	negative, index := split(addr)
	half := &t.Positive
	if negative {
		half = &t.Negative
	}
	if index >= len(*half) {
		if t.MaxCells > 0 && index >= t.MaxCells {
			return nil, fmt.Errorf("address %d: %w (max %d cells per half)", addr, ErrExhausted, t.MaxCells)
		}
		for len(*half) <= index {
			*half = append(*half, 0)
			if t.OnGrow != nil {
				t.OnGrow(negative, len(*half))
			}
		}
	}
	return &(*half)[index], nil
}

func (t *Tape) Get(addr int) (byte, error) {
	cell, err := t.Resolve(addr)
	if err != nil {
		return 0, err
	}
	return *cell, nil
}

func (t *Tape) Set(addr int, value byte) error {
	cell, err := t.Resolve(addr)
	if err != nil {
		return err
	}
	*cell = value
	return nil
}

func (t *Tape) Len() (positive, negative int) {
	return len(t.Positive), len(t.Negative)
}

// Cells returns a copy of the cells in [from, to) without growing the tape.
// An empty or reversed range gives an empty slice.
func (t *Tape) Cells(from, to int) []byte {
	ret := make([]byte, 0, max(to-from, 0))
	for addr := from; addr < to; addr++ {
		ret = append(ret, t.Peek(addr))
	}
	return ret
}

// Peek returns the value at addr without materializing it.
func (t *Tape) Peek(addr int) byte {
	negative, index := split(addr)
	half := t.Positive
	if negative {
		half = t.Negative
	}
	if index < len(half) {
		return half[index]
	}
	return 0
}
