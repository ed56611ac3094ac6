package machines

import (
	"bufio"
	"fmt"
	"io"
)

// Input returns io.EOF at end of input.
type Input interface {
	io.ByteReader
}

// Output must flush after each '.' so program output is never held back.
type Output interface {
	io.ByteWriter
	Flush() error
}

var _ Output = new(bufio.Writer)

type EOFPolicy uint8

const (
	// EOFUnchanged leaves the cell as it was
	EOFUnchanged EOFPolicy = iota
	// EOFZero sets the cell to 0
	EOFZero
	// EOFMax sets the cell to 255
	EOFMax
)

func ParseEOFPolicy(s string) (EOFPolicy, error) {
	switch s {
	case "", "unchanged":
		return EOFUnchanged, nil
	case "zero", "0":
		return EOFZero, nil
	case "max", "-1":
		return EOFMax, nil
	}
	return 0, fmt.Errorf("bad eof policy: %q", s)
}

func (p EOFPolicy) String() string {
	switch p {
	case EOFUnchanged:
		return "unchanged"
	case EOFZero:
		return "zero"
	case EOFMax:
		return "max"
	}
	return fmt.Sprintf("EOFPolicy(%d)", p)
}

type emptyInput struct{}

func (emptyInput) ReadByte() (byte, error) {
	return 0, io.EOF
}
