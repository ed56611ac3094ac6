package machines

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/reusee/bf/tapes"
)

const DefaultMaxDepth = 100

// Machine holds all state of one program run.
type Machine struct {
	Program []byte
	Tape    *tapes.Tape

	// PC is the index of the next instruction
	PC int
	// Addr is the virtual address of the current cell
	Addr int
	// Loops holds the position of each entered '['
	Loops []int
	// Skip is the bracket depth while scanning past a loop whose guard was zero
	Skip int
	// Steps counts dispatched instructions
	Steps int64

	Input       Input
	Output      Output
	MaxDepth    int
	EOF         EOFPolicy
	Logger      *slog.Logger
	Trace       bool
	Breakpoints bool
}

func New(program []byte) *Machine {
	return &Machine{
		Program:  program,
		Tape:     tapes.New(),
		Loops:    make([]int, 0, 16),
		Input:    emptyInput{},
		Output:   bufio.NewWriter(io.Discard),
		MaxDepth: DefaultMaxDepth,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// Done reports whether the program counter reached the end of the program.
func (m *Machine) Done() bool {
	return m.PC >= len(m.Program)
}

// Cell returns the current cell value, materializing it if needed.
func (m *Machine) Cell() (byte, error) {
	return m.Tape.Get(m.Addr)
}

func (m *Machine) push(pc int) error {
	if len(m.Loops) >= m.MaxDepth {
		return ErrLoopOverflow
	}
	m.Loops = append(m.Loops, pc)
	return nil
}

func (m *Machine) pop() (int, error) {
	if len(m.Loops) == 0 {
		return 0, ErrUnmatchedLoopEnd
	}
	pc := m.Loops[len(m.Loops)-1]
	m.Loops = m.Loops[:len(m.Loops)-1]
	return pc, nil
}

// State returns the machine registers and a window of cells around the current address.
// It does not grow the tape.
func (m *Machine) State() map[string]any {
	from, to := m.Addr-8, m.Addr+8
	window := m.Tape.Cells(from, to)
	positive, negative := m.Tape.Len()
	return map[string]any{
		"pc":       m.PC,
		"addr":     m.Addr,
		"cell":     m.Tape.Peek(m.Addr),
		"loops":    append([]int(nil), m.Loops...),
		"skip":     m.Skip,
		"steps":    m.Steps,
		"window":   window,
		"from":     from,
		"positive": positive,
		"negative": negative,
	}
}
