package machines

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/reusee/bf/tapes"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("machines: create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type snapshot struct {
	Program  []byte `cbor:"program"`
	PC       int    `cbor:"pc"`
	Addr     int    `cbor:"addr"`
	Loops    []int  `cbor:"loops"`
	Skip     int    `cbor:"skip"`
	Steps    int64  `cbor:"steps"`
	Positive []byte `cbor:"positive"`
	Negative []byte `cbor:"negative"`
}

// Snapshot writes the execution state and tape contents in canonical CBOR.
func (m *Machine) Snapshot(w io.Writer) error {
	data, err := cborEncMode.Marshal(snapshot{
		Program:  m.Program,
		PC:       m.PC,
		Addr:     m.Addr,
		Loops:    m.Loops,
		Skip:     m.Skip,
		Steps:    m.Steps,
		Positive: m.Tape.Positive,
		Negative: m.Tape.Negative,
	})
	if err != nil {
		return fmt.Errorf("machines: marshal snapshot: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return nil
}

// Restore loads a snapshot taken from a machine running the same program.
// Tape limits and hooks are kept.
func (m *Machine) Restore(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var s snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("machines: unmarshal snapshot: %w", err)
	}
	if !bytes.Equal(s.Program, m.Program) {
		return ErrProgramMismatch
	}
	if s.PC < 0 || s.PC > len(m.Program) || s.Skip < 0 || len(s.Loops) > m.MaxDepth {
		return fmt.Errorf("machines: bad snapshot state: pc %d, skip %d, depth %d", s.PC, s.Skip, len(s.Loops))
	}
	for _, start := range s.Loops {
		if start < 0 || start >= len(m.Program) || m.Program[start] != OpLoopStart {
			return fmt.Errorf("machines: bad snapshot state: loop start %d", start)
		}
	}
	if m.Tape.MaxCells > 0 {
		if len(s.Positive) > m.Tape.MaxCells || len(s.Negative) > m.Tape.MaxCells ||
			s.Addr >= m.Tape.MaxCells || -s.Addr-1 >= m.Tape.MaxCells {
			return fmt.Errorf("machines: restore: %w", tapes.ErrExhausted)
		}
	}
	m.PC = s.PC
	m.Addr = s.Addr
	m.Loops = append(m.Loops[:0], s.Loops...)
	m.Skip = s.Skip
	m.Steps = s.Steps
	m.Tape.Positive = append([]byte(nil), s.Positive...)
	m.Tape.Negative = append([]byte(nil), s.Negative...)
	return nil
}
