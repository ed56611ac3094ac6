package machines

import (
	"context"
	"errors"
	"io"
)

const ctxCheckInterval = 1 << 12

// Step executes the instruction at PC.
// done is true when PC reached the end of the program; errors are fatal for the run.
func (m *Machine) Step() (done bool, intr *Interrupt, err error) {
	if m.PC >= len(m.Program) {
		return true, nil, nil
	}
	pc := m.PC
	op := m.Program[pc]
	m.PC++

	if m.Skip > 0 {
		switch op {
		case OpLoopStart:
			m.Skip++
		case OpLoopEnd:
			m.Skip--
		}
		return false, nil, nil
	}

	if !IsOp(op) && (op != OpBreak || !m.Breakpoints) {
		return false, nil, nil
	}
	m.Steps++

	if m.Trace {
		m.Logger.Debug("exec",
			"pc", pc,
			"op", string(rune(op)),
			"addr", m.Addr,
			"cell", m.Tape.Peek(m.Addr),
			"depth", len(m.Loops),
		)
	}

	fail := func(err error) (bool, *Interrupt, error) {
		return false, nil, &RunError{
			PC:   pc,
			Addr: m.Addr,
			Op:   op,
			Err:  err,
		}
	}

	switch op {

	case OpRight, OpLeft:
		addr := m.Addr + 1
		if op == OpLeft {
			addr = m.Addr - 1
		}
		if _, err := m.Tape.Resolve(addr); err != nil {
			return fail(err)
		}
		m.Addr = addr

	case OpInc:
		cell, err := m.Tape.Resolve(m.Addr)
		if err != nil {
			return fail(err)
		}
		*cell = byte((int(*cell) + 1) % 256)

	case OpDec:
		cell, err := m.Tape.Resolve(m.Addr)
		if err != nil {
			return fail(err)
		}
		*cell = byte((int(*cell) + 255) % 256)

	case OpOutput:
		cell, err := m.Tape.Resolve(m.Addr)
		if err != nil {
			return fail(err)
		}
		if err := m.Output.WriteByte(*cell); err != nil {
			return fail(err)
		}
		if err := m.Output.Flush(); err != nil {
			return fail(err)
		}

	case OpInput:
		b, err := m.Input.ReadByte()
		if errors.Is(err, io.EOF) {
			m.Logger.Debug("end of input", "pc", pc, "policy", m.EOF)
			switch m.EOF {
			case EOFZero:
				if err := m.Tape.Set(m.Addr, 0); err != nil {
					return fail(err)
				}
			case EOFMax:
				if err := m.Tape.Set(m.Addr, 255); err != nil {
					return fail(err)
				}
			default:
				if _, err := m.Tape.Resolve(m.Addr); err != nil {
					return fail(err)
				}
			}
			break
		}
		if err != nil {
			return fail(err)
		}
		if m.Trace {
			m.Logger.Debug("input", "byte", b)
		}
		if err := m.Tape.Set(m.Addr, b); err != nil {
			return fail(err)
		}

	case OpLoopStart:
		cell, err := m.Tape.Resolve(m.Addr)
		if err != nil {
			return fail(err)
		}
		if *cell == 0 {
			m.Skip = 1
			break
		}
		// ']' jumps back here, so the guard is tested and the position pushed again
		if err := m.push(pc); err != nil {
			return fail(err)
		}

	case OpLoopEnd:
		cell, err := m.Tape.Resolve(m.Addr)
		if err != nil {
			return fail(err)
		}
		start, err := m.pop()
		if err != nil {
			return fail(err)
		}
		if *cell != 0 {
			m.PC = start
		}

	case OpBreak:
		return false, &Interrupt{
			Break: true,
			PC:    pc,
		}, nil

	}

	return false, nil, nil
}

// Run steps until the end of the program, yielding interrupts and errors.
// A yielded error ends the run.
func (m *Machine) Run(yield func(*Interrupt, error) bool) {
	for {
		done, intr, err := m.Step()
		if err != nil {
			yield(nil, err)
			return
		}
		if done {
			return
		}
		if intr != nil {
			if !yield(intr, nil) {
				return
			}
		}
	}
}

// Exec runs the program to the end, calling onBreak on each breakpoint.
func (m *Machine) Exec(ctx context.Context, onBreak func(ctx context.Context, m *Machine, intr *Interrupt)) error {
	defer func() {
		positive, negative := m.Tape.Len()
		m.Logger.DebugContext(ctx, "run end",
			"pc", m.PC,
			"steps", m.Steps,
			"positive", positive,
			"negative", negative,
		)
	}()

	for i := 0; ; i++ {
		if i%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		done, intr, err := m.Step()
		if err != nil {
			m.Logger.DebugContext(ctx, "run failed", "error", err)
			return err
		}
		if done {
			return nil
		}
		if intr != nil && onBreak != nil {
			onBreak(ctx, m, intr)
		}
	}
}
