package machines

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/bf/tapes"
	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, m *Machine, input string) string {
	t.Helper()
	out := new(bytes.Buffer)
	m.Output = bufio.NewWriter(out)
	m.Input = strings.NewReader(input)
	if err := m.Exec(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func cell(t *testing.T, m *Machine) byte {
	t.Helper()
	v, err := m.Cell()
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestHi(t *testing.T) {
	program := "++++++++[>+++++++++<-]>." + strings.Repeat("+", 33) + "."
	m := New([]byte(program))
	out := run(t, m, "")
	if out != "Hi" {
		t.Fatalf("got %q", out)
	}
	if len(m.Loops) != 0 {
		t.Fatalf("got %v", m.Loops)
	}
}

func TestWraparound(t *testing.T) {
	m := New([]byte("-"))
	run(t, m, "")
	if v := cell(t, m); v != 255 {
		t.Fatalf("got %v", v)
	}

	m = New([]byte("-+"))
	run(t, m, "")
	if v := cell(t, m); v != 0 {
		t.Fatalf("got %v", v)
	}

	m = New([]byte(strings.Repeat("+", 256)))
	run(t, m, "")
	if v := cell(t, m); v != 0 {
		t.Fatalf("got %v", v)
	}
}

func TestSkipFalseLoop(t *testing.T) {
	m := New([]byte("[-]"))
	run(t, m, "")
	if v := cell(t, m); v != 0 {
		t.Fatalf("got %v", v)
	}
	if m.PC != 3 {
		t.Fatalf("got %v", m.PC)
	}
	// only '[' was dispatched
	if m.Steps != 1 {
		t.Fatalf("got %v", m.Steps)
	}
}

func TestRepeatLoop(t *testing.T) {
	m := New([]byte("+++[-]"))
	decrements := 0
	for {
		if m.Skip == 0 && !m.Done() && m.Program[m.PC] == OpDec {
			decrements++
		}
		done, intr, err := m.Step()
		if err != nil {
			t.Fatal(err)
		}
		if intr != nil {
			t.Fatalf("got %+v", intr)
		}
		if done {
			break
		}
	}
	if decrements != 3 {
		t.Fatalf("got %v", decrements)
	}
	if v := cell(t, m); v != 0 {
		t.Fatalf("got %v", v)
	}
	if len(m.Loops) != 0 {
		t.Fatalf("got %v", m.Loops)
	}
}

func TestNestedSkip(t *testing.T) {
	m := New([]byte("[[[]]]x"))
	var skips []int
	for {
		done, _, err := m.Step()
		if err != nil {
			t.Fatal(err)
		}
		if done {
			break
		}
		skips = append(skips, m.Skip)
	}
	assert.Equal(t, []int{1, 2, 3, 2, 1, 0, 0}, skips)
	assert.Equal(t, 7, m.PC)
	assert.Equal(t, int64(1), m.Steps)
}

func TestNestedLoops(t *testing.T) {
	// 3 * 4 into the next cell, with an inner loop
	m := New([]byte("+++[>++++[>+<-]<-]>>."))
	out := run(t, m, "")
	if out != "\x0c" {
		t.Fatalf("got %q", out)
	}
}

func TestEndInSkipMode(t *testing.T) {
	m := New([]byte("[+++"))
	run(t, m, "")
	if m.Skip != 1 {
		t.Fatalf("got %v", m.Skip)
	}
	if v := cell(t, m); v != 0 {
		t.Fatalf("got %v", v)
	}
}

func TestLoopOverflow(t *testing.T) {
	m := New([]byte("+[[[[+"))
	m.MaxDepth = 3
	err := m.Exec(context.Background(), nil)
	if !errors.Is(err, ErrLoopOverflow) {
		t.Fatalf("got %v", err)
	}
	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("got %T", err)
	}
	if runErr.PC != 4 || runErr.Op != OpLoopStart {
		t.Fatalf("got %+v", runErr)
	}
	// the trailing '+' never ran
	if v := cell(t, m); v != 1 {
		t.Fatalf("got %v", v)
	}
	if m.PC != 5 {
		t.Fatalf("got %v", m.PC)
	}
}

func TestUnmatchedLoopEnd(t *testing.T) {
	for _, program := range []string{"+]", "]", "+[-]]"} {
		m := New([]byte(program))
		err := m.Exec(context.Background(), nil)
		if !errors.Is(err, ErrUnmatchedLoopEnd) {
			t.Fatalf("%s: got %v", program, err)
		}
	}
}

func TestInputExhaustion(t *testing.T) {
	m := New([]byte(",+,"))
	run(t, m, "a")
	if v := cell(t, m); v != 'b' {
		t.Fatalf("got %v", v)
	}

	m = New([]byte(",+,"))
	m.EOF = EOFZero
	run(t, m, "a")
	if v := cell(t, m); v != 0 {
		t.Fatalf("got %v", v)
	}

	m = New([]byte(",+,"))
	m.EOF = EOFMax
	run(t, m, "a")
	if v := cell(t, m); v != 255 {
		t.Fatalf("got %v", v)
	}

	// default input is always at end
	m = New([]byte("+++,"))
	if err := m.Exec(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if v := cell(t, m); v != 3 {
		t.Fatalf("got %v", v)
	}
}

func TestEcho(t *testing.T) {
	m := New([]byte(",[.,]"))
	m.EOF = EOFZero
	out := run(t, m, "hello")
	if out != "hello" {
		t.Fatalf("got %q", out)
	}
}

type badInput struct{}

var errBadInput = errors.New("bad input")

func (badInput) ReadByte() (byte, error) {
	return 0, errBadInput
}

func TestInputError(t *testing.T) {
	m := New([]byte(","))
	m.Input = badInput{}
	err := m.Exec(context.Background(), nil)
	if !errors.Is(err, errBadInput) {
		t.Fatalf("got %v", err)
	}
}

type countingOutput struct {
	bytes.Buffer
	flushes int
}

func (c *countingOutput) Flush() error {
	c.flushes++
	return nil
}

func TestFlushPerOutput(t *testing.T) {
	m := New([]byte("+.+.+."))
	out := new(countingOutput)
	m.Output = out
	if err := m.Exec(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []byte{1, 2, 3}, out.Bytes())
	assert.Equal(t, 3, out.flushes)
}

func TestTapeHalves(t *testing.T) {
	m := New([]byte("<<+>>+"))
	run(t, m, "")
	assert.Equal(t, []byte{1}, m.Tape.Positive)
	assert.Equal(t, []byte{0, 1}, m.Tape.Negative)
	assert.Equal(t, 0, m.Addr)
}

func TestTapeExhausted(t *testing.T) {
	m := New([]byte(">>>+"))
	m.Tape.MaxCells = 2
	err := m.Exec(context.Background(), nil)
	if !errors.Is(err, tapes.ErrExhausted) {
		t.Fatalf("got %v", err)
	}
	if m.Addr != 1 {
		t.Fatalf("got %v", m.Addr)
	}
}

func TestIgnoredBytes(t *testing.T) {
	m := New([]byte("hello + world # +\n"))
	run(t, m, "")
	if v := cell(t, m); v != 2 {
		t.Fatalf("got %v", v)
	}
	if m.Steps != 2 {
		t.Fatalf("got %v", m.Steps)
	}
}

func TestBreakpoints(t *testing.T) {
	m := New([]byte("+#+#"))
	m.Breakpoints = true
	var pcs []int
	for intr, err := range m.Run {
		if err != nil {
			t.Fatal(err)
		}
		if !intr.Break {
			t.Fatal()
		}
		v, _ := m.Cell()
		pcs = append(pcs, intr.PC, int(v))
	}
	assert.Equal(t, []int{1, 1, 3, 2}, pcs)

	// stop at the first interrupt
	m = New([]byte("+#+"))
	m.Breakpoints = true
	for range m.Run {
		break
	}
	if v := cell(t, m); v != 1 {
		t.Fatalf("got %v", v)
	}

	// a break inside a skipped loop is ignored
	m = New([]byte("[#]"))
	m.Breakpoints = true
	n := 0
	err := m.Exec(context.Background(), func(context.Context, *Machine, *Interrupt) {
		n++
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("got %v", n)
	}
}

func TestRunError(t *testing.T) {
	m := New([]byte("+]"))
	for intr, err := range m.Run {
		if intr != nil {
			t.Fatal()
		}
		if !strings.Contains(err.Error(), "pc 1: ']' at address 0") {
			t.Fatalf("got %v", err)
		}
	}
}

func TestExecCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := New([]byte("+"))
	if err := m.Exec(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestState(t *testing.T) {
	m := New([]byte("+>++<"))
	run(t, m, "")
	state := m.State()
	assert.Equal(t, 5, state["pc"])
	assert.Equal(t, 0, state["addr"])
	assert.Equal(t, byte(1), state["cell"])
	window := state["window"].([]byte)
	assert.Equal(t, 16, len(window))
	assert.Equal(t, byte(1), window[8])
	assert.Equal(t, byte(2), window[9])
	// State does not grow the tape
	pos, neg := m.Tape.Len()
	assert.Equal(t, 2, pos)
	assert.Equal(t, 0, neg)
}

func TestParseEOFPolicy(t *testing.T) {
	for s, want := range map[string]EOFPolicy{
		"":          EOFUnchanged,
		"unchanged": EOFUnchanged,
		"zero":      EOFZero,
		"0":         EOFZero,
		"max":       EOFMax,
		"-1":        EOFMax,
	} {
		got, err := ParseEOFPolicy(s)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("%s: got %v", s, got)
		}
	}
	if _, err := ParseEOFPolicy("foo"); err == nil {
		t.Fatal("should error")
	}
}
