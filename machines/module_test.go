package machines

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/bf/bfconfigs"
	"github.com/reusee/bf/configs"
	"github.com/reusee/bf/logs"
	"github.com/reusee/bf/modes"
	"github.com/reusee/dscope"
)

func TestModule(t *testing.T) {
	out := new(bytes.Buffer)
	logBuf := new(bytes.Buffer)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, bfconfigs.Schema)
		},
		func() Input {
			return strings.NewReader("A")
		},
		func() Output {
			return bufio.NewWriter(out)
		},
		func() logs.Writer {
			return logBuf
		},
		func() logs.Verbosity {
			return 2
		},
		func() bfconfigs.MaxDepth {
			return 2
		},
	).Call(func(
		newMachine NewMachine,
	) {
		m, err := newMachine([]byte(",+."))
		if err != nil {
			t.Fatal(err)
		}
		if !m.Trace {
			t.Fatal()
		}
		if m.MaxDepth != 2 {
			t.Fatalf("got %v", m.MaxDepth)
		}
		if m.Tape.MaxCells != bfconfigs.DefaultMaxCells {
			t.Fatalf("got %v", m.Tape.MaxCells)
		}
		if err := m.Exec(context.Background(), nil); err != nil {
			t.Fatal(err)
		}
		if out.String() != "B" {
			t.Fatalf("got %q", out.String())
		}
		for _, want := range []string{
			"msg=exec",
			"op=,",
			"msg=\"tape grown\"",
			"msg=\"run end\"",
		} {
			if !strings.Contains(logBuf.String(), want) {
				t.Fatalf("missing %s in %s", want, logBuf.String())
			}
		}

		m, err = newMachine([]byte("+[[["))
		if err != nil {
			t.Fatal(err)
		}
		if err := m.Exec(context.Background(), nil); !errors.Is(err, ErrLoopOverflow) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestModuleBadEOF(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, bfconfigs.Schema)
		},
		func() bfconfigs.EOF {
			return "minus-one"
		},
	).Call(func(
		newMachine NewMachine,
	) {
		if _, err := newMachine(nil); err == nil {
			t.Fatal("should error")
		}
	})
}
