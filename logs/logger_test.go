package logs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module)).Call(func(
		logger Logger,
	) {
		logger.Warn("test", "hello", "world!")
	})
}

func TestToJournalKey(t *testing.T) {
	if k := toJournalKey("tape.size"); k != "TAPE_SIZE" {
		t.Fatalf("got %s", k)
	}
}

func TestVerbosity(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
		func() Verbosity {
			return 1
		},
	).Call(func(
		logger Logger,
	) {
		logger.Debug("tape grown", "size", 3)
	})
	if !strings.Contains(buf.String(), "tape grown") {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
		func() Verbosity {
			return 0
		},
	).Call(func(
		logger Logger,
	) {
		logger.Debug("tape grown", "size", 3)
	})
	if strings.Contains(buf.String(), "tape grown") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestNewSpan(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
		func() Verbosity {
			return 1
		},
	).Call(func(
		newSpan NewSpan,
	) {
		ctx := context.Background()

		ctx1, span1 := newSpan(ctx, "run")
		_, span2 := newSpan(ctx1, "step")

		lines := strings.Split(buf.String(), "\n")
		if !strings.Contains(lines[0], "span="+string(span1)) {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[1], "span="+string(span2)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[1], "parent="+string(span1)) {
			t.Fatalf("got %v", lines[1])
		}

		err := WrapSpan(ctx1, errors.New("loop overflow"))
		if !strings.Contains(err.Error(), string(span1)) {
			t.Fatalf("got %v", err)
		}
		if WrapSpan(ctx, nil) != nil {
			t.Fatal()
		}
	})
}
