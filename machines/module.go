package machines

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/reusee/bf/bfconfigs"
	"github.com/reusee/bf/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs bfconfigs.Module
	Logs    logs.Module
}

func (Module) Input() Input {
	return bufio.NewReader(os.Stdin)
}

func (Module) Output() Output {
	return bufio.NewWriter(os.Stdout)
}

type NewMachine func(program []byte) (*Machine, error)

func (Module) NewMachine(
	logger logs.Logger,
	input Input,
	output Output,
	maxDepth bfconfigs.MaxDepth,
	maxCells bfconfigs.MaxCells,
	eof bfconfigs.EOF,
	trace bfconfigs.Trace,
	breakpoints bfconfigs.Breakpoints,
) NewMachine {
	return func(program []byte) (*Machine, error) {
		policy, err := ParseEOFPolicy(string(eof))
		if err != nil {
			return nil, err
		}

		m := New(program)
		m.Input = input
		m.Output = output
		m.MaxDepth = max(int(maxDepth), 1)
		m.EOF = policy
		m.Logger = logger
		m.Trace = bool(trace)
		m.Breakpoints = bool(breakpoints)
		m.Tape.MaxCells = int(maxCells)
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			m.Tape.OnGrow = func(negative bool, size int) {
				half := "positive"
				if negative {
					half = "negative"
				}
				logger.Debug("tape grown", "half", half, "size", size)
			}
		}

		logger.Debug("machine",
			"program", len(program),
			"max_depth", m.MaxDepth,
			"max_cells", m.Tape.MaxCells,
			"eof", m.EOF,
			"trace", m.Trace,
			"breakpoints", m.Breakpoints,
		)

		return m, nil
	}
}
