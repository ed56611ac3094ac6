package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/debugs"
	"github.com/reusee/bf/logs"
	"github.com/reusee/bf/machines"
	"github.com/reusee/bf/modes"
	"github.com/reusee/bf/programs"
	"github.com/reusee/dscope"
)

var (
	snapshotFile = cmds.Var[string]("-snapshot")
	restoreFile  = cmds.Var[string]("-restore")
)

func init() {
	cmds.Describe("-snapshot", "write the final machine state to a file")
	cmds.Describe("-restore", "resume from a snapshot of the same program")
}

const usage = "Usage: bf [-d]... [options] program\n"

func main() {
	args := cmds.Execute(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	code := run(ctx, scope, args, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, scope dscope.Scope, args []string, stderr io.Writer) (code int) {
	if len(args) == 0 {
		fmt.Fprintf(stderr, "missing program\n%s", usage)
		return 1
	}
	source := args[len(args)-1]

	scope.Call(func(
		newSpan logs.NewSpan,
		load programs.Load,
		newMachine machines.NewMachine,
		tap debugs.Tap,
	) {
		ctx, _ := newSpan(ctx, "run")

		program, err := load(ctx, source)
		if err != nil {
			fmt.Fprintf(stderr, "Couldn't open %s: %v\n%s", source, err, usage)
			code = 1
			return
		}

		m, err := newMachine(program)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			code = 1
			return
		}

		if *restoreFile != "" {
			if err := restore(m, *restoreFile); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				code = 1
				return
			}
		}

		err = m.Exec(ctx, func(ctx context.Context, m *machines.Machine, intr *machines.Interrupt) {
			tap(ctx, fmt.Sprintf("break at %d", intr.PC), tapGlobals(m))
		})

		if *snapshotFile != "" {
			if err := snapshot(m, *snapshotFile); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				code = 1
			}
		}

		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", logs.WrapSpan(ctx, err))
			code = 1
			return
		}
	})

	return
}

// tapGlobals is the machine state plus tape readers for the debug shell.
func tapGlobals(m *machines.Machine) map[string]any {
	globals := m.State()
	globals["peek"] = m.Tape.Peek
	globals["cells"] = m.Tape.Cells
	return globals
}

func restore(m *machines.Machine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.Restore(f)
}

func snapshot(m *machines.Machine, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()
	return m.Snapshot(f)
}
