package bfconfigs

import (
	"errors"

	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/configs"
	"github.com/reusee/bf/vars"
)

// DefaultMaxCells bounds each half tape to 1GiB.
const DefaultMaxCells = 1 << 30

// MaxCells is the number of cells each half tape may grow to, 0 for unbounded.
type MaxCells int

var _ configs.Configurable = MaxCells(0)

func (MaxCells) ConfigExpr() string {
	return "max_cells"
}

var maxCellsFlag = cmds.Var[int]("-max-cells")

func init() {
	cmds.Describe("-max-cells", "cells per half tape, negative for unbounded")
}

func (Module) MaxCells(
	loader configs.Loader,
) MaxCells {
	// flag
	if n := *maxCellsFlag; n != 0 {
		return MaxCells(max(n, 0))
	}

	// config, an explicit 0 means unbounded
	var n *int
	err := loader.AssignFirst(MaxCells(0).ConfigExpr(), &n)
	if err == nil {
		return MaxCells(vars.DerefOrZero(n))
	}
	if !errors.Is(err, configs.ErrValueNotFound) {
		panic(err)
	}

	return DefaultMaxCells
}
