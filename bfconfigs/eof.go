package bfconfigs

import (
	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/configs"
	"github.com/reusee/bf/vars"
)

// EOF names the cell update applied when ',' reads at end of input:
// "unchanged", "zero" or "max".
type EOF string

var _ configs.Configurable = EOF("")

func (EOF) ConfigExpr() string {
	return "eof"
}

var eofFlag = cmds.Var[string]("-eof")

func init() {
	cmds.Describe("-eof", "cell value at end of input: unchanged, zero or max")
}

func (Module) EOF(
	loader configs.Loader,
) EOF {
	return vars.FirstNonZero(
		EOF(*eofFlag),
		configs.Lookup[EOF](loader),
		"unchanged",
	)
}
