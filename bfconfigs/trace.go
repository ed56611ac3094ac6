package bfconfigs

import (
	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/configs"
	"github.com/reusee/bf/logs"
)

// anyEnabled reports whether any loaded file switches the value on.
// A false in one file does not hide a true in another.
func anyEnabled[T interface {
	~bool
	configs.Configurable
}](loader configs.Loader) bool {
	var zero T
	for enabled := range configs.All[T](loader, zero.ConfigExpr()) {
		if enabled {
			return true
		}
	}
	return false
}

// Trace enables per-instruction logs, on with -d or the trace config key.
type Trace bool

var _ configs.Configurable = Trace(false)

func (Trace) ConfigExpr() string {
	return "trace"
}

func (Module) Trace(
	loader configs.Loader,
	verbosity logs.Verbosity,
) Trace {
	return Trace(verbosity >= 1 || anyEnabled[Trace](loader))
}

// Breakpoints makes '#' stop the program and open the debug tap.
type Breakpoints bool

var _ configs.Configurable = Breakpoints(false)

func (Breakpoints) ConfigExpr() string {
	return "breakpoints"
}

var tapFlag = cmds.Switch("-tap")

func init() {
	cmds.Describe("-tap", "stop at '#' and open a starlark debug shell; the shell reads stdin too, so pipe program input from a file")
}

func (Module) Breakpoints(
	loader configs.Loader,
) Breakpoints {
	return Breakpoints(*tapFlag || anyEnabled[Breakpoints](loader))
}
