package bfconfigs

import (
	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/configs"
	"github.com/reusee/bf/vars"
)

const DefaultMaxDepth = 100

// MaxDepth is the capacity of the loop-start stack.
type MaxDepth int

var _ configs.Configurable = MaxDepth(0)

func (MaxDepth) ConfigExpr() string {
	return "max_depth"
}

var maxDepthFlag = cmds.Var[int]("-depth")

func init() {
	cmds.Describe("-depth", "loop-start stack capacity")
}

func (Module) MaxDepth(
	loader configs.Loader,
) MaxDepth {
	return vars.FirstNonZero(
		MaxDepth(*maxDepthFlag),
		configs.Lookup[MaxDepth](loader),
		DefaultMaxDepth,
	)
}
