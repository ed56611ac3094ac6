package main

import (
	"github.com/reusee/bf/debugs"
	"github.com/reusee/bf/machines"
	"github.com/reusee/bf/programs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Machines machines.Module
	Programs programs.Module
	Debugs   debugs.Module
}
