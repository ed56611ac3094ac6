package machines

type Op = byte

const (
	OpRight     Op = '>'
	OpLeft      Op = '<'
	OpInc       Op = '+'
	OpDec       Op = '-'
	OpOutput    Op = '.'
	OpInput     Op = ','
	OpLoopStart Op = '['
	OpLoopEnd   Op = ']'
	OpBreak     Op = '#'
)

func IsOp(b byte) bool {
	switch b {
	case OpRight, OpLeft, OpInc, OpDec, OpOutput, OpInput, OpLoopStart, OpLoopEnd:
		return true
	}
	return false
}
