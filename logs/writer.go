package logs

import (
	"io"
	"os"
)

// Writer receives text logs and traces. Program output never goes here.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
