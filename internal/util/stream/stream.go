package stream

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Optimization is a best-effort I/O hint. Actions return os.ErrInvalid
// when they do not apply to the file at hand; callers treat that as a
// silent skip and anything else as merely worth logging.
type Optimization struct {
	Name   string
	Action func(fh *os.File, stat os.FileInfo) error
}

// IsTTY reports whether the given reader/writer is an interactive
// terminal. Anything that is not an *os.File cannot be one.
func IsTTY(maybeFh interface{}) bool {
	fh, isFile := maybeFh.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(fh.Fd())
}
