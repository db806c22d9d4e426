package sixpack

import (
	"io"
	"log"

	"github.com/benedikt-wueller/sixpack/xlog"
)

// debug stores a reference to a logger. It may contain nil for no output.
var debug xlog.Logger

// DebugOn writes debugging information about the decoding process to w. If
// w is nil no output will be written. The function must not be called while
// streams are decoded.
func DebugOn(w io.Writer) {
	if w == nil {
		debug = nil
		return
	}
	debug = log.New(w, "", 0)
}

// DebugOff switches the debugging output off.
func DebugOff() { debug = nil }

func debugf(format string, v ...interface{}) {
	xlog.Printf(debug, format, v...)
}
