/*
Package xlog provides a small Logger interface and helper functions to
switch debug output and warnings on and off.

The Logger interface is satisfied by *log.Logger. All functions accept a nil
Logger and do nothing in that case, so a package can keep a Logger variable
that is nil as long as debugging is disabled and doesn't need to check it at
every call site.

The package maintains a separate logger for warnings, which is used by
command line tools. Warnings are written to standard error unless they are
suppressed by SetQuiet.
*/
package xlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger is the interface required by the functions of this package. The
// log.Logger type supports this interface.
type Logger interface {
	Output(calldepth int, s string) error
}

// Print outputs the arguments using the logger. If the logger is nil
// nothing will be printed.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf prints the arguments using the format string. If the logger
// argument is nil nothing will be printed.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints the arguments and adds a newline. If the logger argument
// is nil nothing will be printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}

// quiet discards all messages.
type quiet struct{}

func (quiet) Output(calldepth int, s string) error { return nil }

// Quiet is a Logger that never prints anything.
var Quiet Logger = quiet{}

var (
	mu   sync.Mutex
	warn Logger = log.New(os.Stderr, "", 0)
)

// SetOutput directs warnings to w using the given prefix.
func SetOutput(w io.Writer, prefix string) {
	mu.Lock()
	defer mu.Unlock()
	warn = log.New(w, prefix, 0)
}

// SetQuiet suppresses all warnings if q is true. Warnings are written to
// standard error again after SetQuiet(false).
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	if q {
		warn = Quiet
		return
	}
	if warn == Quiet {
		warn = log.New(os.Stderr, "", 0)
	}
}

func warnLogger() Logger {
	mu.Lock()
	defer mu.Unlock()
	return warn
}

// Warn prints a warning.
func Warn(v ...interface{}) {
	warnLogger().Output(2, fmt.Sprint(v...))
}

// Warnf prints a warning using the format string.
func Warnf(format string, v ...interface{}) {
	warnLogger().Output(2, fmt.Sprintf(format, v...))
}
