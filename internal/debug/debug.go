// Package debug prints verbose tracing to stderr when --debug is set.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
)

var (
	enabled atomic.Bool
	prefix  = color.New(color.Faint).SprintFunc()

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// Enable turns debug output on or off.
func Enable(on bool) {
	enabled.Store(on)
}

// Enabled reports whether debug output is on.
func Enabled() bool {
	return enabled.Load()
}

// SetOutput redirects debug output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Printf prints a debug line when debug mode is enabled.
func Printf(format string, args ...interface{}) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, prefix("[DEBUG] ")+format+"\n", args...)
}
