// Package logging holds the debug switch shared by the h2mcfg tools. All
// other output goes through the standard log package with INFO:/WARN:/ERROR:
// prefixes.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// DebugEnabled controls whether Debug() produces output.
// Set via -debug flag or DEBUG=1 environment variable.
var DebugEnabled bool

// Configure sets DebugEnabled from the flag value or the DEBUG environment
// variable.
func Configure(debugFlag bool) {
	DebugEnabled = debugFlag || os.Getenv("DEBUG") == "1"
}

// Debug logs a message only when DebugEnabled is true.
func Debug(format string, args ...any) {
	if DebugEnabled {
		log.Printf("DEBUG: "+format, args...)
	}
}

// RedirectToFile points the default logger at path (appending). An empty
// path discards log output. The returned closer must be closed on exit.
func RedirectToFile(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	log.SetOutput(f)
	return f, nil
}
