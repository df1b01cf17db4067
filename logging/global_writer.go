package logging

import (
	"io"
	"os"
	"sync"
)

// globalWriter is an io.Writer that delegates to an underlying writer,
// which can be swapped at runtime in a thread-safe manner.
type globalWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

// Write implements the io.Writer interface.
func (gw *globalWriter) Write(p []byte) (n int, err error) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()
	return gw.w.Write(p)
}

// Set changes the underlying writer.
func (gw *globalWriter) Set(w io.Writer) io.Writer {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	prev := gw.w
	gw.w = w
	return prev
}

var (
	defaultGlobalWriter = &globalWriter{w: os.Stderr}
	// captureWriter receives the output of loggers that would otherwise be
	// silent on an interactive terminal.
	captureWriter = &globalWriter{w: io.Discard}
)

// SetGlobalOutput redirects the terminal output of every logger and returns
// the previous destination. The TUI uses it to keep log lines out of the
// alternate screen while it runs.
func SetGlobalOutput(w io.Writer) io.Writer {
	return defaultGlobalWriter.Set(w)
}

// GetGlobalOutput returns the singleton instance of the global writer.
func GetGlobalOutput() io.Writer {
	return defaultGlobalWriter
}

// SetCaptureOutput sets where loggers that are silent on an interactive
// terminal write, and returns the previous destination. The TUI points it at
// its log pane.
func SetCaptureOutput(w io.Writer) io.Writer {
	return captureWriter.Set(w)
}
