package logviewer

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// StreamWriter implements io.Writer and sends complete log lines as messages to a TUI program.
// It buffers partial lines until a newline is encountered, ensuring that log lines are not split
// in the middle when streaming output.
type StreamWriter struct {
	sender Sender
	source string
	buffer strings.Builder
	mu     sync.Mutex
}

// NewStreamWriter creates a StreamWriter that sends lines tagged with source
// to sender.
func NewStreamWriter(sender Sender, source string) *StreamWriter {
	return &StreamWriter{sender: sender, source: source}
}

// Write implements io.Writer. It buffers incoming data and sends complete lines
// (terminated by newline) as LogLineMsg.
func (w *StreamWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buffer.Write(p)
	lines := strings.Split(w.buffer.String(), "\n")

	// Keep the last incomplete line in the buffer
	w.buffer.Reset()
	w.buffer.WriteString(lines[len(lines)-1])

	for _, line := range lines[:len(lines)-1] {
		if w.sender != nil && line != "" {
			w.sender.Send(LogLineMsg{Source: w.source, Line: line})
		}
	}
	return len(p), nil
}
