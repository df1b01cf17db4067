package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// PrettyLogger prints short status lines for people, next to the structured
// log. Commands write it to stderr so stdout stays parseable.
type PrettyLogger struct {
	w io.Writer

	ok, warn, fail, key, value lipgloss.Style
}

// NewPrettyLogger returns a PrettyLogger writing to w.
func NewPrettyLogger(w io.Writer) *PrettyLogger {
	return &PrettyLogger{
		w:     w,
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		fail:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		key:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		value: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

func (p *PrettyLogger) Success(msg string) {
	fmt.Fprintln(p.w, p.ok.Render("✓ "+msg))
}

func (p *PrettyLogger) Warn(msg string) {
	fmt.Fprintln(p.w, p.warn.Render("⚠ "+msg))
}

// Error prints msg, followed by err when it is non-nil.
func (p *PrettyLogger) Error(msg string, err error) {
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(p.w, p.fail.Render("✗ "+msg))
}

// Field prints an indented "key: value" line.
func (p *PrettyLogger) Field(key string, value any) {
	fmt.Fprintf(p.w, "  %s %s\n", p.key.Render(key+":"), p.value.Render(fmt.Sprint(value)))
}
