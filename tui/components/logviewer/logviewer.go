// Package logviewer is a scrollable pane of application log lines.
package logviewer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/llmcompare/tui/theme"
	"github.com/grovetools/llmcompare/tui/utils/scrollbar"
)

// MaxLines is how many lines the viewer keeps; older lines are dropped.
const MaxLines = 500

// LogLineMsg is sent when a new log line is received.
type LogLineMsg struct {
	Source string
	Line   string
}

// Model is the TUI component for viewing logs.
type Model struct {
	viewport viewport.Model
	follow   bool
	ready    bool
	lines    []string
}

// New creates a new log viewer model.
func New(width, height int) Model {
	m := Model{
		viewport: viewport.New(width, height),
		follow:   true,
	}
	m.SetSize(width, height)
	return m
}

// SetSize resizes the viewer and rewraps its content.
func (m *Model) SetSize(width, height int) {
	m.viewport.Width = max(1, width)
	m.viewport.Height = max(1, height)
	m.ready = width > 0 && height > 0
	m.setWrappedContent()
}

// setWrappedContent wraps the content to the viewport's current width.
func (m *Model) setWrappedContent() {
	if !m.ready {
		return
	}

	// Leave one column for the scrollbar.
	wrapStyle := lipgloss.NewStyle().Width(max(1, m.viewport.Width-1))
	wrapped := make([]string, 0, len(m.lines))
	for _, line := range m.lines {
		wrapped = append(wrapped, wrapStyle.Render(line))
	}
	m.viewport.SetContent(strings.Join(wrapped, "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// Append adds lines, dropping the oldest beyond MaxLines.
func (m *Model) Append(lines ...string) {
	m.lines = append(m.lines, lines...)
	if over := len(m.lines) - MaxLines; over > 0 {
		m.lines = append([]string(nil), m.lines[over:]...)
	}
	m.setWrappedContent()
}

// Clear drops every line.
func (m *Model) Clear() {
	m.lines = nil
	m.viewport.SetContent("")
}

// Lines returns the formatted lines currently held.
func (m Model) Lines() []string {
	return m.lines
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LogLineMsg:
		m.Append(formatLogLine(msg.Source, msg.Line))
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "f" {
			m.follow = !m.follow
			if m.follow {
				m.viewport.GotoBottom()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the log viewer with scrollbar.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	if len(m.lines) == 0 {
		return theme.DefaultTheme.Muted.Render("No log output yet.")
	}
	return scrollbar.Overlay(&m.viewport)
}

// IsFollowing returns whether the log viewer is in follow mode.
func (m Model) IsFollowing() bool {
	return m.follow
}

// formatLogLine renders a JSON log entry compactly and passes text lines
// through unchanged.
func formatLogLine(source, line string) string {
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return line
	}

	msg, _ := entry["msg"].(string)
	level, _ := entry["level"].(string)
	ts, _ := entry["time"].(string)
	component, _ := entry["component"].(string)
	if component == "" {
		component = source
	}

	var parts []string
	if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		parts = append(parts, parsed.Format("15:04:05"))
	}

	var levelStyle lipgloss.Style
	switch strings.ToLower(level) {
	case "error", "fatal":
		levelStyle = theme.DefaultTheme.Error
	case "warning":
		levelStyle = theme.DefaultTheme.Warning
	default:
		levelStyle = theme.DefaultTheme.Info
	}
	parts = append(parts, levelStyle.Render(strings.ToUpper(level)))
	if component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", theme.DefaultTheme.Accent.Render(component)))
	}
	parts = append(parts, msg)
	return strings.Join(parts, " ")
}
