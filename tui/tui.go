package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/grovetools/llmcompare/logging"
	"github.com/grovetools/llmcompare/tui/components/logviewer"
)

// InitializeTUI prepares the terminal environment for TUI applications.
// It checks for environment variables that force color output (`CLICOLOR_FORCE`,
// `COLORTERM`) and sets the appropriate lipgloss color profile when present.
//
// This keeps colors consistent when the TUI runs under a pseudo terminal in
// CI, and has no effect when these variables are not set.
func InitializeTUI() {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// Run runs model on the alternate screen until it quits or ctx is done.
// While it runs, log output is delivered to the program as
// logviewer.LogLineMsg instead of the terminal.
func Run(ctx context.Context, model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	InitializeTUI()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)

	prevGlobal := logging.SetGlobalOutput(logviewer.NewStreamWriter(p, "stderr"))
	prevCapture := logging.SetCaptureOutput(logviewer.NewStreamWriter(p, "app"))
	defer func() {
		logging.SetGlobalOutput(prevGlobal)
		logging.SetCaptureOutput(prevCapture)
	}()

	return p.Run()
}
