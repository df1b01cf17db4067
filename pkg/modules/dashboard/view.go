package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/tui/components"
	"github.com/grovetools/llmcompare/tui/keymap"
	"github.com/grovetools/llmcompare/tui/theme"
	"github.com/grovetools/llmcompare/util/format"
)

// HealthCheckedMsg reports the end of a health check started from the page.
type HealthCheckedMsg struct {
	Status string
	Err    error
}

// KeyMap holds the dashboard bindings.
type KeyMap struct {
	keymap.Base
}

// Sections implements keymap.SectionedKeyMap.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.ActionsSection(k.Refresh),
		k.ViewSection(),
		keymap.SystemSection(k.Help, k.Quit),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Refresh, k.Help, k.Quit}
}

type ui struct {
	m        *Module
	keys     KeyMap
	checking bool
}

func newUI(m *Module) *ui {
	km := KeyMap{Base: keymap.Load(m.keys)}
	keymap.ApplyView(&km, m.keys, Name)
	return &ui{m: m, keys: km}
}

// Keys returns the page's keymap.
func (m *Module) Keys() KeyMap { return m.ui.keys }

// HelpKeys returns the page bindings for the help overlay.
func (m *Module) HelpKeys() keymap.SectionedKeyMap { return m.ui.keys }

// Capturing is always false; the page has no text inputs.
func (m *Module) Capturing() bool { return false }

// Update handles a message while the page is active.
func (m *Module) Update(msg tea.Msg) tea.Cmd {
	u := m.ui
	switch msg := msg.(type) {
	case HealthCheckedMsg:
		u.checking = false
	case tea.KeyMsg:
		if key.Matches(msg, u.keys.Refresh) && !u.checking {
			u.checking = true
			return func() tea.Msg {
				status, err := m.CheckHealth(m.ctx)
				return HealthCheckedMsg{Status: status, Err: err}
			}
		}
	}
	return nil
}

// View renders the page into width x height cells.
func (m *Module) View(width, height int) string {
	t := theme.DefaultTheme
	s := m.Stats()
	width = max(40, width)

	cardWidth := max(18, (width-3)/4)
	avg := t.Muted.Render("N/A")
	if s.Comparisons > 0 {
		avg = format.Score(s.AverageScore, models.MaxSampleScore)
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		components.RenderBox(theme.IconRobot+" Models", t.Bold.Render(fmt.Sprint(s.Models)), cardWidth),
		components.RenderBox(theme.IconServer+" Providers", t.Bold.Render(fmt.Sprint(s.Providers)), cardWidth),
		components.RenderBox(theme.IconBolt+" Comparisons", t.Bold.Render(fmt.Sprint(s.Comparisons)), cardWidth),
		components.RenderBox(theme.IconTrophy+" Avg Score", t.Bold.Render(avg), cardWidth),
	)

	sections := []string{
		components.RenderHeader("LLM Comparison", "Compare summaries from several models side by side"),
		cards,
		m.viewBackend(s),
		m.viewRecent(s, width),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Module) viewBackend(s Stats) string {
	t := theme.DefaultTheme
	var status string
	switch {
	case m.ui.checking:
		status = t.Info.Render(theme.IconRunning + " checking...")
	case s.Backend == StatusUnreachable:
		status = t.Error.Render(theme.IconError + " unreachable")
	case models.HealthResponse{Status: s.Backend}.Healthy():
		status = t.Success.Render(theme.IconSuccess + " " + s.Backend)
	default:
		status = t.Warning.Render(theme.IconWarning + " " + s.Backend)
	}

	rows := []string{components.RenderKeyValue("Backend", status)}
	if !s.CheckedAt.IsZero() {
		rows = append(rows, components.RenderKeyValue("Checked", s.CheckedAt.Format(time.Kitchen)))
	}
	rows = append(rows, t.Muted.Render(fmt.Sprintf("%s to check again", m.ui.keys.Refresh.Help().Key)))
	return components.RenderSection("Status", strings.Join(rows, "\n"))
}

func (m *Module) viewRecent(s Stats, width int) string {
	if len(s.Recent) == 0 {
		return components.RenderSection("Recent Comparisons",
			components.RenderEmpty("No comparisons yet", "Open Summarization to compare models."))
	}

	lines := make([]string, 0, len(s.Recent)*2)
	for _, h := range s.Recent {
		lines = append(lines, h.String())
		lines = append(lines, components.RenderProgress(h.WinnerScore, models.MaxSampleScore, min(40, width-4)))
	}
	return components.RenderSection("Recent Comparisons", strings.Join(lines, "\n"))
}
