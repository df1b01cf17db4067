package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/llmcompare/pkg/router"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/tui/components"
	"github.com/grovetools/llmcompare/tui/theme"
)

// reloadNoticeFor is how long the config reload notice stays in the status bar.
const reloadNoticeFor = 5 * time.Second

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.help.ShowAll {
		return m.help.View()
	}

	t := m.theme()
	header := m.renderTabs(t)
	banner := m.renderBanner(t)
	status := m.renderStatus()

	var logs string
	if m.showLogs {
		logs = lipgloss.JoinVertical(lipgloss.Left,
			components.RenderDivider(m.width),
			m.logs.View(),
		)
	}

	used := lipgloss.Height(header) + lipgloss.Height(status)
	if banner != "" {
		used += lipgloss.Height(banner)
	}
	if logs != "" {
		used += lipgloss.Height(logs)
	}
	bodyHeight := max(1, m.height-used)
	body := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(m.renderBody(bodyHeight))

	parts := []string{header}
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, body)
	if logs != "" {
		parts = append(parts, logs)
	}
	parts = append(parts, status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// theme returns the default theme tinted with the active module's style.
func (m *Model) theme() *theme.Theme {
	t := theme.DefaultTheme
	if mod, ok := m.router.VisibleModule(); ok {
		if s, ok := m.router.Style(mod.Name()); ok {
			t = t.WithAccent(s.Accent, s.Border)
		}
	}
	return t
}

func (m *Model) renderTabs(t *theme.Theme) string {
	items := m.router.NavItems()
	tabs := make([]components.Tab, 0, len(items))
	for i, item := range items {
		tabs = append(tabs, components.Tab{
			Label:    fmt.Sprintf("%d %s", i+1, item.Title),
			Active:   item.Active,
			Disabled: !item.Available,
		})
	}
	title := t.Header.Render("LLM Compare")
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", components.RenderTabs(tabs))
}

func (m *Model) renderBanner(t *theme.Theme) string {
	msg := m.errorMessage()
	if msg == "" {
		return ""
	}
	hint := t.Muted.Render(" (esc to dismiss)")
	return t.Banner.Width(m.width).Render(theme.IconError + " " + msg + hint)
}

func (m *Model) renderBody(height int) string {
	if v, ok := m.activeView(); ok {
		return v.View(m.width, height)
	}
	if m.router.Location() == "" {
		return m.spinner.View() + " Starting..."
	}
	return components.RenderEmpty(
		"Not available yet",
		fmt.Sprintf("%s has no page. Use tab to switch pages.", titleFor(m.router.NavItems())),
	)
}

func titleFor(items []router.NavItem) string {
	for _, item := range items {
		if item.Active {
			return item.Title
		}
	}
	return "This route"
}

func (m *Model) renderStatus() string {
	app := m.store.ReadModule(state.App)

	var left []string
	if loading, _ := state.Value[bool](app, state.KeyLoading); loading || m.navigating {
		left = append(left, m.spinner.View()+" Loading")
	}
	if backend, ok := state.Value[string](app, state.KeyBackendStatus); ok && backend != "" {
		left = append(left, "backend: "+backend)
	}
	if at, ok := state.Value[time.Time](app, state.KeyConfigReloadedAt); ok && time.Since(at) < reloadNoticeFor {
		left = append(left, "config reloaded")
	}

	return components.RenderStatusBar(
		strings.Join(left, " · "),
		"",
		m.help.View(),
		m.width,
	)
}
