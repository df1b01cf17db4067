// Package help renders the one-line key hints and the full-screen help
// overlay for a keymap.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grovetools/llmcompare/tui/keymap"
	"github.com/grovetools/llmcompare/tui/theme"
)

const (
	verticalMargin   = 4
	horizontalMargin = 4
	gutter           = 4
)

type shortHelper interface {
	ShortHelp() []key.Binding
}

type closer interface {
	GetHelp() key.Binding
	GetQuit() key.Binding
}

// Model is an embeddable help view. Keys should implement
// keymap.SectionedKeyMap for the overlay and ShortHelp for the footer line;
// GetHelp and GetQuit, when present, name the keys that close the overlay.
type Model struct {
	Keys    any
	ShowAll bool
	Width   int
	Height  int
	Theme   *theme.Theme
	Title   string

	viewport viewport.Model
}

// New returns a closed help view for keys.
func New(keys any) Model {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = false
	return Model{Keys: keys, Theme: theme.DefaultTheme, viewport: vp}
}

// Update handles resizing and, while the overlay is open, scrolling and
// closing it.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		if m.ShowAll {
			m.layout()
		}
	case tea.KeyMsg:
		if !m.ShowAll {
			return m, nil
		}
		if m.closes(msg) {
			m.Toggle()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) closes(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	helpKey := key.NewBinding(key.WithKeys("?"))
	quitKey := key.NewBinding(key.WithKeys("q"))
	if c, ok := m.Keys.(closer); ok {
		helpKey, quitKey = c.GetHelp(), c.GetQuit()
	}
	return key.Matches(msg, helpKey) || key.Matches(msg, quitKey)
}

// View renders the overlay when open and the footer hint line otherwise.
func (m Model) View() string {
	t := m.theme()
	if !m.ShowAll {
		var group []key.Binding
		if s, ok := m.Keys.(shortHelper); ok {
			group = s.ShortHelp()
		}
		return m.short(group)
	}

	content := m.viewport.View()
	if m.viewport.TotalLineCount() > m.viewport.Height {
		indicator := "↕ more"
		switch {
		case m.viewport.AtTop():
			indicator = "↓ more"
		case m.viewport.AtBottom():
			indicator = "↑ more"
		}
		content = lipgloss.JoinVertical(lipgloss.Right, content,
			t.Muted.Align(lipgloss.Right).Width(m.viewport.Width).Render(indicator))
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) theme() *theme.Theme {
	if m.Theme == nil {
		return theme.DefaultTheme
	}
	return m.Theme
}

func (m Model) short(group []key.Binding) string {
	t := m.theme()
	var pairs []string
	for _, b := range group {
		h := b.Help()
		if !b.Enabled() || h.Key == "" || h.Desc == "" {
			continue
		}
		pairs = append(pairs, t.Highlight.Render(h.Key)+" "+t.Muted.Render(h.Desc))
	}
	if len(pairs) == 0 {
		return ""
	}
	return strings.Join(pairs, t.Muted.Render(" • "))
}

// Toggle opens or closes the overlay. Opening lays the content out for the
// current size and scrolls to the top.
func (m *Model) Toggle() {
	m.ShowAll = !m.ShowAll
	if m.ShowAll {
		m.layout()
		m.viewport.GotoTop()
	}
}

// SetSize sets the area the overlay is centered in.
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
}

// SetKeys replaces the keymap shown.
func (m *Model) SetKeys(keys any) {
	m.Keys = keys
}

func (m *Model) layout() {
	var sections []keymap.Section
	if k, ok := m.Keys.(keymap.SectionedKeyMap); ok {
		sections = k.Sections()
	}
	content := m.render(sections)
	m.viewport.SetContent(content)
	m.viewport.Width = lipgloss.Width(content)
	// One line is kept for the scroll indicator.
	m.viewport.Height = max(1, m.Height-verticalMargin-1)
}

// render lays the section boxes out in one column when they fit the height,
// otherwise in the most columns (three, then two) that fit the width.
func (m *Model) render(sections []keymap.Section) string {
	var blocks []string
	for _, s := range sections {
		if box := m.sectionBox(s); box != "" {
			blocks = append(blocks, box)
		}
	}
	if len(blocks) == 0 {
		return ""
	}

	title := m.Title
	if title == "" {
		title = "Keybindings"
	}
	titled := func(body string) string {
		style := lipgloss.NewStyle().
			Bold(true).
			Foreground(m.theme().Colors.Orange).
			MarginBottom(1).
			Align(lipgloss.Center).
			Width(lipgloss.Width(body))
		return lipgloss.JoinVertical(lipgloss.Center, style.Render(title), body)
	}

	single := titled(lipgloss.JoinVertical(lipgloss.Left, blocks...))
	if lipgloss.Height(single) <= m.Height-verticalMargin-1 {
		return single
	}
	for cols := min(3, len(blocks)); cols >= 2; cols-- {
		if out := titled(columns(blocks, cols)); lipgloss.Width(out) <= m.Width-horizontalMargin {
			return out
		}
	}
	return single
}

// columns places each block in the currently shortest of n columns.
func columns(blocks []string, n int) string {
	cols := make([][]string, n)
	heights := make([]int, n)
	for _, b := range blocks {
		shortest := 0
		for i := range heights {
			if heights[i] < heights[shortest] {
				shortest = i
			}
		}
		cols[shortest] = append(cols[shortest], b)
		heights[shortest] += lipgloss.Height(b)
	}

	parts := make([]string, 0, 2*n-1)
	for i, c := range cols {
		if i > 0 {
			parts = append(parts, strings.Repeat(" ", gutter))
		}
		parts = append(parts, lipgloss.JoinVertical(lipgloss.Left, c...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) sectionBox(s keymap.Section) string {
	t := m.theme()
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Blue)
	descStyle := t.Muted.Italic(true)

	table := ltable.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	rows := 0
	for _, b := range s.FilterEnabled() {
		h := b.Help()
		if h.Key == "" || h.Desc == "" {
			continue
		}
		table = table.Row(keyStyle.Render(h.Key), descStyle.Render(h.Desc))
		rows++
	}
	if rows == 0 {
		return ""
	}

	icon := s.Icon
	if icon == "" {
		icon = sectionIcon(s.Name)
	}
	heading := lipgloss.NewStyle().
		Foreground(t.Colors.Orange).
		Italic(true).
		MarginBottom(1).
		Render(fmt.Sprintf("%s %s", icon, s.Name))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Border).
		Padding(0, 1).
		MarginBottom(1).
		Render(lipgloss.JoinVertical(lipgloss.Left, heading, table.String()))
}

func sectionIcon(name string) string {
	switch name {
	case keymap.SectionNavigation, keymap.SectionView:
		return theme.IconArrow
	case keymap.SectionActions:
		return theme.IconBolt
	case keymap.SectionSearch, keymap.SectionSelection:
		return theme.IconFilter
	case keymap.SectionModels:
		return theme.IconRobot
	case keymap.SectionResults:
		return theme.IconTrophy
	case keymap.SectionUpload:
		return theme.IconDocument
	case keymap.SectionSystem, keymap.SectionParameters:
		return theme.IconServer
	default:
		return theme.IconBullet
	}
}
