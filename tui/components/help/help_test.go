package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/grovetools/llmcompare/tui/keymap"
)

type testKeys struct {
	compare key.Binding
	help    key.Binding
	quit    key.Binding
	hidden  key.Binding
}

func newTestKeys() testKeys {
	hidden := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "never shown"))
	hidden.SetEnabled(false)
	return testKeys{
		compare: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare models")),
		help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		hidden:  hidden,
	}
}

func (k testKeys) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.NewSection(keymap.SectionModels, k.compare, k.hidden),
		keymap.SystemSection(k.help, k.quit),
	}
}

func (k testKeys) ShortHelp() []key.Binding { return []key.Binding{k.compare, k.hidden, k.quit} }
func (k testKeys) GetHelp() key.Binding     { return k.help }
func (k testKeys) GetQuit() key.Binding     { return k.quit }

func TestShortView(t *testing.T) {
	m := New(newTestKeys())
	view := m.View()
	assert.Contains(t, view, "compare models")
	assert.Contains(t, view, "quit")
	assert.NotContains(t, view, "never shown")

	assert.Empty(t, New(nil).View())
}

func TestOverlay(t *testing.T) {
	m := New(newTestKeys())
	m.SetSize(100, 40)
	m.Toggle()

	view := m.View()
	assert.Contains(t, view, keymap.SectionModels)
	assert.Contains(t, view, "compare models")
	assert.Contains(t, view, "Keybindings")
	assert.NotContains(t, view, "never shown")
}

func TestOverlayCloses(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"help key", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}},
		{"quit key", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(newTestKeys())
			m.SetSize(100, 40)
			m.Toggle()
			m, _ = m.Update(tt.msg)
			assert.False(t, m.ShowAll)
		})
	}

	t.Run("other keys keep it open", func(t *testing.T) {
		m := New(newTestKeys())
		m.SetSize(100, 40)
		m.Toggle()
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
		assert.True(t, m.ShowAll)
	})

	t.Run("closed overlay ignores keys", func(t *testing.T) {
		m := New(newTestKeys())
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.False(t, m.ShowAll)
	})
}

func TestColumns(t *testing.T) {
	blocks := []string{"a\na\na", "b", "c"}
	out := columns(blocks, 2)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "a"))
	assert.Contains(t, lines[0], "b")
	assert.Contains(t, lines[1], "c")
}

func TestSectionIcon(t *testing.T) {
	assert.NotEqual(t, sectionIcon(keymap.SectionModels), sectionIcon("Something Else"))
}
