package summarization

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/llmcompare/tui/keymap"
)

// KeyMap holds the summarization page bindings on top of the shared ones.
type KeyMap struct {
	keymap.Base
	EditText    key.Binding
	Toggle      key.Binding
	Remove      key.Binding
	CycleFilter key.Binding
	Compare     key.Binding
}

// NewKeyMap returns the page bindings built on base.
func NewKeyMap(base keymap.Base) KeyMap {
	return KeyMap{
		Base: base,
		EditText: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit text"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle model"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove model"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "provider filter"),
		),
		Compare: key.NewBinding(
			key.WithKeys("ctrl+s", "c"),
			key.WithHelp("C-s", "compare"),
		),
	}
}

// Sections implements keymap.SectionedKeyMap.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.NavigationSection(k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom),
		keymap.NewSection(keymap.SectionModels, k.Toggle, k.Remove, k.CycleFilter, k.Search, k.ClearSearch),
		keymap.NewSection(keymap.SectionParameters, k.Left, k.Right),
		keymap.ActionsSection(k.EditText, k.Compare, k.Back),
		k.ViewSection(),
		keymap.SystemSection(k.Help, k.Quit),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusNext, k.Toggle, k.Compare, k.Help}
}
