package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/llmcompare/tui/keymap"
)

// KeyMap holds the bindings handled by the application frame itself.
type KeyMap struct {
	keymap.Base
	Logs key.Binding
	Jump key.Binding
}

// NewKeyMap returns the frame bindings for the configured preset.
func NewKeyMap(kc keymap.Config) KeyMap {
	km := KeyMap{
		Base: keymap.Load(kc),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle logs"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to page"),
		),
	}
	keymap.ApplyView(&km, kc, "app")
	return km
}

// Sections implements keymap.SectionedKeyMap.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.ViewSection(k.NextTab, k.PrevTab, k.Jump, k.HistoryBack, k.HistoryForward),
		keymap.SystemSection(k.Back, k.Logs, k.Help, k.Quit),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Jump, k.Help, k.Quit}
}

// combinedKeys merges the frame bindings with the active page's for help.
type combinedKeys struct {
	frame KeyMap
	page  keymap.SectionedKeyMap
}

func (c combinedKeys) Sections() []keymap.Section {
	if c.page == nil {
		return c.frame.Sections()
	}
	return append(c.page.Sections(), c.frame.Sections()...)
}

func (c combinedKeys) ShortHelp() []key.Binding {
	if short, ok := c.page.(interface{ ShortHelp() []key.Binding }); ok {
		return short.ShortHelp()
	}
	return c.frame.ShortHelp()
}

func (c combinedKeys) GetHelp() key.Binding { return c.frame.Help }
func (c combinedKeys) GetQuit() key.Binding { return c.frame.Quit }
