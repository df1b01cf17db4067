package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/llmcompare/config"
)

// ExtensionKey is the llmcompare.yml section holding keybinding settings.
const ExtensionKey = "keybindings"

// Bindings maps snake_case binding names (the struct field name, e.g.
// "page_up") to the keys that trigger them.
type Bindings map[string][]string

// Config is the keybindings section of llmcompare.yml.
//
//	keybindings:
//	  preset: emacs
//	  global:
//	    quit: [ctrl+q]
//	  views:
//	    summarization:
//	      compare: [ctrl+r]
type Config struct {
	Preset string              `yaml:"preset"`
	Global Bindings            `yaml:"global"`
	Views  map[string]Bindings `yaml:"views"`
}

// Base contains the bindings shared by every view. Views embed it and add
// their own.
type Base struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	// Core actions
	Quit    key.Binding
	Help    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Refresh key.Binding

	// Search
	Search      key.Binding
	ClearSearch key.Binding

	// View management
	FocusNext      key.Binding
	FocusPrev      key.Binding
	NextTab        key.Binding
	PrevTab        key.Binding
	HistoryBack    key.Binding
	HistoryForward key.Binding

	// Selection
	Select key.Binding
}

// NewBase creates a new Base keymap with the default (vim style) bindings.
func NewBase() Base {
	return DefaultVim()
}

// DefaultVim returns the default vim-style keymap
func DefaultVim() Base {
	return Base{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "increase"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("C-d", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back / dismiss"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "refresh"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear search"),
		),

		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev pane"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]", "ctrl+n"),
			key.WithHelp("]", "next page"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("[", "ctrl+p"),
			key.WithHelp("[", "prev page"),
		),
		HistoryBack: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("M-left", "history back"),
		),
		HistoryForward: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("M-right", "history forward"),
		),

		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
	}
}

// DefaultEmacs returns an emacs-style keymap
func DefaultEmacs() Base {
	b := DefaultVim()
	b.Up = key.NewBinding(
		key.WithKeys("ctrl+p", "up"),
		key.WithHelp("C-p", "up"),
	)
	b.Down = key.NewBinding(
		key.WithKeys("ctrl+n", "down"),
		key.WithHelp("C-n", "down"),
	)
	b.Left = key.NewBinding(
		key.WithKeys("ctrl+b", "left"),
		key.WithHelp("C-b", "decrease"),
	)
	b.Right = key.NewBinding(
		key.WithKeys("ctrl+f", "right"),
		key.WithHelp("C-f", "increase"),
	)
	b.PageUp = key.NewBinding(
		key.WithKeys("alt+v", "pgup"),
		key.WithHelp("M-v", "page up"),
	)
	b.PageDown = key.NewBinding(
		key.WithKeys("ctrl+v", "pgdown"),
		key.WithHelp("C-v", "page down"),
	)
	b.Top = key.NewBinding(
		key.WithKeys("alt+<", "home"),
		key.WithHelp("M-<", "top"),
	)
	b.Bottom = key.NewBinding(
		key.WithKeys("alt+>", "end"),
		key.WithHelp("M->", "bottom"),
	)
	// ctrl+n/ctrl+p are taken by line movement
	b.NextTab = key.NewBinding(
		key.WithKeys("]", "alt+n"),
		key.WithHelp("]", "next page"),
	)
	b.PrevTab = key.NewBinding(
		key.WithKeys("[", "alt+p"),
		key.WithHelp("[", "prev page"),
	)
	b.Search = key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "search"),
	)
	return b
}

// DefaultArrows returns a simplified keymap using primarily arrow keys
func DefaultArrows() Base {
	b := DefaultVim()
	b.Up = key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("up", "up"),
	)
	b.Down = key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("down", "down"),
	)
	b.Left = key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("left", "decrease"),
	)
	b.Right = key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("right", "increase"),
	)
	b.Top = key.NewBinding(
		key.WithKeys("home", "ctrl+home"),
		key.WithHelp("Home", "top"),
	)
	b.Bottom = key.NewBinding(
		key.WithKeys("end", "ctrl+end"),
		key.WithHelp("End", "bottom"),
	)
	return b
}

// LoadConfig reads the keybindings section from cfg. A missing section or a
// nil cfg yields the zero Config.
func LoadConfig(cfg *config.Config) (Config, error) {
	var kc Config
	if cfg == nil {
		return kc, nil
	}
	if err := cfg.UnmarshalExtension(ExtensionKey, &kc); err != nil {
		return Config{}, err
	}
	return kc, nil
}

// Preset returns the Base for a preset name, falling back to vim.
func Preset(name string) Base {
	switch name {
	case "emacs":
		return DefaultEmacs()
	case "arrows":
		return DefaultArrows()
	default:
		return DefaultVim()
	}
}

// Load creates a Base keymap from configuration: the selected preset with
// the global overrides applied.
func Load(kc Config) Base {
	base := Preset(kc.Preset)
	ApplyOverrides(&base, kc.Global)
	return base
}

// ApplyView applies the global overrides and then the overrides of the named
// view to km, which must be a pointer to a keymap struct.
func ApplyView(km any, kc Config, view string) {
	ApplyOverrides(km, kc.Global)
	if view != "" {
		ApplyOverrides(km, kc.Views[view])
	}
}

// ShortHelp returns a slice of key bindings for the short help view
func (k Base) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.FocusNext, k.Help, k.Quit}
}

// Sections returns grouped sections of all key bindings for the full help view.
func (k Base) Sections() []Section {
	return []Section{
		k.NavigationSection(),
		k.ViewSection(),
		k.SystemSection(),
	}
}

// NavigationSection returns the cursor movement bindings.
func (k Base) NavigationSection() Section {
	return NavigationSection(k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Top, k.Bottom)
}

// ViewSection returns the page and pane switching bindings.
func (k Base) ViewSection() Section {
	return ViewSection(k.NextTab, k.PrevTab, k.FocusNext, k.FocusPrev, k.HistoryBack, k.HistoryForward)
}

// SystemSection returns the system keybindings section.
func (k Base) SystemSection() Section {
	return SystemSection(k.Back, k.Refresh, k.Help, k.Quit)
}

// VerticalNav returns vertical navigation bindings.
func (k Base) VerticalNav() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom}
}

// GetHelp returns the binding that toggles full help.
func (k Base) GetHelp() key.Binding { return k.Help }

// GetQuit returns the quit binding.
func (k Base) GetQuit() key.Binding { return k.Quit }
