package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Compare", "compare"},
		{"HistoryBack", "history_back"},
		{"HTTPServer", "h_t_t_p_server"}, // consecutive caps are split
		{"Up", "up"},
		{"PageUp", "page_up"},
		{"A", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := camelToSnake(tt.input)
			if result != tt.expected {
				t.Errorf("camelToSnake(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// testKeyMap is a sample page keymap
type testKeyMap struct {
	Base
	Compare     key.Binding
	CycleFilter key.Binding
	Remove      key.Binding
	unexported  key.Binding
	NotABinding string
}

func newTestKeyMap() testKeyMap {
	return testKeyMap{
		Base: NewBase(),
		Compare: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "compare"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "provider filter"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove"),
		),
		NotABinding: "not a binding",
	}
}

func TestApplyOverrides(t *testing.T) {
	km := newTestKeyMap()

	ApplyOverrides(&km, Bindings{
		"compare":       {"ctrl+r"},
		"cycle_filter":  {"f", "F"},
		"not_a_binding": {"z"},
		"unexported":    {"u"},
	})

	if keys := km.Compare.Keys(); len(keys) != 1 || keys[0] != "ctrl+r" {
		t.Errorf("Compare keys = %v, want [ctrl+r]", keys)
	}
	if help := km.Compare.Help(); help.Key != "ctrl+r" || help.Desc != "compare" {
		t.Errorf("Compare help = %+v, want key ctrl+r desc compare", help)
	}
	if keys := km.CycleFilter.Keys(); len(keys) != 2 || keys[0] != "f" || keys[1] != "F" {
		t.Errorf("CycleFilter keys = %v, want [f F]", keys)
	}
	if keys := km.Remove.Keys(); len(keys) != 1 || keys[0] != "x" {
		t.Errorf("Remove keys = %v, want [x]", keys)
	}
	if km.NotABinding != "not a binding" {
		t.Errorf("NotABinding = %q, want unchanged", km.NotABinding)
	}
}

func TestApplyOverrides_NilOverrides(t *testing.T) {
	km := newTestKeyMap()
	ApplyOverrides(&km, nil)

	if keys := km.Compare.Keys(); len(keys) != 1 || keys[0] != "ctrl+s" {
		t.Errorf("Compare keys = %v, want [ctrl+s]", keys)
	}
}

func TestApplyOverrides_NonPointer(t *testing.T) {
	km := newTestKeyMap()

	// Passed by value: must not panic and cannot modify.
	ApplyOverrides(km, Bindings{"compare": {"ctrl+r"}})

	if keys := km.Compare.Keys(); len(keys) != 1 || keys[0] != "ctrl+s" {
		t.Errorf("Compare keys = %v, want [ctrl+s]", keys)
	}
}

func TestApplyOverrides_EmbeddedStruct(t *testing.T) {
	km := newTestKeyMap()

	ApplyOverrides(&km, Bindings{
		"remove": {"d"},
		"up":     {"w"},
		"quit":   {"Q", "ctrl+q"},
	})

	if keys := km.Remove.Keys(); len(keys) != 1 || keys[0] != "d" {
		t.Errorf("Remove keys = %v, want [d]", keys)
	}
	if keys := km.Base.Up.Keys(); len(keys) != 1 || keys[0] != "w" {
		t.Errorf("Base.Up keys = %v, want [w]", keys)
	}
	if keys := km.Base.Quit.Keys(); len(keys) != 2 || keys[0] != "Q" || keys[1] != "ctrl+q" {
		t.Errorf("Base.Quit keys = %v, want [Q ctrl+q]", keys)
	}

	defaultDown := NewBase().Down.Keys()
	if keys := km.Base.Down.Keys(); len(keys) != len(defaultDown) || keys[0] != defaultDown[0] {
		t.Errorf("Base.Down keys = %v, want %v", keys, defaultDown)
	}
}
