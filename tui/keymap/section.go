package keymap

import "github.com/charmbracelet/bubbles/key"

// Section names shared by the help overlay and the keys export.
const (
	SectionNavigation = "Navigation"
	SectionActions    = "Actions"
	SectionSearch     = "Search"
	SectionSelection  = "Selection"
	SectionView       = "View"
	SectionSystem     = "System"

	SectionModels     = "Models"
	SectionParameters = "Parameters"
	SectionResults    = "Results"
	SectionUpload     = "Upload"
)

// Section is a titled group of bindings. An empty Icon lets the help view
// choose one from the name.
type Section struct {
	Name     string
	Icon     string
	Bindings []key.Binding
}

// SectionedKeyMap is implemented by every page keymap.
type SectionedKeyMap interface {
	Sections() []Section
}

// NewSection groups bindings under name.
func NewSection(name string, bindings ...key.Binding) Section {
	return Section{Name: name, Bindings: bindings}
}

func NavigationSection(bindings ...key.Binding) Section {
	return NewSection(SectionNavigation, bindings...)
}

func ActionsSection(bindings ...key.Binding) Section {
	return NewSection(SectionActions, bindings...)
}

func ViewSection(bindings ...key.Binding) Section {
	return NewSection(SectionView, bindings...)
}

func SystemSection(bindings ...key.Binding) Section {
	return NewSection(SectionSystem, bindings...)
}

// FilterEnabled returns the bindings that are currently enabled.
func (s Section) FilterEnabled() []key.Binding {
	var out []key.Binding
	for _, b := range s.Bindings {
		if b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}

// IsEmpty reports whether no binding in s is enabled.
func (s Section) IsEmpty() bool {
	return len(s.FilterEnabled()) == 0
}

// With returns a copy of s with more bindings appended.
func (s Section) With(bindings ...key.Binding) Section {
	out := s
	out.Bindings = append(append([]key.Binding(nil), s.Bindings...), bindings...)
	return out
}
