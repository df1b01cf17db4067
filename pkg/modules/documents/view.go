package documents

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/tui/components"
	"github.com/grovetools/llmcompare/tui/components/table"
	"github.com/grovetools/llmcompare/tui/keymap"
	"github.com/grovetools/llmcompare/tui/theme"
	"github.com/grovetools/llmcompare/util/format"
)

// UploadDoneMsg reports the end of an upload started from the page.
type UploadDoneMsg struct {
	Path     string
	Response *models.UploadResponse
	Err      error
}

// KeyMap holds the documents page bindings.
type KeyMap struct {
	keymap.Base
	EditPath key.Binding
	Upload   key.Binding
}

// NewKeyMap returns the page bindings built on base.
func NewKeyMap(base keymap.Base) KeyMap {
	return KeyMap{
		Base: base,
		EditPath: key.NewBinding(
			key.WithKeys("e", "i"),
			key.WithHelp("e", "enter path"),
		),
		Upload: key.NewBinding(
			key.WithKeys("enter", "ctrl+u"),
			key.WithHelp("enter", "upload"),
		),
	}
}

// Sections implements keymap.SectionedKeyMap.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.NavigationSection(k.Up, k.Down, k.Top, k.Bottom),
		keymap.NewSection(keymap.SectionUpload, k.EditPath, k.Upload, k.Back),
		k.ViewSection(),
		keymap.SystemSection(k.Help, k.Quit),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.EditPath, k.Upload, k.Help, k.Quit}
}

type ui struct {
	m       *Module
	keys    KeyMap
	input   textinput.Model
	spinner spinner.Model
	editing bool
	cursor  int
}

func newUI(m *Module) *ui {
	km := NewKeyMap(keymap.Load(m.keys))
	keymap.ApplyView(&km, m.keys, Name)

	ti := textinput.New()
	ti.Prompt = theme.IconDocument + " "
	ti.Placeholder = "~/path/to/document.pdf"

	return &ui{
		m:       m,
		keys:    km,
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Keys returns the page's keymap.
func (m *Module) Keys() KeyMap { return m.ui.keys }

// HelpKeys returns the page bindings for the help overlay.
func (m *Module) HelpKeys() keymap.SectionedKeyMap { return m.ui.keys }

// Capturing reports whether the path input has the keyboard.
func (m *Module) Capturing() bool { return m.ui.editing }

// Update handles a message while the page is active.
func (m *Module) Update(msg tea.Msg) tea.Cmd {
	u := m.ui
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if len(m.Processing()) == 0 {
			return nil
		}
		var cmd tea.Cmd
		u.spinner, cmd = u.spinner.Update(msg)
		return cmd

	case UploadDoneMsg:
		if msg.Err == nil {
			u.input.SetValue("")
			u.cursor = max(0, len(m.Uploads())-1)
		}
		return nil

	case tea.KeyMsg:
		if u.editing {
			return u.handleEditing(msg)
		}
		return u.handleKey(msg)
	}
	return nil
}

func (u *ui) handleEditing(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		u.editing = false
		u.input.Blur()
		return nil
	case tea.KeyEnter:
		u.editing = false
		u.input.Blur()
		return u.uploadCmd(u.input.Value())
	}
	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	return cmd
}

func (u *ui) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := u.keys
	n := len(u.m.Uploads())
	switch {
	case key.Matches(msg, k.EditPath):
		u.editing = true
		return u.input.Focus()
	case key.Matches(msg, k.Upload):
		if strings.TrimSpace(u.input.Value()) == "" {
			u.editing = true
			return u.input.Focus()
		}
		return u.uploadCmd(u.input.Value())
	case key.Matches(msg, k.Up):
		u.cursor = max(0, u.cursor-1)
	case key.Matches(msg, k.Down):
		u.cursor = min(max(0, n-1), u.cursor+1)
	case key.Matches(msg, k.Top):
		u.cursor = 0
	case key.Matches(msg, k.Bottom):
		u.cursor = max(0, n-1)
	}
	return nil
}

func (u *ui) uploadCmd(path string) tea.Cmd {
	m := u.m
	run := func() tea.Msg {
		resp, err := m.Upload(m.ctx, path)
		return UploadDoneMsg{Path: path, Response: resp, Err: err}
	}
	return tea.Batch(run, u.spinner.Tick)
}

// View renders the page into width x height cells.
func (m *Module) View(width, height int) string {
	u := m.ui
	t := theme.DefaultTheme
	width = max(40, width)
	u.input.Width = max(10, width-8)

	hint := t.Muted.Render(u.keys.EditPath.Help().Key + " to enter a path, " + u.keys.Upload.Help().Key + " to upload")
	if u.editing {
		hint = t.Muted.Render("enter to upload, esc to cancel")
	}
	form := components.RenderBox("Upload a document", lipgloss.JoinVertical(lipgloss.Left, u.input.View(), hint), width)

	sections := []string{form}
	if processing := m.Processing(); len(processing) > 0 {
		lines := make([]string, 0, len(processing))
		for _, p := range processing {
			lines = append(lines, u.spinner.View()+" "+p)
		}
		sections = append(sections, components.RenderSection("Uploading", strings.Join(lines, "\n")))
	}
	sections = append(sections, u.viewUploads(width))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (u *ui) viewUploads(width int) string {
	uploads := u.m.Uploads()
	if len(uploads) == 0 {
		return components.RenderSection("Uploaded", components.RenderEmpty("No documents uploaded", "Files you upload in this session are listed here."))
	}
	rows := make([][]string, 0, len(uploads))
	for _, up := range uploads {
		status := theme.IconSuccess + " " + up.Status
		if up.Message != "" {
			status += ": " + up.Message
		}
		rows = append(rows, []string{up.Filename, format.FileSize(up.Size), status, up.At.Format(time.Kitchen)})
	}
	cursor := min(u.cursor, len(uploads)-1)
	return components.RenderSection("Uploaded",
		table.SelectableTable([]string{"File", "Size", "Status", "Time"}, rows, cursor))
}
