package summarization

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/tui/components"
	"github.com/grovetools/llmcompare/tui/components/markdown"
	"github.com/grovetools/llmcompare/tui/components/table"
	"github.com/grovetools/llmcompare/tui/keymap"
	"github.com/grovetools/llmcompare/tui/theme"
	"github.com/grovetools/llmcompare/tui/utils/scrollbar"
	"github.com/grovetools/llmcompare/util/format"
)

// ComparisonDoneMsg reports the end of a comparison started from the page.
type ComparisonDoneMsg struct {
	Response *models.ComparisonResponse
	Err      error
}

type pane int

const (
	paneText pane = iota
	paneModels
	paneParams
	paneResults
	paneCount
)

// visibleModels is how many catalog rows the model list shows at once.
const visibleModels = 8

// ui is the page's presentation state. It is only touched from Update and
// View, which bubbletea calls on its event loop.
type ui struct {
	m    *Module
	keys KeyMap

	focus     pane
	editing   bool
	searching bool

	text    textarea.Model
	search  textinput.Model
	spinner spinner.Model
	results viewport.Model

	filter Filter
	cursor int
	param  int

	// the results viewport content is rebuilt when either changes
	renderedFor   *Report
	renderedWidth int
}

func newUI(m *Module) *ui {
	km := NewKeyMap(keymap.Load(m.keys))
	keymap.ApplyView(&km, m.keys, Name)

	ta := textarea.New()
	ta.Placeholder = "Paste the text to summarize..."
	ta.ShowLineNumbers = false
	ta.CharLimit = models.MaxTextLength
	ta.SetHeight(6)

	ti := textinput.New()
	ti.Prompt = theme.IconFilter + " "
	ti.Placeholder = "search models"

	return &ui{
		m:       m,
		keys:    km,
		text:    ta,
		search:  ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		results: viewport.New(0, 0),
		filter:  Filter{Provider: FilterAll},
	}
}

// Keys returns the page's keymap, for help and the keys command.
func (m *Module) Keys() KeyMap { return m.ui.keys }

// HelpKeys returns the page bindings for the help overlay.
func (m *Module) HelpKeys() keymap.SectionedKeyMap { return m.ui.keys }

// Capturing reports whether a text input has the keyboard.
func (m *Module) Capturing() bool {
	return m.ui.editing || m.ui.searching
}

// Update handles a message while the page is active.
func (m *Module) Update(msg tea.Msg) tea.Cmd {
	u := m.ui
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.Comparing() {
			return nil
		}
		var cmd tea.Cmd
		u.spinner, cmd = u.spinner.Update(msg)
		return cmd

	case ComparisonDoneMsg:
		if msg.Err == nil {
			u.focus = paneResults
			u.results.GotoTop()
		}
		return nil

	case state.Change:
		if msg.Namespace == state.Summarization && !u.editing {
			if text := m.Text(); text != u.text.Value() {
				u.text.SetValue(text)
			}
		}
		return nil

	case tea.KeyMsg:
		return u.handleKey(msg)
	}
	return nil
}

func (u *ui) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case u.editing:
		return u.handleEditing(msg)
	case u.searching:
		return u.handleSearching(msg)
	}

	k := u.keys
	switch {
	case key.Matches(msg, k.FocusNext):
		u.focus = (u.focus + 1) % paneCount
		return nil
	case key.Matches(msg, k.FocusPrev):
		u.focus = (u.focus + paneCount - 1) % paneCount
		return nil
	case key.Matches(msg, k.Compare):
		return u.compareCmd()
	}

	switch u.focus {
	case paneText:
		if key.Matches(msg, k.EditText) {
			u.editing = true
			return u.text.Focus()
		}
	case paneModels:
		return u.handleModels(msg)
	case paneParams:
		u.handleParams(msg)
	case paneResults:
		var cmd tea.Cmd
		u.results, cmd = u.results.Update(msg)
		return cmd
	}
	return nil
}

func (u *ui) handleEditing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		u.editing = false
		u.text.Blur()
		u.syncText()
		return nil
	case msg.Type != tea.KeyRunes && key.Matches(msg, u.keys.Compare):
		u.editing = false
		u.text.Blur()
		u.syncText()
		return u.compareCmd()
	}
	var cmd tea.Cmd
	u.text, cmd = u.text.Update(msg)
	u.syncText()
	return cmd
}

func (u *ui) syncText() {
	if v := u.text.Value(); v != u.m.Text() {
		u.m.SetText(v)
	}
}

func (u *ui) handleSearching(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		u.searching = false
		u.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	u.search, cmd = u.search.Update(msg)
	u.filter.Search = u.search.Value()
	u.cursor = 0
	return cmd
}

func (u *ui) handleModels(msg tea.KeyMsg) tea.Cmd {
	k := u.keys
	visible := u.filter.Apply(u.m.AvailableModels())
	switch {
	case key.Matches(msg, k.Up):
		u.cursor = max(0, u.cursor-1)
	case key.Matches(msg, k.Down):
		u.cursor = min(max(0, len(visible)-1), u.cursor+1)
	case key.Matches(msg, k.Top):
		u.cursor = 0
	case key.Matches(msg, k.Bottom):
		u.cursor = max(0, len(visible)-1)
	case key.Matches(msg, k.Toggle):
		if u.cursor < len(visible) {
			u.m.Toggle(visible[u.cursor])
		}
	case key.Matches(msg, k.Remove):
		if u.cursor < len(visible) {
			u.m.Remove(visible[u.cursor])
		}
	case key.Matches(msg, k.CycleFilter):
		u.filter.Provider = NextFilter(u.filter.Provider)
		u.cursor = 0
	case key.Matches(msg, k.Search):
		u.searching = true
		return u.search.Focus()
	case key.Matches(msg, k.ClearSearch):
		u.search.SetValue("")
		u.filter.Search = ""
		u.cursor = 0
	}
	return nil
}

func (u *ui) handleParams(msg tea.KeyMsg) {
	k := u.keys
	switch {
	case key.Matches(msg, k.Up):
		u.param = max(0, u.param-1)
	case key.Matches(msg, k.Down):
		u.param = min(len(ParamSpecs)-1, u.param+1)
	case key.Matches(msg, k.Left):
		_, _ = u.m.Adjust(ParamSpecs[u.param].Name, -1)
	case key.Matches(msg, k.Right):
		_, _ = u.m.Adjust(ParamSpecs[u.param].Name, 1)
	}
}

// compareCmd runs the comparison off the event loop. Validation failures
// come back immediately through ComparisonDoneMsg and app.error.
func (u *ui) compareCmd() tea.Cmd {
	m := u.m
	run := func() tea.Msg {
		resp, err := m.StartComparison(m.ctx)
		return ComparisonDoneMsg{Response: resp, Err: err}
	}
	return tea.Batch(run, u.spinner.Tick)
}

// View renders the page into width x height cells.
func (m *Module) View(width, height int) string {
	u := m.ui
	if width < 60 {
		width = 60
	}

	leftWidth := width * 2 / 5
	rightWidth := width - leftWidth - 1
	stacked := width < 100
	if stacked {
		leftWidth, rightWidth = width, width
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		u.panel("Text", u.viewText(leftWidth-4), leftWidth, u.focus == paneText),
		u.panel("Models", u.viewModels(leftWidth-4), leftWidth, u.focus == paneModels),
		u.panel("Parameters", u.viewParams(), leftWidth, u.focus == paneParams),
		u.viewCompareButton(),
	)

	resultsHeight := height - 2
	if stacked {
		resultsHeight = max(8, height-lipgloss.Height(left)-2)
	}
	right := u.panel("Results", u.viewResults(rightWidth-4, resultsHeight), rightWidth, u.focus == paneResults)

	if stacked {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (u *ui) panel(title, body string, width int, focused bool) string {
	t := theme.DefaultTheme
	border := t.Colors.Border
	titleStyle := t.Muted
	if focused {
		border = t.Colors.Orange
		titleStyle = t.Highlight
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(10, width-2)).
		Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), body))
}

func (u *ui) viewText(width int) string {
	t := theme.DefaultTheme
	u.text.SetWidth(max(10, width))
	if !u.editing && u.text.Value() != u.m.Text() {
		u.text.SetValue(u.m.Text())
	}

	stats := StatsOf(u.text.Value())
	line := t.Muted.Render(fmt.Sprintf("%d words • %d characters", stats.Words, stats.Characters))
	if !u.editing {
		line += t.Muted.Render("  (" + u.keys.EditText.Help().Key + " to edit)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, u.text.View(), line)
}

func (u *ui) viewModels(width int) string {
	t := theme.DefaultTheme
	m := u.m

	filterLine := t.Muted.Render("Provider: ") + t.Highlight.Render(providerLabel(u.filter.Provider))
	if u.searching || u.filter.Search != "" {
		filterLine += "  " + u.search.View()
	}

	all := m.AvailableModels()
	var list string
	switch {
	case len(all) == 0 && (m.catalogState() == catalogIdle || m.catalogState() == catalogLoading):
		list = t.Muted.Render(theme.IconPending + " Loading models...")
	case len(all) == 0:
		list = components.RenderEmpty("No Models Available", "The backend reported no configured models.")
	default:
		visible := u.filter.Apply(all)
		if len(visible) == 0 {
			list = components.RenderEmpty("No Models Found", "Try another provider filter or search term.")
		} else {
			list = u.modelList(visible, width)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, filterLine, list, "", u.viewSelection())
}

func (u *ui) modelList(visible []string, width int) string {
	t := theme.DefaultTheme
	selected := u.m.Selected()
	cursor := min(u.cursor, len(visible)-1)

	start := 0
	if cursor >= visibleModels {
		start = cursor - visibleModels + 1
	}
	end := min(len(visible), start+visibleModels)

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		model := visible[i]
		box := theme.IconUnchecked
		if slices.Contains(selected, model) {
			box = t.Success.Render(theme.IconSelect)
		}
		row := fmt.Sprintf("%s %s %s", box, model, t.Muted.Render(models.ProviderOf(model).DisplayName()))
		if i == cursor && u.focus == paneModels {
			row = t.Highlight.Render(theme.IconArrow) + " " + row
		} else {
			row = "  " + row
		}
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(row))
	}
	if len(visible) > visibleModels {
		lines = append(lines, t.Muted.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(visible))))
	}
	return strings.Join(lines, "\n")
}

func (u *ui) viewSelection() string {
	t := theme.DefaultTheme
	selected := u.m.Selected()
	if len(selected) == 0 {
		return t.Muted.Render(fmt.Sprintf("No models selected. Select %d to %d models.", models.MinCompareModels, models.MaxCompareModels))
	}
	header := t.Bold.Render(fmt.Sprintf("Selected (%d/%d)", len(selected), models.MaxCompareModels))
	return lipgloss.JoinVertical(lipgloss.Left, header, components.RenderList(selected, true))
}

func (u *ui) viewParams() string {
	t := theme.DefaultTheme
	params := u.m.Params()
	rows := make([]string, 0, len(ParamSpecs))
	for i, spec := range ParamSpecs {
		label := fmt.Sprintf("%-12s", spec.Label)
		value := params.Display(spec.Name)
		if i == u.param && u.focus == paneParams {
			rows = append(rows, t.Highlight.Render(theme.IconArrow+" "+label)+" "+t.Bold.Render("‹ "+value+" ›"))
		} else {
			rows = append(rows, "  "+t.Muted.Render(label)+" "+value)
		}
	}
	return strings.Join(rows, "\n")
}

func (u *ui) viewCompareButton() string {
	t := theme.DefaultTheme
	if u.m.Comparing() {
		return u.spinner.View() + " " + t.Info.Render("Comparing models... This may take a few minutes")
	}

	n := len(u.m.Selected())
	ready := strings.TrimSpace(u.m.Text()) != "" && n >= models.MinCompareModels && n <= models.MaxCompareModels
	label := fmt.Sprintf("[ %s Compare %d models (%s) ]", theme.IconBolt, n, u.keys.Compare.Help().Key)
	if !ready {
		return t.Muted.Render(label)
	}
	return t.Accent.Bold(true).Render(label)
}

func (u *ui) viewResults(width, height int) string {
	report := u.m.Report()
	if report == nil {
		return theme.DefaultTheme.Muted.Render("Run a comparison to see results here.")
	}
	// One column is kept for the scrollbar.
	width = max(1, width-1)
	if report != u.renderedFor || width != u.renderedWidth {
		u.results.SetContent(RenderReport(report, width))
		u.renderedFor = report
		u.renderedWidth = width
	}
	u.results.Width = width
	u.results.Height = max(3, height-1)
	return scrollbar.Overlay(&u.results)
}

// RenderReport renders a comparison report as text, wrapped to width.
func RenderReport(r *Report, width int) string {
	t := theme.DefaultTheme
	var sections []string

	sections = append(sections, table.StatusTable([][]string{
		{"Total Time", format.Seconds(r.Stats.TotalTime)},
		{"Success Rate", fmt.Sprintf("%d/%d", r.Stats.Successes, r.Stats.Attempts)},
		{theme.IconTrophy + " Winner", r.Stats.Winner},
	}))

	if rec := r.Recommendation; rec != nil {
		sections = append(sections, renderRecommendation(rec))
	}

	for _, card := range r.Cards {
		sections = append(sections, renderCard(card, width))
	}

	sections = append(sections, components.RenderSection("General Advice", strings.Join([]string{
		"For accuracy: choose models with high Precision scores (4-5/5)",
		"For completeness: choose models with high Completeness scores (4-5/5)",
		"For readability: choose models with high Clarity scores (4-5/5)",
	}, "\n")))

	return lipgloss.NewStyle().Width(width).Render(
		strings.Join(sections, "\n"+t.Muted.Render(strings.Repeat("─", max(1, width)))+"\n"))
}

func renderRecommendation(rec *Recommendation) string {
	strengths := "Balanced performance"
	if len(rec.Strengths) > 0 {
		strengths = strings.Join(rec.Strengths, ", ")
	}
	speed := format.Seconds(rec.WinnerTime)
	if rec.WinnerFastest {
		speed = "Fastest model"
	}

	best := components.RenderSection("Best Overall: "+rec.Winner, table.StatusTable([][]string{
		{"Score", format.Score(rec.WinnerScore, models.MaxSampleScore)},
		{"Strengths", strengths},
		{"Speed", speed},
	}))
	if rec.Fastest == "" {
		return best
	}
	fastest := components.RenderSection("Fastest: "+rec.Fastest, table.StatusTable([][]string{
		{"Speed", format.Seconds(rec.FastestTime)},
		{"Quality", format.Score(rec.FastestScore, models.MaxSampleScore)},
	}))
	return lipgloss.JoinVertical(lipgloss.Left, best, "", fastest)
}

func renderCard(c Card, width int) string {
	t := theme.DefaultTheme

	title := t.Bold.Render(c.Result.Model) + " " + t.Muted.Render(models.ProviderOf(c.Result.Model).DisplayName())
	if c.Winner {
		title += " " + t.WinnerBadge.Render(theme.IconTrophy+" WINNER")
	}

	score := "N/A"
	consistency := "N/A"
	if c.Evaluation != nil {
		score = t.ScoreStyle(string(c.Class)).Render(format.Score(c.Evaluation.AverageScore, models.MaxSampleScore))
		consistency = fmt.Sprintf("%.1f%%", c.Evaluation.ConsistencyScore)
	}
	metrics := table.StatusTable([][]string{
		{"Overall Score", score},
		{"Avg Length", fmt.Sprintf("%.1f words", c.Result.AvgLength)},
		{"Execution Time", format.Seconds(c.Result.ExecutionTime)},
		{"Success Rate", fmt.Sprintf("%d/%d", c.Result.SuccessCount, models.SamplesPerModel)},
		{"Consistency", consistency},
	})

	parts := []string{
		title,
		metrics,
		t.Header.Render("Best Summary"),
		markdown.Render(c.BestSummary, width),
	}

	if len(c.Samples) > 0 {
		rows := make([][]string, 0, len(c.Samples))
		for _, s := range c.Samples {
			rows = append(rows, []string{
				strconv.Itoa(s.Index),
				criterion(s.Detail.Precision, s.HasDetail),
				criterion(s.Detail.Completeness, s.HasDetail),
				criterion(s.Detail.Clarity, s.HasDetail),
				fmt.Sprintf("%s/%d", strconv.FormatFloat(s.Total, 'f', -1, 64), models.MaxSampleScore),
				s.Detail.Comment,
			})
		}
		parts = append(parts,
			t.Header.Render(fmt.Sprintf("Detailed Evaluation (Avg: %s)", format.Score(c.Score(), models.MaxSampleScore))),
			table.NewBuilder().
				WithHeaders("#", "Precision", "Completeness", "Clarity", "Total", "Comment").
				WithRows(rows...).
				WithWidth(width).
				Build().
				String(),
		)
	}
	return strings.Join(parts, "\n")
}

func criterion(v float64, ok bool) string {
	if !ok || v == 0 {
		return fmt.Sprintf("N/A/%d", models.MaxCriterionScore)
	}
	return fmt.Sprintf("%s/%d", strconv.FormatFloat(v, 'f', -1, 64), models.MaxCriterionScore)
}

func providerLabel(filter string) string {
	if filter == "" || filter == FilterAll {
		return "All"
	}
	return models.Provider(filter).DisplayName()
}
