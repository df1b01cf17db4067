// Package theme holds the palettes, styles and icons shared by the TUI and
// the CLI output.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/llmcompare/config"
)

const defaultThemeName = "kanagawa"

// Colors is the palette a theme is built from.
type Colors struct {
	Green     lipgloss.TerminalColor
	Yellow    lipgloss.TerminalColor
	Red       lipgloss.TerminalColor
	Orange    lipgloss.TerminalColor
	Cyan      lipgloss.TerminalColor
	Blue      lipgloss.TerminalColor
	Violet    lipgloss.TerminalColor
	Pink      lipgloss.TerminalColor
	LightText lipgloss.TerminalColor
	MutedText lipgloss.TerminalColor
	DarkText  lipgloss.TerminalColor
	Border    lipgloss.TerminalColor

	SelectedBackground   lipgloss.TerminalColor
	SubtleBackground     lipgloss.TerminalColor
	VerySubtleBackground lipgloss.TerminalColor
}

// Theme holds the pre-built styles used by pages, components and CLI tables.
type Theme struct {
	Name   string
	Colors Colors

	Header lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Highlight lipgloss.Style
	Accent    lipgloss.Style

	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	// UseAlternatingRows is off for the terminal palette, whose background
	// colors are whatever the user's terminal maps them to.
	UseAlternatingRows bool

	// Comparison results
	WinnerBadge lipgloss.Style
	ScoreHigh   lipgloss.Style
	ScoreMedium lipgloss.Style
	ScoreLow    lipgloss.Style

	// Application chrome
	Banner    lipgloss.Style
	NavActive lipgloss.Style
	NavItem   lipgloss.Style
	NavMuted  lipgloss.Style
	StatusBar lipgloss.Style
}

func adaptive(light, dark string) lipgloss.TerminalColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var palettes = map[string]func() Colors{
	// Kanagawa Wave (light) / Dragon (dark)
	"kanagawa": func() Colors {
		return Colors{
			Green:                adaptive("#4E7C5A", "#98BB6C"),
			Yellow:               adaptive("#A68A64", "#FF9E3B"),
			Red:                  adaptive("#C34043", "#FF5D62"),
			Orange:               adaptive("#CC6B4E", "#FFA066"),
			Cyan:                 adaptive("#5B8BBE", "#7E9CD8"),
			Blue:                 adaptive("#4F7CAC", "#7FB4CA"),
			Violet:               adaptive("#674D7A", "#957FB8"),
			Pink:                 adaptive("#B35C74", "#D27E99"),
			LightText:            adaptive("#2B2F42", "#DCD7BA"),
			MutedText:            adaptive("#6C7086", "#727169"),
			DarkText:             adaptive("#E6E9EF", "#1D1C19"),
			Border:               adaptive("#B5BDC5", "#363646"),
			SelectedBackground:   adaptive("#E2E6F3", "#223249"),
			SubtleBackground:     adaptive("#F7F7FB", "#1F1F28"),
			VerySubtleBackground: adaptive("#EFF1F8", "#181820"),
		}
	},
	"gruvbox": func() Colors {
		return Colors{
			Green:                adaptive("#98971A", "#B8BB26"),
			Yellow:               adaptive("#D79921", "#FABD2F"),
			Red:                  adaptive("#CC241D", "#FB4934"),
			Orange:               adaptive("#D65D0E", "#FE8019"),
			Cyan:                 adaptive("#458588", "#83A598"),
			Blue:                 adaptive("#076678", "#458588"),
			Violet:               adaptive("#8F3F71", "#B16286"),
			Pink:                 adaptive("#B57679", "#D3869B"),
			LightText:            adaptive("#3C3836", "#EBDBB2"),
			MutedText:            adaptive("#928374", "#BDAE93"),
			DarkText:             adaptive("#F9F5D7", "#1D2021"),
			Border:               adaptive("#D5C4A1", "#504945"),
			SelectedBackground:   adaptive("#F2E5BC", "#32302F"),
			SubtleBackground:     adaptive("#FBF1C7", "#282828"),
			VerySubtleBackground: adaptive("#F9F5D7", "#1D2021"),
		}
	},
	// ANSI indexes, so the terminal's own color scheme applies.
	"terminal": func() Colors {
		c := func(s string) lipgloss.TerminalColor { return lipgloss.Color(s) }
		return Colors{
			Green: c("2"), Yellow: c("3"), Red: c("1"), Orange: c("208"),
			Cyan: c("6"), Blue: c("4"), Violet: c("5"), Pink: c("13"),
			LightText: c("7"), MutedText: c("8"), DarkText: c("0"), Border: c("8"),
			SelectedBackground: c("8"), SubtleBackground: c("0"), VerySubtleBackground: c("0"),
		}
	},
}

var aliases = map[string]string{
	"kanagawa-dragon": "kanagawa",
	"kanagawa-wave":   "kanagawa",
	"gruvbox-dark":    "gruvbox",
	"gruvbox-light":   "gruvbox",
	"ansi":            "terminal",
}

// DefaultTheme is the theme named by LLMCOMPARE_THEME or tui.theme in
// llmcompare.yml, kanagawa otherwise.
var DefaultTheme = New(selectedName())

// New builds the theme for a palette name. Unknown names get the default
// palette.
func New(name string) *Theme {
	key := normalizeName(name)
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	build, ok := palettes[key]
	if !ok {
		key, build = defaultThemeName, palettes[defaultThemeName]
	}
	return build().theme(key)
}

func (colors Colors) theme(name string) *Theme {
	chip := func(fg, bg lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(fg).Background(bg).Bold(true).Padding(0, 1)
	}
	tab := lipgloss.NewStyle().Padding(0, 2)

	return &Theme{
		Name:   name,
		Colors: colors,

		Header: lipgloss.NewStyle().Bold(true).MarginTop(1).MarginBottom(1),

		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),

		Bold:      lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Faint(true),
		Selected:  lipgloss.NewStyle().Background(colors.SelectedBackground).Foreground(colors.LightText),
		Highlight: lipgloss.NewStyle().Foreground(colors.Orange).Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(colors.Violet).Bold(true),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colors.Border),
		TableRow:           lipgloss.NewStyle(),
		UseAlternatingRows: name != "terminal",

		WinnerBadge: chip(colors.DarkText, colors.Yellow),
		ScoreHigh:   lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		ScoreMedium: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		ScoreLow:    lipgloss.NewStyle().Foreground(colors.Red).Bold(true),

		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Red).
			Foreground(colors.Red).
			Padding(0, 1),
		NavActive: tab.Background(colors.SelectedBackground).Foreground(colors.LightText).Bold(true),
		NavItem:   tab.Foreground(colors.LightText),
		NavMuted:  tab.Foreground(colors.MutedText).Faint(true),
		StatusBar: lipgloss.NewStyle().Background(colors.SubtleBackground).Foreground(colors.LightText),
	}
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(name)
}

func selectedName() string {
	if name := os.Getenv("LLMCOMPARE_THEME"); strings.TrimSpace(name) != "" {
		return name
	}
	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil || cfg.TUI.Theme == "" {
		return defaultThemeName
	}
	return cfg.TUI.Theme
}

// WithAccent returns a copy of t whose accent, highlight and header use the
// accent color, and whose table and banner borders use border. Empty values
// keep the current colors.
func (t *Theme) WithAccent(accent, border string) *Theme {
	out := *t
	if accent != "" {
		c := lipgloss.Color(accent)
		out.Accent = out.Accent.Foreground(c)
		out.Highlight = out.Highlight.Foreground(c)
		out.Header = out.Header.Foreground(c)
		out.NavActive = out.NavActive.Foreground(c)
	}
	if border != "" {
		c := lipgloss.Color(border)
		out.Colors.Border = c
		out.TableHeader = out.TableHeader.BorderForeground(c)
	}
	return &out
}

// ScoreStyle returns the style for a score class ("high", "medium", "low").
func (t *Theme) ScoreStyle(class string) lipgloss.Style {
	switch class {
	case "high":
		return t.ScoreHigh
	case "medium":
		return t.ScoreMedium
	default:
		return t.ScoreLow
	}
}
