package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/llmcompare/tui/theme"
)

// Tab is one entry of a tab bar.
type Tab struct {
	Label  string
	Active bool
	// Disabled tabs are shown muted; their page has no implementation.
	Disabled bool
}

// RenderHeader creates a consistent header for pages
func RenderHeader(title string, subtitle ...string) string {
	t := theme.DefaultTheme

	header := t.Header.Render(fmt.Sprintf("%s %s", theme.IconRobot, title))

	if len(subtitle) > 0 && subtitle[0] != "" {
		sub := t.Muted.Render(subtitle[0])
		return lipgloss.JoinVertical(lipgloss.Left, header, sub)
	}

	return header
}

// RenderStatusBar creates a status bar with left, center and right sections
func RenderStatusBar(left, center, right string, width int) string {
	totalContent := lipgloss.Width(left) + lipgloss.Width(center) + lipgloss.Width(right)
	if totalContent >= width {
		return left
	}

	remaining := width - totalContent
	var b strings.Builder
	b.WriteString(left)
	if center != "" {
		pad := remaining / 2
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(center)
		remaining -= pad
	}
	b.WriteString(strings.Repeat(" ", remaining))
	b.WriteString(right)

	return theme.DefaultTheme.StatusBar.Width(width).Render(b.String())
}

// RenderDivider creates a horizontal divider
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.DefaultTheme.Colors.Border).
		Render(strings.Repeat("─", width))
}

// RenderBox renders content in a rounded box with an optional title line.
// A width of 0 sizes the box to its content.
func RenderBox(title, content string, width int) string {
	t := theme.DefaultTheme

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Border).
		Padding(0, 1)
	if width > 2 {
		box = box.Width(width - 2)
	}

	if title != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, t.Highlight.Render(title), content)
	}
	return box.Render(content)
}

// RenderList creates a styled list
func RenderList(items []string, ordered bool) string {
	t := theme.DefaultTheme

	if len(items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		var prefix string
		if ordered {
			prefix = t.Highlight.Render(fmt.Sprintf("%2d.", i+1))
		} else {
			prefix = t.Highlight.Render(theme.IconBullet)
		}
		lines = append(lines, fmt.Sprintf("%s %s", prefix, item))
	}

	return strings.Join(lines, "\n")
}

// RenderProgress creates a bar showing current out of total
func RenderProgress(current, total float64, width int) string {
	t := theme.DefaultTheme

	if total <= 0 || width <= 10 {
		return ""
	}

	percentage := current / total
	percentage = max(0, min(1, percentage))

	barWidth := width - 6
	filledWidth := int(percentage * float64(barWidth))

	bar := t.Success.Render(strings.Repeat("█", filledWidth)) +
		t.Muted.Render(strings.Repeat("░", barWidth-filledWidth))

	return bar + t.Muted.Render(fmt.Sprintf(" %3d%%", int(percentage*100)))
}

// RenderTabs creates a tab bar
func RenderTabs(tabs []Tab) string {
	if len(tabs) == 0 {
		return ""
	}
	t := theme.DefaultTheme

	rendered := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		style := t.NavItem
		switch {
		case tab.Active:
			style = t.NavActive
		case tab.Disabled:
			style = t.NavMuted
		}
		rendered = append(rendered, style.Render(tab.Label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderKeyValue creates a key-value display
func RenderKeyValue(key, value string) string {
	t := theme.DefaultTheme
	return fmt.Sprintf("%s %s", t.Muted.Render(key+":"), value)
}

// RenderSection creates a section with a title and content
func RenderSection(title, content string) string {
	t := theme.DefaultTheme
	titleLine := t.Header.Render(fmt.Sprintf("%s %s", theme.IconArrow, title))
	contentLines := lipgloss.NewStyle().
		MarginLeft(2).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, titleLine, contentLines)
}

// RenderEmpty renders the placeholder shown when a list has nothing in it.
func RenderEmpty(title, hint string) string {
	t := theme.DefaultTheme
	lines := []string{t.Bold.Render(title)}
	if hint != "" {
		lines = append(lines, t.Muted.Render(hint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
