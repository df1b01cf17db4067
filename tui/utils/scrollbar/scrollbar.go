// Package scrollbar draws a one-column scrollbar beside a viewport.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/llmcompare/tui/theme"
)

const (
	thumb = "█"
	track = "░"
)

// Generate returns one scrollbar cell per line for a bar height lines tall.
// Content that fits the viewport is drawn as a full thumb; an empty viewport
// gets blank cells.
func Generate(vp *viewport.Model, height int) []string {
	if height <= 0 {
		return []string{}
	}
	style := theme.DefaultTheme.Muted
	cells := make([]string, height)

	total := vp.TotalLineCount()
	switch {
	case total == 0:
		return fill(cells, style, " ")
	case total <= vp.Height:
		return fill(cells, style, thumb)
	}

	size := max(1, height*vp.Height/total)
	maxStart := height - size
	start := int(float64(maxStart)*min(1, max(0, vp.ScrollPercent())) + 0.5)
	start = min(maxStart, max(0, start))

	for i := range cells {
		if i >= start && i < start+size {
			cells[i] = style.Render(thumb)
		} else {
			cells[i] = style.Render(track)
		}
	}
	return cells
}

func fill(cells []string, style lipgloss.Style, s string) []string {
	for i := range cells {
		cells[i] = style.Render(s)
	}
	return cells
}

// Overlay returns the viewport's visible content with a scrollbar cell
// appended to each line.
func Overlay(vp *viewport.Model) string {
	lines := strings.Split(vp.View(), "\n")
	bar := Generate(vp, len(lines))
	for i := range lines {
		lines[i] += bar[i]
	}
	return strings.Join(lines, "\n")
}
