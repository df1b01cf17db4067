// Package markdown renders model output for the terminal with glamour.
package markdown

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/mattn/go-isatty"
)

// Style names understood by glamour.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

var (
	mu        sync.Mutex
	renderers = map[rendererKey]*glamour.TermRenderer{}
	style     = defaultStyle()
)

type rendererKey struct {
	style string
	width int
}

func defaultStyle() string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return StyleNoTTY
	}
	return StyleDark
}

// SetStyle selects the glamour style used by Render.
func SetStyle(name string) {
	mu.Lock()
	style = name
	mu.Unlock()
}

// Render renders md wrapped to width. If glamour fails the text is
// returned as is.
func Render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	if width < 20 {
		width = 20
	}

	mu.Lock()
	defer mu.Unlock()

	r, err := renderer(width)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// renderer must be called with mu held.
func renderer(width int) (*glamour.TermRenderer, error) {
	key := rendererKey{style: style, width: width}
	if r, ok := renderers[key]; ok {
		return r, nil
	}
	styleOpt := glamour.WithStylePath(style)
	if style == StyleNoTTY {
		styleOpt = glamour.WithStyles(plainStyle())
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}

// plainStyle is glamour's notty style without inline emphasis markers, so
// piped output reads as prose.
func plainStyle() ansi.StyleConfig {
	cfg := styles.NoTTYStyleConfig
	for _, p := range []*ansi.StylePrimitive{&cfg.Emph, &cfg.Strong, &cfg.Strikethrough} {
		p.BlockPrefix, p.BlockSuffix = "", ""
	}
	return cfg
}
