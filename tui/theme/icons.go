package theme

import (
	"os"

	"github.com/grovetools/llmcompare/config"
)

// Nerd Font Icons (Private Constants)
const (
	nerdIconSuccess   = "\U000F012C" // md-check (U+F012C)
	nerdIconError     = "\uEA87"     // cod-error (U+EA87)
	nerdIconWarning   = "\uF071"     // fa-warning (U+F071)
	nerdIconInfo      = "\U000F02FC" // md-information (U+F02FC)
	nerdIconRunning   = "\uF021"     // fa-refresh (U+F021)
	nerdIconPending   = "\U000F0996" // md-progress_clock (U+F0996)
	nerdIconSelect    = "\U000F0C52" // md-checkbox_outline (U+F0C52)
	nerdIconUnchecked = "\U000F0131" // md-checkbox_blank_outline (U+F0131)
	nerdIconArrow     = "\U000F0054" // md-arrow_right (U+F0054)
	nerdIconBullet    = "\uF444"     // oct-dot_fill (U+F444)
	nerdIconFilter    = "\U000F18EC" // md-filter_check (U+F18EC)
	nerdIconTrophy    = "\uF091"     // fa-trophy (U+F091)
	nerdIconBolt      = "\uF0E7"     // fa-bolt (U+F0E7)
	nerdIconDocument  = "\uF15C"     // fa-file_text (U+F15C)
	nerdIconRobot     = "\uEE0D"     // fa-robot (U+EE0D)
	nerdIconServer    = "\uF233"     // fa-server (U+F233)
)

// ASCII Fallback Icons (Private Constants)
const (
	asciiIconSuccess   = "✓"
	asciiIconError     = "✗"
	asciiIconWarning   = "⚠"
	asciiIconInfo      = "ℹ"
	asciiIconRunning   = "◐"
	asciiIconPending   = "…"
	asciiIconSelect    = "[x]"
	asciiIconUnchecked = "[ ]"
	asciiIconArrow     = "→"
	asciiIconBullet    = "•"
	asciiIconFilter    = "⊲"
	asciiIconTrophy    = "*"
	asciiIconBolt      = "!"
	asciiIconDocument  = "▢"
	asciiIconRobot     = "◆"
	asciiIconServer    = "▣"
)

// Public Icon Variables
var (
	IconSuccess   string
	IconError     string
	IconWarning   string
	IconInfo      string
	IconRunning   string
	IconPending   string
	IconSelect    string
	IconUnchecked string
	IconArrow     string
	IconBullet    string
	IconFilter    string
	IconTrophy    string
	IconBolt      string
	IconDocument  string
	IconRobot     string
	IconServer    string
)

func init() {
	useASCII := os.Getenv("LLMCOMPARE_ICONS") == "ascii"
	if !useASCII {
		cfg, err := config.LoadDefault()
		useASCII = err == nil && cfg != nil && cfg.TUI.Icons == "ascii"
	}
	SetASCII(useASCII)
}

// SetASCII switches between the Nerd Font and plain icon sets.
func SetASCII(ascii bool) {
	if ascii {
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconRunning = asciiIconRunning
		IconPending = asciiIconPending
		IconSelect = asciiIconSelect
		IconUnchecked = asciiIconUnchecked
		IconArrow = asciiIconArrow
		IconBullet = asciiIconBullet
		IconFilter = asciiIconFilter
		IconTrophy = asciiIconTrophy
		IconBolt = asciiIconBolt
		IconDocument = asciiIconDocument
		IconRobot = asciiIconRobot
		IconServer = asciiIconServer
		return
	}
	IconSuccess = nerdIconSuccess
	IconError = nerdIconError
	IconWarning = nerdIconWarning
	IconInfo = nerdIconInfo
	IconRunning = nerdIconRunning
	IconPending = nerdIconPending
	IconSelect = nerdIconSelect
	IconUnchecked = nerdIconUnchecked
	IconArrow = nerdIconArrow
	IconBullet = nerdIconBullet
	IconFilter = nerdIconFilter
	IconTrophy = nerdIconTrophy
	IconBolt = nerdIconBolt
	IconDocument = nerdIconDocument
	IconRobot = nerdIconRobot
	IconServer = nerdIconServer
}
