// Package sanitize turns free-form names into strings safe for file names.
package sanitize

import (
	"regexp"
	"strings"
)

// MaxFilenameLength bounds the result of ForFilename.
const MaxFilenameLength = 50

var (
	separatorRegex = regexp.MustCompile(`[\s_/.:]+`)
	invalidRegex   = regexp.MustCompile(`[^a-z0-9-]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

// ForFilename sanitizes a string for use in a filename (kebab-case).
// Whitespace and path-like separators become hyphens, so a model list such
// as "gpt-4 claude-3.5-sonnet" keeps its word boundaries.
func ForFilename(s string) string {
	s = strings.ToLower(s)
	s = separatorRegex.ReplaceAllString(s, "-")
	s = invalidRegex.ReplaceAllString(s, "")
	s = multiDashRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxFilenameLength {
		s = strings.TrimRight(s[:MaxFilenameLength], "-")
	}
	return s
}
