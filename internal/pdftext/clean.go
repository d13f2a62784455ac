package pdftext

import (
	"regexp"
	"strings"
)

var (
	hyphenBreakRe  = regexp.MustCompile(`-\n`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	trailingNumRe  = regexp.MustCompile(`\b\d+\b\s*$`)
	specialCharsRe = regexp.MustCompile(`[^\w\s.,;:!?()-]`)
)

// Clean normalizes extracted PDF text: rejoins words split across line
// breaks, strips trailing page numbers, drops characters outside the
// basic prose set, and collapses whitespace.
func Clean(text string) string {
	// Words hyphenated across a line break are rejoined before the
	// newline is turned into a space.
	text = hyphenBreakRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\n", " ")
	text = trailingNumRe.ReplaceAllString(text, "")
	text = specialCharsRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
