package picker

import (
	"regexp"

	"github.com/mattn/go-runewidth"
)

// ansiRE matches ANSI escape sequences. SSIDs are attacker-controlled
// bytes; anything that could move the cursor or recolor the terminal is
// stripped before rendering.
var ansiRE = regexp.MustCompile(`\x1b(?:` +
	`\[[0-9;]*[A-Za-z]` + // CSI sequences (SGR, cursor, etc.)
	`|` +
	`\].*?(?:\x1b\\|\x07)` + // OSC sequences (terminated by ST or BEL)
	`|` +
	`[()][A-B0-2]` + // Charset designation sequences
	`|` +
	`[#()*+\-./][A-Za-z0-9]` + // Other two-byte escape sequences
	`)`)

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// Truncate returns the longest prefix of s whose display width does not
// exceed maxWidth, with a trailing ellipsis when anything was cut. It is
// display-width-aware (CJK and emoji occupy two columns).
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	const ellipsis = "…"
	return prefixToWidth(s, maxWidth-1) + ellipsis
}

// prefixToWidth returns the longest prefix of s not exceeding maxWidth
// display columns.
func prefixToWidth(s string, maxWidth int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			return s[:i]
		}
		w += rw
	}
	return s
}
