// Package render provides width-aware text helpers for TUI components.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters (except tab) and invalid UTF-8 bytes,
// and turns non-breaking spaces into plain spaces. Tags and hints come from
// files and user input, so they go through here before reaching the screen.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			i++
			continue
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func needsSanitize(s string) bool {
	for i := range len(s) {
		b := s[i]
		if b < 0x20 && b != '\t' {
			return true
		}
		if b == 0x7f || (b >= 0x80 && b <= 0x9f) {
			return true
		}
		if b == 0xc2 && i+1 < len(s) && s[i+1] == 0xa0 {
			return true
		}
	}
	return !utf8.ValidString(s)
}

// Truncate shortens s to maxWidth columns with a "..." tail.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// TruncateEllipsis shortens s using a single "…" character.
func TruncateEllipsis(s string, maxWidth int) string {
	s = Sanitize(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// Pad fills s with spaces up to width columns.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad returns s at exactly width columns.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row puts left and right on one line of the given width, with at least
// one space between them.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Center pads s on both sides to center it within width columns.
func Center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// Separator returns a horizontal rule of the given width.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}
