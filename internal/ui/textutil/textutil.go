// Package textutil provides unicode-aware width helpers for TUI rendering.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is appended when text is cut.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth columns, ending in "…" when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	avail := maxWidth - VisualWidth(TruncateEllipsis)
	if avail <= 0 {
		return TruncateEllipsis
	}

	var b strings.Builder
	width := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if width+w > avail {
			break
		}
		b.WriteRune(r)
		width += w
	}
	b.WriteString(TruncateEllipsis)
	return b.String()
}

// Fit truncates or right-pads s to exactly width columns.
func Fit(s string, width int) string {
	s = Truncate(s, width)
	if pad := width - VisualWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
