package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// truncateLine clips a single line to width, ANSI-aware, with an ellipsis.
func truncateLine(s string, width int) string {
	if width < 8 {
		width = 8
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// truncateToTwoLines clips body text to two wrapped lines for the list view.
func truncateToTwoLines(text string, width int) string {
	if width < 12 {
		width = 12
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= 2 {
		return wrapped
	}
	return strings.Join(lines[:2], "\n") + "..."
}

// indentBlock prefixes every line of a rendered block.
func indentBlock(block, indent string) string {
	lines := strings.Split(block, "\n")
	for i, ln := range lines {
		lines[i] = indent + ln
	}
	return strings.Join(lines, "\n")
}

// isBlank reports whether a body is empty after trimming.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func boxWidth(termWidth int) int {
	w := termWidth - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func contentWidth(termWidth int) int {
	return boxWidth(termWidth) - 4
}
