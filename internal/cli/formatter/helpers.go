package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatHours renders an optional hour count, "--" when unset.
func FormatHours(h *float64) string {
	if h == nil {
		return Dim("--")
	}
	return strconv.FormatFloat(*h, 'f', -1, 64) + "h"
}

// FormatConfidence renders a 0-5 self-assessment as filled and empty stars.
func FormatConfidence(level *int) string {
	if level == nil {
		return Dim("--")
	}
	n := max(0, min(*level, 5))
	return StyleYellow.Render(strings.Repeat("★", n)) + StyleDim.Render(strings.Repeat("☆", 5-n))
}

// Truncate shortens s to width visible runes, ending with an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// DayLabel renders "Day 7".
func DayLabel(day int) string {
	return fmt.Sprintf("Day %d", day)
}
