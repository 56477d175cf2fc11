package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style used for a unit status.
func StatusColor(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusDone:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StatusPill returns a colored status indicator such as "● In Progress".
func StatusPill(s domain.Status) string {
	switch s {
	case domain.StatusDone:
		return StyleGreen.Render("✔ Done")
	case domain.StatusInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.StatusNotStarted:
		return StyleDim.Render("○ Not Started")
	default:
		return StyleDim.Render(string(s))
	}
}

// PhaseBadge returns the phase name colored by track.
func PhaseBadge(p domain.Phase) string {
	switch p {
	case domain.PhaseFoundation:
		return StyleBlue.Render(string(p))
	case domain.PhaseAutomation:
		return StylePurple.Render(string(p))
	case domain.PhaseProject:
		return StyleHeader.Render(string(p))
	default:
		return StyleDim.Render(string(p))
	}
}

// CertBadge marks days that count towards the certification syllabus.
func CertBadge(required bool) string {
	if required {
		return StyleYellow.Render("ISTQB")
	}
	return StyleDim.Render("--")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
