package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/alexanderramin/glidepath/internal/plan"
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

// StatusStyle returns the style used for a week status.
func StatusStyle(s domain.WeekStatus) lipgloss.Style {
	switch s {
	case domain.WeekAhead:
		return StyleGreen
	case domain.WeekOnTrack:
		return StyleBlue
	case domain.WeekBehind:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored status label such as "● AHEAD".
func StatusIndicator(s domain.WeekStatus) string {
	switch s {
	case domain.WeekAhead:
		return StyleGreen.Render("▲ AHEAD")
	case domain.WeekOnTrack:
		return StyleBlue.Render("● ON TRACK")
	case domain.WeekBehind:
		return StyleRed.Render("▼ BEHIND")
	default:
		return StyleDim.Render("○ PENDING")
	}
}

// LevelStyle maps entry feedback levels to colors.
func LevelStyle(l plan.FeedbackLevel) lipgloss.Style {
	switch l {
	case plan.FeedbackSuccess:
		return StyleGreen
	case plan.FeedbackWarning:
		return StyleYellow
	case plan.FeedbackError:
		return StyleRed
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
