package formatter

import (
	"fmt"
	"strings"
	"time"

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
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Kg formats a weight with one decimal, e.g. "84.5 kg".
func Kg(v float64) string {
	return fmt.Sprintf("%.1f kg", v)
}

// SignedKg formats a change with an explicit sign, e.g. "-0.75 kg".
func SignedKg(v float64) string {
	if v == 0 {
		return "0.00 kg"
	}
	return fmt.Sprintf("%+.2f kg", v)
}

// OptionalKg renders nil as a dimmed dash.
func OptionalKg(v *float64, format func(float64) string) string {
	if v == nil {
		return Dim("--")
	}
	return format(*v)
}

// HumanDate returns a short absolute date, e.g. "Mar 3, 2025".
func HumanDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Jan 2, 2006")
}
