package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/alexanderramin/glidepath/internal/plan"
)

// FormatProgramHeader renders the one-line program description.
func FormatProgramHeader(p *domain.Program) string {
	return fmt.Sprintf("%s %s → %s in %d weeks %s",
		Bold(strings.ToUpper(string(p.Direction()))),
		Kg(p.StartWeight), Kg(p.TargetWeight), p.TotalWeeks,
		Dim("(started "+HumanDate(p.StartDate)+")"))
}

// FormatPlan renders the program header and the week table. current marks
// the week the user is expected to record next.
func FormatPlan(p *domain.Program, weeks []domain.WeekEntry, current int) string {
	var b strings.Builder
	b.WriteString(Header("Glide path"))
	b.WriteString("\n")
	b.WriteString(FormatProgramHeader(p))
	b.WriteString("\n\n")

	headers := []string{"WEEK", "TARGET", "PLANNED", "ACTUAL", "CHANGE", "STATUS"}
	rows := make([][]string, 0, len(weeks))
	for _, w := range weeks {
		week := strconv.Itoa(w.Week)
		if w.Week == current && !w.Recorded() {
			week = StyleHeader.Render("› " + week)
		}
		rows = append(rows, []string{
			week,
			Kg(w.TargetWeight),
			SignedKg(w.TargetChange),
			OptionalKg(w.ActualWeight, Kg),
			OptionalKg(w.ActualChange, SignedKg),
			StatusIndicator(w.Status),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatWeekResult renders the line printed after a week is recorded.
func FormatWeekResult(w domain.WeekEntry, dir domain.Direction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week %d: %s (target %s)  %s",
		w.Week, OptionalKg(w.ActualWeight, Kg), Kg(w.TargetWeight), StatusIndicator(w.Status))
	if w.ActualChange != nil {
		fmt.Fprintf(&b, "  %s", Dim("change "+SignedKg(*w.ActualChange)))
	}
	if note, ok := plan.WeekFeedback(w, dir); ok {
		b.WriteString("\n")
		b.WriteString(StatusStyle(w.Status).Render(note.Message()))
	}
	return b.String()
}

// FormatFeedback renders advisory feedback for a typed weight. Empty
// feedback renders as "".
func FormatFeedback(f plan.EntryFeedback) string {
	if f.Message == "" {
		return ""
	}
	icon := "•"
	switch f.Level {
	case plan.FeedbackSuccess:
		icon = "✔"
	case plan.FeedbackWarning:
		icon = "!"
	case plan.FeedbackError:
		icon = "✖"
	}
	return LevelStyle(f.Level).Render(icon + " " + f.Message)
}
