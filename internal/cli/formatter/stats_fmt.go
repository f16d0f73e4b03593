package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/alexanderramin/glidepath/internal/plan"
)

var tierMessages = map[plan.Tier]string{
	plan.TierExcellent: "Excellent work, you're crushing it!",
	plan.TierGood:      "Good progress, stay consistent.",
	plan.TierFair:      "You're getting there, keep pushing.",
	plan.TierRefocus:   "Time to refocus, every week is a fresh start.",
}

// FormatStats renders the progress summary and the achievement list.
func FormatStats(p *domain.Program, s plan.Summary, achievements []plan.Achievement) string {
	var b strings.Builder
	b.WriteString(Header("Progress"))
	b.WriteString("\n")
	b.WriteString(FormatProgramHeader(p))
	b.WriteString("\n\n")

	line := func(label, value string) {
		fmt.Fprintf(&b, "  %-22s %s\n", label, value)
	}
	line("Completed", fmt.Sprintf("%d of %d weeks  %s", s.CompletedWeeks, p.TotalWeeks, RenderProgress(s.PercentProgress, 20)))
	line("Remaining", fmt.Sprintf("%d weeks", s.RemainingWeeks))
	line("Planned per week", SignedKg(s.WeeklyAverageDelta))
	line("Actual per week", SignedKg(s.AverageActualWeeklyChange))
	if s.LatestWeight != nil {
		line("Latest weight", Kg(*s.LatestWeight))
	}
	if s.CompletedWeeks < p.TotalWeeks {
		line("Next target", fmt.Sprintf("week %d, %s", s.CurrentWeek, Kg(s.CurrentTarget)))
	}
	if s.BestWeek != nil {
		line("Best week", fmt.Sprintf("week %d (%s)", s.BestWeek.Week, SignedKg(s.BestWeek.Change)))
	}
	line("Successful weeks", fmt.Sprintf("%d", s.SuccessfulWeeks))
	line("Current streak", fmt.Sprintf("%d", s.ConsecutiveSuccessStreak))

	tier := plan.MotivationTier(s.MotivationScore)
	line("Motivation", fmt.Sprintf("%d/100 %s", s.MotivationScore, Dim(string(tier))))
	if s.CompletedWeeks > 0 {
		b.WriteString("\n  ")
		b.WriteString(StylePurple.Render(tierMessages[tier]))
		b.WriteString("\n")
	}

	if len(achievements) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatAchievements(achievements))
	}
	return b.String()
}

// FormatAchievements lists badges with their progress.
func FormatAchievements(list []plan.Achievement) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Achievements %d/%d", plan.UnlockedCount(list), len(list))))
	b.WriteString("\n")
	for _, a := range list {
		mark := StyleDim.Render("○")
		title := StyleFg.Render(a.Title)
		if a.Unlocked {
			mark = StyleGreen.Render("★")
			title = Bold(a.Title)
		}
		progress := Dim(fmt.Sprintf("%.0f/%.0f", a.Progress, a.MaxProgress))
		fmt.Fprintf(&b, "  %s %s  %s %s\n", mark, title, Dim(a.Description), progress)
	}
	return b.String()
}

// FormatTrend renders the recent trend and its recommendation.
func FormatTrend(t plan.Trend) string {
	var b strings.Builder
	b.WriteString(Header("Trend"))
	b.WriteString("\n")

	if t.Direction == plan.TrendInsufficient {
		b.WriteString(Dim(t.Recommendation.Message()))
		b.WriteString("\n")
		return b.String()
	}

	style := StyleBlue
	switch t.Direction {
	case plan.TrendImproving:
		style = StyleGreen
	case plan.TrendDeclining:
		style = StyleRed
	}
	fmt.Fprintf(&b, "  %-22s %s\n", "Direction", style.Render(strings.ToUpper(string(t.Direction))))
	fmt.Fprintf(&b, "  %-22s %s over %d weeks\n", "Net change", SignedKg(t.NetChange), len(t.Window))
	fmt.Fprintf(&b, "  %-22s %.2f kg (planned %.2f kg)\n", "Average weekly change", t.AverageWeeklyChange, t.ExpectedWeeklyChange)
	fmt.Fprintf(&b, "\n  %s\n", StylePurple.Render(t.Recommendation.Message()))
	return b.String()
}
