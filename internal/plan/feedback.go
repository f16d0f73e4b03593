package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/glidepath/internal/domain"
)

// Advisory thresholds for typed entries, in kilograms.
const (
	FarFromTargetKg = 3.0
	SuspectChangeKg = 3.0
	FastChangeKg    = domain.MaxWeeklyChangeKg
	DeviatedWeekKg  = 1.0
)

type FeedbackLevel string

const (
	FeedbackNone    FeedbackLevel = ""
	FeedbackSuccess FeedbackLevel = "success"
	FeedbackWarning FeedbackLevel = "warning"
	FeedbackError   FeedbackLevel = "error"
)

type FeedbackCode string

const (
	FeedbackEmpty          FeedbackCode = "empty"
	FeedbackNotANumber     FeedbackCode = "not_a_number"
	FeedbackOutOfRange     FeedbackCode = "out_of_range"
	FeedbackFarFromTarget  FeedbackCode = "far_from_target"
	FeedbackCheckValue     FeedbackCode = "check_value"
	FeedbackFastChange     FeedbackCode = "fast_change"
	FeedbackOnTarget       FeedbackCode = "on_target"
	FeedbackBetterThanPlan FeedbackCode = "better_than_plan"
	FeedbackBehindPlan     FeedbackCode = "behind_plan"
)

// EntryFeedback is advisory output for a weight the user is typing. Only
// FeedbackError entries will be refused on commit.
type EntryFeedback struct {
	Level   FeedbackLevel `json:"level"`
	Code    FeedbackCode  `json:"code"`
	Message string        `json:"message"`
}

// Blocking reports whether committing the entry would fail validation.
func (f EntryFeedback) Blocking() bool {
	return f.Level == FeedbackError
}

// AssessEntry inspects raw text typed for week against its target and the
// previous recorded weight (or the start weight).
func AssessEntry(raw string, week domain.WeekEntry, previous float64, dir domain.Direction) EntryFeedback {
	if strings.TrimSpace(raw) == "" {
		return EntryFeedback{Level: FeedbackNone, Code: FeedbackEmpty}
	}
	kg, err := domain.ParseWeight(raw)
	if err != nil {
		return EntryFeedback{Level: FeedbackError, Code: FeedbackNotANumber, Message: err.Error()}
	}
	if !domain.InWeightRange(kg) {
		return EntryFeedback{
			Level:   FeedbackError,
			Code:    FeedbackOutOfRange,
			Message: fmt.Sprintf("weight must be between %.0f and %.0f kg", domain.MinWeightKg, domain.MaxWeightKg),
		}
	}

	deviation := math.Abs(kg - week.TargetWeight)
	if deviation > FarFromTargetKg {
		return EntryFeedback{
			Level:   FeedbackWarning,
			Code:    FeedbackFarFromTarget,
			Message: fmt.Sprintf("%.1f kg away from this week's target, please double-check", deviation),
		}
	}

	change := math.Abs(kg - previous)
	switch {
	case change > SuspectChangeKg:
		return EntryFeedback{
			Level:   FeedbackWarning,
			Code:    FeedbackCheckValue,
			Message: fmt.Sprintf("%.1f kg change in one week is unusual, please check the value", change),
		}
	case change > FastChangeKg:
		return EntryFeedback{
			Level:   FeedbackWarning,
			Code:    FeedbackFastChange,
			Message: fmt.Sprintf("%.1f kg weekly change is a bit fast, take care", change),
		}
	}

	switch Classify(kg, week.TargetWeight, dir) {
	case domain.WeekOnTrack:
		return EntryFeedback{Level: FeedbackSuccess, Code: FeedbackOnTarget, Message: "right on target"}
	case domain.WeekAhead:
		return EntryFeedback{Level: FeedbackSuccess, Code: FeedbackBetterThanPlan, Message: "ahead of plan, great progress"}
	default:
		return EntryFeedback{Level: FeedbackWarning, Code: FeedbackBehindPlan, Message: "behind plan, keep going"}
	}
}

type WeekNote string

const (
	NoteTargetMet        WeekNote = "target_met"
	NoteBetterThanTarget WeekNote = "better_than_target"
	NoteClose            WeekNote = "close"
	NoteDeviated         WeekNote = "deviated"
)

// WeekFeedback returns the note for a recorded week. ok is false for weeks
// without an actual weight.
func WeekFeedback(w domain.WeekEntry, dir domain.Direction) (note WeekNote, ok bool) {
	if !w.Recorded() {
		return "", false
	}
	switch Classify(*w.ActualWeight, w.TargetWeight, dir) {
	case domain.WeekOnTrack:
		return NoteTargetMet, true
	case domain.WeekAhead:
		return NoteBetterThanTarget, true
	}
	if hundredths(math.Abs(*w.ActualWeight-w.TargetWeight)) > hundredths(DeviatedWeekKg) {
		return NoteDeviated, true
	}
	return NoteClose, true
}

// Message returns display text for the note.
func (n WeekNote) Message() string {
	switch n {
	case NoteTargetMet:
		return "You hit your target exactly."
	case NoteBetterThanTarget:
		return "Even better than your target!"
	case NoteDeviated:
		return "No problem, next week will be better. Keep going!"
	case NoteClose:
		return "Good progress, you're closing in on the target."
	}
	return ""
}

type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierRefocus   Tier = "refocus"
)

// MotivationTier buckets a motivation score.
func MotivationTier(score int) Tier {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 60:
		return TierGood
	case score >= 40:
		return TierFair
	default:
		return TierRefocus
	}
}
