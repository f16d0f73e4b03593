package plan

import (
	"testing"

	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAssessEntry(t *testing.T) {
	week := domain.WeekEntry{Week: 5, TargetWeight: 85.0}
	cases := []struct {
		name     string
		raw      string
		previous float64
		level    FeedbackLevel
		code     FeedbackCode
	}{
		{"empty", "  ", 86, FeedbackNone, FeedbackEmpty},
		{"not a number", "abc", 86, FeedbackError, FeedbackNotANumber},
		{"out of range", "25", 86, FeedbackError, FeedbackOutOfRange},
		{"far from target", "89", 88.5, FeedbackWarning, FeedbackFarFromTarget},
		{"suspicious change", "85.2", 88.5, FeedbackWarning, FeedbackCheckValue},
		{"fast change", "85.2", 87, FeedbackWarning, FeedbackFastChange},
		{"on target", "85.2", 86, FeedbackSuccess, FeedbackOnTarget},
		{"better than plan", "84,2", 85.5, FeedbackSuccess, FeedbackBetterThanPlan},
		{"behind plan", "85.8 kg", 86, FeedbackWarning, FeedbackBehindPlan},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb := AssessEntry(tc.raw, week, tc.previous, domain.DirectionLoss)
			assert.Equal(t, tc.level, fb.Level)
			assert.Equal(t, tc.code, fb.Code)
			assert.Equal(t, tc.level == FeedbackError, fb.Blocking())
		})
	}
}

func TestAssessEntry_GainDirection(t *testing.T) {
	week := domain.WeekEntry{Week: 2, TargetWeight: 65.0}
	fb := AssessEntry("66", week, 65, domain.DirectionGain)
	assert.Equal(t, FeedbackBetterThanPlan, fb.Code)

	fb = AssessEntry("64", week, 63.5, domain.DirectionGain)
	assert.Equal(t, FeedbackBehindPlan, fb.Code)
}

func TestWeekFeedback(t *testing.T) {
	at := func(kg float64) domain.WeekEntry {
		return domain.WeekEntry{Week: 5, TargetWeight: 85.0, ActualWeight: &kg}
	}
	cases := []struct {
		actual float64
		want   WeekNote
	}{
		{85.3, NoteTargetMet},
		{84.0, NoteBetterThanTarget},
		{85.8, NoteClose},
		{86.0, NoteClose},
		{86.5, NoteDeviated},
	}
	for _, tc := range cases {
		note, ok := WeekFeedback(at(tc.actual), domain.DirectionLoss)
		assert.True(t, ok)
		assert.Equal(t, tc.want, note, "actual=%.1f", tc.actual)
		assert.NotEmpty(t, note.Message())
	}

	_, ok := WeekFeedback(domain.WeekEntry{Week: 1, TargetWeight: 89}, domain.DirectionLoss)
	assert.False(t, ok)
}

func TestMotivationTier(t *testing.T) {
	cases := map[int]Tier{
		100: TierExcellent,
		80:  TierExcellent,
		79:  TierGood,
		60:  TierGood,
		59:  TierFair,
		40:  TierFair,
		39:  TierRefocus,
		0:   TierRefocus,
	}
	for score, want := range cases {
		assert.Equal(t, want, MotivationTier(score), "score=%d", score)
	}
}
