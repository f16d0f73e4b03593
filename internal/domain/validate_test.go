package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCode(t *testing.T, err error, code ValidationErrorCode) {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)
	assert.Equal(t, code, verr.Code)
}

func TestParseWeight(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"84", 84},
		{" 84.5 ", 84.5},
		{"84,5", 84.5},
		{"84.5kg", 84.5},
		{"84.5 KG", 84.5},
	}
	for _, tc := range cases {
		got, err := ParseWeight(tc.raw)
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestParseWeight_Rejects(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc", "NaN", "inf", "-Inf", "8 4",
		"1e2", "0x1p6", "+84", "-84", "84.", ".5", "84,5,1", "1_000"} {
		_, err := ParseWeight(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestValidateProgram_Valid(t *testing.T) {
	assert.NoError(t, ValidateProgram(90, 80, 10))
	assert.NoError(t, ValidateProgram(60, 70, 8))
	assert.NoError(t, ValidateProgram(30, 31.5, 1))
}

func TestValidateProgram_Errors(t *testing.T) {
	cases := []struct {
		name   string
		start  float64
		target float64
		weeks  int
		code   ValidationErrorCode
	}{
		{"start too low", 29.9, 40, 10, ErrCodeInvalidWeight},
		{"start too high", 300.1, 290, 10, ErrCodeInvalidWeight},
		{"target too low", 40, 29, 52, ErrCodeInvalidWeight},
		{"identical", 80, 80, 10, ErrCodeIdenticalGoal},
		{"weeks not offered", 90, 85, 3, ErrCodeInvalidDuration},
		{"weeks zero", 90, 85, 0, ErrCodeInvalidDuration},
		{"too fast", 100, 80, 10, ErrCodeUnrealisticProgram},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireCode(t, ValidateProgram(tc.start, tc.target, tc.weeks), tc.code)
		})
	}
}

func TestValidateProgram_RateBoundaryIsAllowed(t *testing.T) {
	// 15 kg over 10 weeks is exactly 1.5 kg/week.
	assert.NoError(t, ValidateProgram(95, 80, 10))
}

func TestParseProgramInput(t *testing.T) {
	start, target, weeks, err := ParseProgramInput("90", "80,5", " 10 ")
	require.NoError(t, err)
	assert.Equal(t, 90.0, start)
	assert.Equal(t, 80.5, target)
	assert.Equal(t, 10, weeks)
}

func TestParseProgramInput_Errors(t *testing.T) {
	_, _, _, err := ParseProgramInput("ninety", "80", "10")
	requireCode(t, err, ErrCodeInvalidWeight)

	_, _, _, err = ParseProgramInput("90", "", "10")
	requireCode(t, err, ErrCodeInvalidWeight)

	_, _, _, err = ParseProgramInput("90", "80", "ten")
	requireCode(t, err, ErrCodeInvalidDuration)

	_, _, _, err = ParseProgramInput("90", "90", "10")
	requireCode(t, err, ErrCodeIdenticalGoal)
}

func TestProgramDirection(t *testing.T) {
	loss := &Program{StartWeight: 90, TargetWeight: 80}
	gain := &Program{StartWeight: 60, TargetWeight: 70}
	assert.Equal(t, DirectionLoss, loss.Direction())
	assert.Equal(t, DirectionGain, gain.Direction())
	assert.Equal(t, 10.0, loss.TotalTargetDelta())
	assert.Equal(t, -1.0, loss.Direction().Sign())
}

func TestWeekStatusSuccessful(t *testing.T) {
	assert.True(t, WeekAhead.Successful())
	assert.True(t, WeekOnTrack.Successful())
	assert.False(t, WeekBehind.Successful())
	assert.False(t, WeekPending.Successful())
}

func TestCloneWeeks_NoAliasing(t *testing.T) {
	v := 84.0
	weeks := []WeekEntry{{Week: 1, ActualWeight: &v}}
	cp := CloneWeeks(weeks)
	*cp[0].ActualWeight = 99
	assert.Equal(t, 84.0, *weeks[0].ActualWeight)
}
