package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byID(list []Achievement) map[string]Achievement {
	out := make(map[string]Achievement, len(list))
	for _, a := range list {
		out[a.ID] = a
	}
	return out
}

func TestAchievements_FreshProgram(t *testing.T) {
	p := newProgram(90, 80, 10)
	list := Achievements(p, recorded(t, p, nil))
	require.Len(t, list, 6)
	assert.Equal(t, 0, UnlockedCount(list))
}

func TestAchievements_PartialProgress(t *testing.T) {
	p := newProgram(90, 80, 10)
	got := byID(Achievements(p, recorded(t, p, map[int]float64{1: 89, 2: 88, 3: 87})))

	assert.True(t, got["first-week"].Unlocked)
	assert.True(t, got["quarter"].Unlocked)
	assert.Equal(t, 25.0, got["quarter"].Progress)
	assert.False(t, got["half"].Unlocked)
	assert.Equal(t, 30.0, got["half"].Progress)
	assert.False(t, got["five-streak"].Unlocked)
	assert.Equal(t, 3.0, got["five-streak"].Progress)
	assert.False(t, got["perfect"].Unlocked)
}

func TestAchievements_PerfectProgram(t *testing.T) {
	p := newProgram(90, 85, 4)
	// targets 88.8, 87.5, 86.3, 85.0
	got := byID(Achievements(p, recorded(t, p, map[int]float64{1: 88.8, 2: 87.5, 3: 86.3, 4: 85})))

	assert.True(t, got["perfect"].Unlocked)
	assert.True(t, got["three-quarter"].Unlocked)
	assert.False(t, got["five-streak"].Unlocked)
	assert.Equal(t, 5, UnlockedCount(Achievements(p, recorded(t, p, map[int]float64{1: 88.8, 2: 87.5, 3: 86.3, 4: 85}))))
}

func TestAchievements_NilProgram(t *testing.T) {
	assert.Nil(t, Achievements(nil, nil))
}
