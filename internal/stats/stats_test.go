package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitos/internal/constants"
	"github.com/julianstephens/habitos/internal/models"
	"github.com/julianstephens/habitos/internal/seed"
)

func habits(progress ...int) []models.Habit {
	out := make([]models.Habit, len(progress))
	for i, p := range progress {
		out[i] = models.Habit{ID: string(rune('a' + i)), Name: "habit-" + string(rune('a'+i)), Frequency: "Diario", Progress: p}
	}
	return out
}

func completedGoal(rank string) models.Goal {
	return models.Goal{RankName: rank, TargetDays: 5, DaysCompleted: 5, IsCompleted: true}
}

func TestHabitsEmpty(t *testing.T) {
	assert.Equal(t, HabitStats{
		TotalHabits:     0,
		CompletedHabits: 0,
		AvgProgress:     0,
		BestHabitName:   "Ninguno aún",
	}, Habits(nil))
}

func TestHabitsAverageAndBest(t *testing.T) {
	hs := habits(80, 60, 90)
	s := Habits(hs)

	assert.Equal(t, 3, s.TotalHabits)
	assert.Equal(t, 0, s.CompletedHabits)
	assert.Equal(t, 77, s.AvgProgress)
	assert.Equal(t, hs[2].Name, s.BestHabitName)
}

func TestHabitsRounding(t *testing.T) {
	tests := []struct {
		progress []int
		want     int
	}{
		{[]int{0, 1}, 1},        // 0.5 rounds up
		{[]int{10, 11, 11}, 11}, // 10.67
		{[]int{33, 33, 34}, 33}, // 33.33
		{[]int{100}, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Habits(habits(tt.progress...)).AvgProgress, "progress %v", tt.progress)
	}
}

func TestHabitsBestTieGoesToFirst(t *testing.T) {
	hs := habits(50, 90, 90, 10)
	assert.Equal(t, hs[1].Name, Habits(hs).BestHabitName)

	allZero := habits(0, 0)
	assert.Equal(t, allZero[0].Name, Habits(allZero).BestHabitName)
}

func TestHabitsCompletedCount(t *testing.T) {
	s := Habits(habits(100, 99, 100, 0))
	assert.Equal(t, 2, s.CompletedHabits)
}

func TestGoalsEmpty(t *testing.T) {
	s := Goals(nil)
	assert.Equal(t, 0, s.TotalCompleted)
	assert.Equal(t, 0, s.TotalGoals)
	assert.Equal(t, constants.NoGoalsCompleted, s.SummaryText)
	assert.Empty(t, s.ByRank)
	assert.Zero(t, s.CompletionRatio())
}

func TestGoalsPluralSummary(t *testing.T) {
	s := Goals([]models.Goal{completedGoal("Súbdito"), completedGoal("Súbdito")})

	assert.Equal(t, map[string]int{"Súbdito": 2}, s.ByRank)
	assert.Equal(t, "2 metas Súbdito", s.SummaryText)
	assert.Equal(t, 2, s.TotalCompleted)
}

func TestGoalsMixedRanks(t *testing.T) {
	active := models.Goal{RankName: "Copa", TargetDays: 30}
	s := Goals([]models.Goal{
		completedGoal("Lobo"),
		active,
		completedGoal("Poro"),
		completedGoal("Lobo"),
	})

	assert.Equal(t, 3, s.TotalCompleted)
	assert.Equal(t, 4, s.TotalGoals)
	assert.Equal(t, map[string]int{"Lobo": 2, "Poro": 1}, s.ByRank)
	assert.NotContains(t, s.ByRank, "Copa", "only completed goals are counted")
	assert.Equal(t, "2 metas Lobo - 1 meta Poro", s.SummaryText)
	assert.Equal(t, []RankCount{{"Lobo", 2}, {"Poro", 1}}, s.ByRankOrdered())
	assert.InDelta(t, 0.75, s.CompletionRatio(), 1e-9)
}

func TestGoalsNoneCompleted(t *testing.T) {
	s := Goals([]models.Goal{{RankName: "Poro", TargetDays: 10}})
	assert.Equal(t, constants.NoGoalsCompleted, s.SummaryText)
	assert.Equal(t, 1, s.TotalGoals)
	assert.Zero(t, s.CompletionRatio())
}

func TestSeedStats(t *testing.T) {
	data := seed.MustDefault()

	hs := Habits(data.Habits)
	assert.Equal(t, 77, hs.AvgProgress)
	assert.Equal(t, "Beber agua", hs.BestHabitName)

	gs := Goals(data.Goals)
	assert.Equal(t, "1 meta Súbdito", gs.SummaryText)
	assert.InDelta(t, 0.5, gs.CompletionRatio(), 1e-9)
}

func TestActiveAndCompletedGoals(t *testing.T) {
	data := seed.MustDefault()

	active := ActiveGoals(data.Goals)
	require.Len(t, active, 1)
	assert.Equal(t, "Rocoso", active[0].RankName)

	done := CompletedGoals(data.Goals)
	require.Len(t, done, 1)
	assert.Equal(t, "Súbdito", done[0].RankName)

	assert.Empty(t, ActiveGoals(nil))
}
