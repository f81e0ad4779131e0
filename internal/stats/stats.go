// Package stats computes the dashboard projections over habits and goals.
// Everything here is a pure function of its input; results are recomputed
// on every read.
package stats

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitos/internal/constants"
	"github.com/julianstephens/habitos/internal/models"
)

// HabitStats summarizes habit progress.
type HabitStats struct {
	TotalHabits     int
	CompletedHabits int
	AvgProgress     int
	BestHabitName   string
}

// Habits computes HabitStats. The best habit is the first one, in collection
// order, holding the maximum progress.
func Habits(habits []models.Habit) HabitStats {
	s := HabitStats{
		TotalHabits:   len(habits),
		BestHabitName: constants.NoBestHabit,
	}
	if len(habits) == 0 {
		return s
	}

	sum := 0
	best := habits[0]
	for _, h := range habits {
		sum += h.Progress
		if h.IsComplete() {
			s.CompletedHabits++
		}
		if h.Progress > best.Progress {
			best = h
		}
	}

	s.AvgProgress = roundDiv(sum, len(habits))
	s.BestHabitName = best.Name
	return s
}

// roundDiv divides and rounds half away from zero for non-negative inputs.
func roundDiv(num, den int) int {
	return (2*num + den) / (2 * den)
}

// RankCount is one entry of the completed-goals-by-rank breakdown.
type RankCount struct {
	RankName string
	Count    int
}

// GoalStats summarizes goal history.
type GoalStats struct {
	TotalCompleted int
	TotalGoals     int
	SummaryText    string
	ByRank         map[string]int

	order []RankCount
}

// Goals computes GoalStats. Only completed goals contribute to ByRank and
// the summary; ranks appear in the order they are first seen.
func Goals(goals []models.Goal) GoalStats {
	s := GoalStats{
		TotalGoals: len(goals),
		ByRank:     map[string]int{},
	}

	index := map[string]int{}
	for _, g := range goals {
		if !g.IsCompleted {
			continue
		}
		s.TotalCompleted++
		s.ByRank[g.RankName]++
		if i, ok := index[g.RankName]; ok {
			s.order[i].Count++
			continue
		}
		index[g.RankName] = len(s.order)
		s.order = append(s.order, RankCount{RankName: g.RankName, Count: 1})
	}

	s.SummaryText = summarize(s.order)
	return s
}

func summarize(counts []RankCount) string {
	if len(counts) == 0 {
		return constants.NoGoalsCompleted
	}
	parts := make([]string, len(counts))
	for i, rc := range counts {
		parts[i] = rc.String()
	}
	return strings.Join(parts, constants.RankSummarySep)
}

// String renders "N meta(s) Rank".
func (rc RankCount) String() string {
	suffix := ""
	if rc.Count > 1 {
		suffix = "s"
	}
	return fmt.Sprintf("%d meta%s %s", rc.Count, suffix, rc.RankName)
}

// ByRankOrdered returns the breakdown in first-seen order.
func (s GoalStats) ByRankOrdered() []RankCount {
	out := make([]RankCount, len(s.order))
	copy(out, s.order)
	return out
}

// CompletionRatio is TotalCompleted/TotalGoals, or 0 with no goals.
func (s GoalStats) CompletionRatio() float64 {
	if s.TotalGoals == 0 {
		return 0
	}
	return float64(s.TotalCompleted) / float64(s.TotalGoals)
}

// ActiveGoals filters the uncompleted goals, preserving order.
func ActiveGoals(goals []models.Goal) []models.Goal {
	return filterGoals(goals, false)
}

// CompletedGoals filters the completed goals, preserving order.
func CompletedGoals(goals []models.Goal) []models.Goal {
	return filterGoals(goals, true)
}

func filterGoals(goals []models.Goal, completed bool) []models.Goal {
	out := []models.Goal{}
	for _, g := range goals {
		if g.IsCompleted == completed {
			out = append(out, g)
		}
	}
	return out
}
