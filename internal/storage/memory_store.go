package storage

import (
	"fmt"
	"slices"

	"github.com/julianstephens/habitos/internal/errors"
	"github.com/julianstephens/habitos/internal/models"
)

// MemoryStore keeps habits and goals in ordered slices. It does no locking
// of its own; the tracker serializes access.
type MemoryStore struct {
	habits []models.Habit
	goals  []models.Goal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	s.habits = []models.Habit{}
	s.goals = []models.Goal{}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) habitIndex(id string) int {
	return slices.IndexFunc(s.habits, func(h models.Habit) bool { return h.ID == id })
}

func (s *MemoryStore) goalIndex(id string) int {
	return slices.IndexFunc(s.goals, func(g models.Goal) bool { return g.ID == id })
}

func (s *MemoryStore) AddHabit(habit models.Habit) error {
	if s.habitIndex(habit.ID) >= 0 {
		return fmt.Errorf("habit %q already exists", habit.ID)
	}
	s.habits = append(s.habits, habit)
	return nil
}

func (s *MemoryStore) GetHabit(id string) (models.Habit, error) {
	i := s.habitIndex(id)
	if i < 0 {
		return models.Habit{}, errors.NotFound("habit", id)
	}
	return s.habits[i], nil
}

func (s *MemoryStore) GetAllHabits() ([]models.Habit, error) {
	return slices.Clone(s.habits), nil
}

func (s *MemoryStore) UpdateHabit(habit models.Habit) error {
	i := s.habitIndex(habit.ID)
	if i < 0 {
		return errors.NotFound("habit", habit.ID)
	}
	s.habits[i] = habit
	return nil
}

func (s *MemoryStore) DeleteHabit(id string) (int, error) {
	i := s.habitIndex(id)
	if i < 0 {
		return 0, errors.NotFound("habit", id)
	}

	// Both slices are rebuilt before either is swapped in.
	habits := slices.Delete(slices.Clone(s.habits), i, i+1)
	goals := slices.DeleteFunc(slices.Clone(s.goals), func(g models.Goal) bool {
		return g.HabitID == id
	})
	removed := len(s.goals) - len(goals)

	s.habits = habits
	s.goals = goals
	return removed, nil
}

func (s *MemoryStore) AddGoal(goal models.Goal) error {
	if s.goalIndex(goal.ID) >= 0 {
		return fmt.Errorf("goal %q already exists", goal.ID)
	}
	if s.habitIndex(goal.HabitID) < 0 {
		return errors.NotFound("habit", goal.HabitID)
	}
	s.goals = append(s.goals, goal)
	return nil
}

func (s *MemoryStore) GetGoal(id string) (models.Goal, error) {
	i := s.goalIndex(id)
	if i < 0 {
		return models.Goal{}, errors.NotFound("goal", id)
	}
	return s.goals[i], nil
}

func (s *MemoryStore) GetAllGoals() ([]models.Goal, error) {
	return slices.Clone(s.goals), nil
}

func (s *MemoryStore) UpdateGoal(goal models.Goal) error {
	i := s.goalIndex(goal.ID)
	if i < 0 {
		return errors.NotFound("goal", goal.ID)
	}
	s.goals[i] = goal
	return nil
}

func (s *MemoryStore) DeleteGoal(id string) error {
	i := s.goalIndex(id)
	if i < 0 {
		return errors.NotFound("goal", id)
	}
	s.goals = slices.Delete(s.goals, i, i+1)
	return nil
}
