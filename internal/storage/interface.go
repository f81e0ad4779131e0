package storage

import "github.com/julianstephens/habitos/internal/models"

// Provider is the backing collection for habits and goals. Implementations
// keep insertion order and return errors.NotFoundError on lookup misses.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error
	Name() string

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes the habit and every goal referencing it as one
	// atomic step and returns the number of goals removed with it.
	DeleteHabit(id string) (int, error)

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	GetAllGoals() ([]models.Goal, error)
	UpdateGoal(models.Goal) error
	DeleteGoal(id string) error
}
