// Package tracker owns the session's habits and goals. Every mutation runs
// under a single mutex, so readers never observe a half-applied change and a
// habit is never visible without its goals being cascaded away with it.
package tracker

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/julianstephens/habitos/internal/constants"
	"github.com/julianstephens/habitos/internal/errors"
	"github.com/julianstephens/habitos/internal/logger"
	"github.com/julianstephens/habitos/internal/models"
	"github.com/julianstephens/habitos/internal/storage"
)

// HabitInput carries the user-supplied fields of a new habit.
type HabitInput struct {
	Name       string
	Frequency  string
	Motivation string
	Notes      string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithStrictDeletes makes deletes of unknown ids fail with a NotFoundError
// instead of being ignored.
func WithStrictDeletes(strict bool) Option {
	return func(t *Tracker) { t.strictDeletes = strict }
}

// WithSingleActiveGoal rejects a new goal for a habit that already has an
// uncompleted one.
func WithSingleActiveGoal(single bool) Option {
	return func(t *Tracker) { t.singleActiveGoal = single }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) { t.newID = gen }
}

// Tracker is the habit/goal state store.
type Tracker struct {
	mu       sync.Mutex
	store    storage.Provider
	catalog  []models.RankOption
	newID    func() string
	eventsMu sync.RWMutex
	handlers []func(Event)

	strictDeletes    bool
	singleActiveGoal bool
}

// New builds a tracker over an initialized provider. The rank catalog is
// copied; later changes to the caller's slice are not seen.
func New(store storage.Provider, catalog []models.RankOption, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		catalog: slices.Clone(catalog),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Seed loads existing habits and goals into the store in order. It is meant
// for session startup and emits no events.
func (t *Tracker) Seed(habits []models.Habit, goals []models.Goal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, h := range habits {
		if err := h.Validate(); err != nil {
			return fmt.Errorf("seed habit %s: %w", h.ID, err)
		}
		if err := t.store.AddHabit(h); err != nil {
			return fmt.Errorf("seed habit %s: %w", h.ID, err)
		}
	}
	for _, g := range goals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("seed goal %s: %w", g.ID, err)
		}
		if err := t.store.AddGoal(g); err != nil {
			return fmt.Errorf("seed goal %s: %w", g.ID, err)
		}
	}
	logger.Debug("Session seeded", "habits", len(habits), "goals", len(goals), "backend", t.store.Name())
	return nil
}

// Catalog returns a copy of the rank catalog.
func (t *Tracker) Catalog() []models.RankOption {
	return slices.Clone(t.catalog)
}

// Rank looks up a catalog entry by id.
func (t *Tracker) Rank(id string) (models.RankOption, error) {
	for _, r := range t.catalog {
		if r.ID == id {
			return r, nil
		}
	}
	return models.RankOption{}, errors.NotFound("rank", id)
}

// Habits returns a snapshot of the habit collection in insertion order.
func (t *Tracker) Habits() []models.Habit {
	t.mu.Lock()
	defer t.mu.Unlock()

	habits, err := t.store.GetAllHabits()
	if err != nil {
		logger.Error("Failed to read habits", "error", err)
		return []models.Habit{}
	}
	return habits
}

// Goals returns a snapshot of the goal collection in insertion order.
func (t *Tracker) Goals() []models.Goal {
	t.mu.Lock()
	defer t.mu.Unlock()

	goals, err := t.store.GetAllGoals()
	if err != nil {
		logger.Error("Failed to read goals", "error", err)
		return []models.Goal{}
	}
	return goals
}

// Habit returns one habit by id.
func (t *Tracker) Habit(id string) (models.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.GetHabit(id)
}

// Goal returns one goal by id.
func (t *Tracker) Goal(id string) (models.Goal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.GetGoal(id)
}

// CreateHabit appends a new habit with zero progress.
func (t *Tracker) CreateHabit(in HabitInput) (models.Habit, error) {
	habit := models.Habit{
		Name:       strings.TrimSpace(in.Name),
		Frequency:  strings.TrimSpace(in.Frequency),
		Motivation: strings.TrimSpace(in.Motivation),
		Notes:      strings.TrimSpace(in.Notes),
		Progress:   0,
	}
	if err := habit.Validate(); err != nil {
		return models.Habit{}, err
	}

	t.mu.Lock()
	id, err := t.allocateID()
	if err != nil {
		t.mu.Unlock()
		return models.Habit{}, err
	}
	habit.ID = id
	err = t.store.AddHabit(habit)
	t.mu.Unlock()
	if err != nil {
		return models.Habit{}, err
	}

	logger.Debug("Habit created", "id", habit.ID, "name", habit.Name)
	t.emit(Event{Kind: HabitCreated, HabitID: habit.ID})
	return habit, nil
}

// DeleteHabit removes a habit together with every goal that references it.
// Unknown ids are ignored unless strict deletes are enabled.
func (t *Tracker) DeleteHabit(id string) error {
	t.mu.Lock()
	removed, err := t.store.DeleteHabit(id)
	t.mu.Unlock()

	if errors.Is(err, errors.ErrNotFound) && !t.strictDeletes {
		logger.Debug("Delete of unknown habit ignored", "id", id)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Debug("Habit deleted", "id", id, "cascaded_goals", removed)
	t.emit(Event{Kind: HabitDeleted, HabitID: id, Cascaded: removed})
	return nil
}

// CreateGoal pairs a habit with a rank from the catalog. The habit name and
// the rank fields are copied onto the goal at this point.
func (t *Tracker) CreateGoal(habitID string, rank models.RankOption) (models.Goal, error) {
	if !slices.Contains(t.catalog, rank) {
		return models.Goal{}, errors.Validation("rank", fmt.Sprintf("%q is not in the rank catalog", rank.ID))
	}

	t.mu.Lock()
	goal, err := t.createGoalLocked(habitID, rank)
	t.mu.Unlock()
	if err != nil {
		return models.Goal{}, err
	}

	logger.Debug("Goal created", "id", goal.ID, "habit_id", habitID, "rank", rank.ID)
	t.emit(Event{Kind: GoalCreated, HabitID: habitID, GoalID: goal.ID})
	return goal, nil
}

func (t *Tracker) createGoalLocked(habitID string, rank models.RankOption) (models.Goal, error) {
	habit, err := t.store.GetHabit(habitID)
	if err != nil {
		return models.Goal{}, err
	}

	if t.singleActiveGoal {
		goals, err := t.store.GetAllGoals()
		if err != nil {
			return models.Goal{}, err
		}
		if active, ok := activeGoal(goals, habitID); ok {
			return models.Goal{}, &errors.ConflictError{
				Reason: fmt.Sprintf("habit %q already has an active goal (%s)", habit.Name, active.RankName),
			}
		}
	}

	id, err := t.allocateID()
	if err != nil {
		return models.Goal{}, err
	}

	goal := models.Goal{
		ID:            id,
		HabitID:       habit.ID,
		HabitName:     habit.Name,
		RankID:        rank.ID,
		RankName:      rank.Name,
		RankEmoji:     rank.Emoji,
		TargetDays:    rank.Days,
		DaysCompleted: 0,
		IsCompleted:   false,
		Reward:        constants.PendingReward,
	}
	if err := t.store.AddGoal(goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// DeleteGoal removes one goal. Unknown ids are ignored unless strict deletes
// are enabled.
func (t *Tracker) DeleteGoal(id string) error {
	t.mu.Lock()
	err := t.store.DeleteGoal(id)
	t.mu.Unlock()

	if errors.Is(err, errors.ErrNotFound) && !t.strictDeletes {
		logger.Debug("Delete of unknown goal ignored", "id", id)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Debug("Goal deleted", "id", id)
	t.emit(Event{Kind: GoalDeleted, GoalID: id})
	return nil
}

// RenameHabit changes a habit's display name. Goal snapshots keep the name
// they were created with.
func (t *Tracker) RenameHabit(id, name string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, errors.Validation("name", "cannot be empty")
	}
	return t.updateHabit(id, func(h *models.Habit) error {
		h.Name = name
		return nil
	})
}

// SetHabitProgress records a new progress percentage for a habit.
func (t *Tracker) SetHabitProgress(id string, progress int) (models.Habit, error) {
	if err := models.ValidateProgress(progress); err != nil {
		return models.Habit{}, err
	}
	return t.updateHabit(id, func(h *models.Habit) error {
		h.Progress = progress
		return nil
	})
}

func (t *Tracker) updateHabit(id string, mutate func(*models.Habit) error) (models.Habit, error) {
	t.mu.Lock()
	habit, err := t.store.GetHabit(id)
	if err == nil {
		err = multierr.Append(mutate(&habit), habit.Validate())
	}
	if err == nil {
		err = t.store.UpdateHabit(habit)
	}
	t.mu.Unlock()
	if err != nil {
		return models.Habit{}, err
	}

	logger.Debug("Habit updated", "id", id, "name", habit.Name, "progress", habit.Progress)
	t.emit(Event{Kind: HabitUpdated, HabitID: id})
	return habit, nil
}

// LogGoalDay counts one more completed day toward a goal, stopping at the
// target. It never marks the goal completed.
func (t *Tracker) LogGoalDay(id string) (models.Goal, error) {
	return t.updateGoal(id, func(g *models.Goal) error {
		if g.IsCompleted {
			return &errors.ConflictError{Reason: fmt.Sprintf("goal %q is already completed", g.ID)}
		}
		if g.DaysCompleted < g.TargetDays {
			g.DaysCompleted++
		}
		return nil
	})
}

// CompleteGoal marks a goal completed.
func (t *Tracker) CompleteGoal(id string) (models.Goal, error) {
	return t.updateGoal(id, func(g *models.Goal) error {
		g.IsCompleted = true
		return nil
	})
}

func (t *Tracker) updateGoal(id string, mutate func(*models.Goal) error) (models.Goal, error) {
	t.mu.Lock()
	goal, err := t.store.GetGoal(id)
	if err == nil {
		err = mutate(&goal)
	}
	if err == nil {
		err = goal.Validate()
	}
	if err == nil {
		err = t.store.UpdateGoal(goal)
	}
	t.mu.Unlock()
	if err != nil {
		return models.Goal{}, err
	}

	logger.Debug("Goal updated", "id", id, "days", goal.DaysCompleted, "completed", goal.IsCompleted)
	t.emit(Event{Kind: GoalUpdated, HabitID: goal.HabitID, GoalID: id})
	return goal, nil
}

// ActiveGoal returns the first uncompleted goal for a habit.
func (t *Tracker) ActiveGoal(habitID string) (models.Goal, bool) {
	return activeGoal(t.Goals(), habitID)
}

func activeGoal(goals []models.Goal, habitID string) (models.Goal, bool) {
	for _, g := range goals {
		if g.HabitID == habitID && !g.IsCompleted {
			return g, true
		}
	}
	return models.Goal{}, false
}

// allocateID returns an id used by no habit and no goal. Callers hold t.mu.
func (t *Tracker) allocateID() (string, error) {
	habits, err := t.store.GetAllHabits()
	if err != nil {
		return "", err
	}
	goals, err := t.store.GetAllGoals()
	if err != nil {
		return "", err
	}

	used := make(map[string]bool, len(habits)+len(goals))
	for _, h := range habits {
		used[h.ID] = true
	}
	for _, g := range goals {
		used[g.ID] = true
	}

	for range 8 {
		if id := t.newID(); id != "" && !used[id] {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to allocate a unique id")
}
