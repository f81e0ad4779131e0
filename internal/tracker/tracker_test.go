package tracker

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitos/internal/constants"
	"github.com/julianstephens/habitos/internal/errors"
	"github.com/julianstephens/habitos/internal/models"
	"github.com/julianstephens/habitos/internal/seed"
	"github.com/julianstephens/habitos/internal/storage"
)

var rocoso = models.RankOption{ID: "rocoso", Name: "Rocoso", Days: 15, Emoji: "🪨"}

func newTestTracker(t *testing.T, backend string, opts ...Option) *Tracker {
	t.Helper()
	store, err := storage.New(backend)
	require.NoError(t, err)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return New(store, seed.MustDefault().Catalog(), opts...)
}

func forEachBackend(t *testing.T, fn func(t *testing.T, backend string)) {
	for _, backend := range []string{constants.BackendMemory, constants.BackendSQLite} {
		t.Run(backend, func(t *testing.T) { fn(t, backend) })
	}
}

func TestCreateHabit(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend string) {
		tr := newTestTracker(t, backend)

		h, err := tr.CreateHabit(HabitInput{Name: "  Meditar ", Frequency: "Diario", Motivation: "Calma"})
		require.NoError(t, err)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "Meditar", h.Name)
		assert.Equal(t, 0, h.Progress)

		got, err := tr.Habit(h.ID)
		require.NoError(t, err)
		assert.Equal(t, h, got)
	})
}

func TestCreateHabitValidation(t *testing.T) {
	tr := newTestTracker(t, constants.BackendMemory)

	_, err := tr.CreateHabit(HabitInput{Name: " ", Frequency: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "frequency")
	assert.Empty(t, tr.Habits())
}

func TestCreateHabitUniqueIDsAndOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend string) {
		tr := newTestTracker(t, backend)

		var names []string
		for i := range 20 {
			name := fmt.Sprintf("habit %02d", i)
			names = append(names, name)
			_, err := tr.CreateHabit(HabitInput{Name: name, Frequency: "Diario"})
			require.NoError(t, err)
		}

		habits := tr.Habits()
		require.Len(t, habits, 20)
		seen := map[string]bool{}
		for i, h := range habits {
			assert.False(t, seen[h.ID], "duplicate id %s", h.ID)
			seen[h.ID] = true
			assert.Equal(t, names[i], h.Name)
		}
	})
}

func TestIDAllocationSkipsCollisions(t *testing.T) {
	ids := []string{"1", "1", "", "2", "3"}
	next := 0
	gen := func() string {
		id := ids[next]
		next++
		return id
	}

	tr := newTestTracker(t, constants.BackendMemory, WithIDGenerator(gen))
	require.NoError(t, tr.Seed([]models.Habit{{ID: "1", Name: "Leer", Frequency: "Diario"}}, nil))

	h, err := tr.CreateHabit(HabitInput{Name: "Correr", Frequency: "Diario"})
	require.NoError(t, err)
	assert.Equal(t, "2", h.ID)

	g, err := tr.CreateGoal("1", rocoso)
	require.NoError(t, err)
	assert.Equal(t, "3", g.ID, "goal ids must differ from every habit id")
}

func TestCreateGoalSnapshots(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend string) {
		tr := newTestTracker(t, backend)
		h, err := tr.CreateHabit(HabitInput{Name: "Leer", Frequency: "Diario"})
		require.NoError(t, err)

		g, err := tr.CreateGoal(h.ID, rocoso)
		require.NoError(t, err)
		assert.Equal(t, h.ID, g.HabitID)
		assert.Equal(t, "Leer", g.HabitName)
		assert.Equal(t, "rocoso", g.RankID)
		assert.Equal(t, "Rocoso", g.RankName)
		assert.Equal(t, "🪨", g.RankEmoji)
		assert.Equal(t, rocoso.Days, g.TargetDays)
		assert.Equal(t, 0, g.DaysCompleted)
		assert.Equal(t, 0, g.Progress())
		assert.False(t, g.IsCompleted)
		assert.Equal(t, constants.PendingReward, g.Reward)
		assert.NotEqual(t, h.ID, g.ID)

		_, err = tr.RenameHabit(h.ID, "Leer 30 minutos")
		require.NoError(t, err)

		stored, err := tr.Goal(g.ID)
		require.NoError(t, err)
		assert.Equal(t, "Leer", stored.HabitName, "goal snapshot must not follow renames")
	})
}

func TestCreateGoalRejectsUnknownHabitAndRank(t *testing.T) {
	tr := newTestTracker(t, constants.BackendMemory)
	h, _ := tr.CreateHabit(HabitInput{Name: "Leer", Frequency: "Diario"})

	_, err := tr.CreateGoal("missing", rocoso)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	fake := models.RankOption{ID: "rocoso", Name: "Rocoso", Days: 1, Emoji: "🪨"}
	_, err = tr.CreateGoal(h.ID, fake)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	assert.Empty(t, tr.Goals())
}

func TestMultipleGoalsPerHabitAllowedByDefault(t *testing.T) {
	tr := newTestTracker(t, constants.BackendMemory)
	h, _ := tr.CreateHabit(HabitInput{Name: "Leer", Frequency: "Diario"})

	_, err := tr.CreateGoal(h.ID, rocoso)
	require.NoError(t, err)
	_, err = tr.CreateGoal(h.ID, rocoso)
	require.NoError(t, err)
	assert.Len(t, tr.Goals(), 2)
}

func TestSingleActiveGoal(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend string) {
		tr := newTestTracker(t, backend, WithSingleActiveGoal(true))
		h, _ := tr.CreateHabit(HabitInput{Name: "Leer", Frequency: "Diario"})

		first, err := tr.CreateGoal(h.ID, rocoso)
		require.NoError(t, err)

		_, err = tr.CreateGoal(h.ID, rocoso)
		assert.True(t, errors.Is(err, errors.ErrConflict))

		_, err = tr.CompleteGoal(first.ID)
		require.NoError(t, err)
		_, err = tr.CreateGoal(h.ID, rocoso)
		assert.NoError(t, err)
	})
}

func TestDeleteHabitCascades(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend string) {
		tr := newTestTracker(t, backend)
		a, _ := tr.CreateHabit(HabitInput{Name: "A", Frequency: "Diario"})
		b, _ := tr.CreateHabit(HabitInput{Name: "B", Frequency: "Diario"})
		for range 3 {
			_, err := tr.CreateGoal(a.ID, rocoso)
			require.NoError(t, err)
		}
		kept, err := tr.CreateGoal(b.ID, rocoso)
		require.NoError(t, err)

		var events []Event
		tr.Subscribe(func(ev Event) { events = append(events, ev) })

		require.NoError(t, tr.DeleteHabit(a.ID))

		habits := tr.Habits()
		require.Len(t, habits, 1)
		assert.Equal(t, b.ID, habits[0].ID)
		goals := tr.Goals()
		require.Len(t, goals, 1)
		assert.Equal(t, kept.ID, goals[0].ID)

		require.Len(t, events, 1)
		assert.Equal(t, HabitDeleted, events[0].Kind)
		assert.Equal(t, 3, events[0].Cascaded)
	})
}

func TestDeletesOfMissingIDs(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend string) {
		tr := newTestTracker(t, backend)
		h, _ := tr.CreateHabit(HabitInput{Name: "A", Frequency: "Diario"})
		tr.CreateGoal(h.ID, rocoso)
		habitsBefore, goalsBefore := tr.Habits(), tr.Goals()

		fired := 0
		tr.Subscribe(func(Event) { fired++ })

		assert.NoError(t, tr.DeleteHabit("nope"))
		assert.NoError(t, tr.DeleteGoal("nope"))
		assert.Equal(t, habitsBefore, tr.Habits())
		assert.Equal(t, goalsBefore, tr.Goals())
		assert.Zero(t, fired)
	})
}

func TestStrictDeletes(t *testing.T) {
	tr := newTestTracker(t, constants.BackendMemory, WithStrictDeletes(true))

	err := tr.DeleteHabit("nope")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	err = tr.DeleteGoal("nope")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDeleteGoal(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend string) {
		tr := newTestTracker(t, backend)
		h, _ := tr.CreateHabit(HabitInput{Name: "A", Frequency: "Diario"})
		g1, _ := tr.CreateGoal(h.ID, rocoso)
		g2, _ := tr.CreateGoal(h.ID, rocoso)

		require.NoError(t, tr.DeleteGoal(g1.ID))
		goals := tr.Goals()
		require.Len(t, goals, 1)
		assert.Equal(t, g2.ID, goals[0].ID)
		assert.Len(t, tr.Habits(), 1)
	})
}

func TestSetHabitProgress(t *testing.T) {
	tr := newTestTracker(t, constants.BackendSQLite)
	h, _ := tr.CreateHabit(HabitInput{Name: "A", Frequency: "Diario"})

	updated, err := tr.SetHabitProgress(h.ID, 100)
	require.NoError(t, err)
	assert.True(t, updated.IsComplete())

	for _, bad := range []int{-1, 101} {
		_, err := tr.SetHabitProgress(h.ID, bad)
		assert.True(t, errors.Is(err, errors.ErrValidation), "progress %d", bad)
	}

	_, err = tr.SetHabitProgress("nope", 10)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestRenameHabitRejectsEmpty(t *testing.T) {
	tr := newTestTracker(t, constants.BackendMemory)
	h, _ := tr.CreateHabit(HabitInput{Name: "A", Frequency: "Diario"})

	_, err := tr.RenameHabit(h.ID, "   ")
	assert.True(t, errors.Is(err, errors.ErrValidation))

	got, _ := tr.Habit(h.ID)
	assert.Equal(t, "A", got.Name)
}

func TestLogGoalDayAndComplete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend string) {
		tr := newTestTracker(t, backend)
		subdito, err := tr.Rank("subdito")
		require.NoError(t, err)

		h, _ := tr.CreateHabit(HabitInput{Name: "A", Frequency: "Diario"})
		g, _ := tr.CreateGoal(h.ID, subdito)

		for range subdito.Days + 2 {
			g, err = tr.LogGoalDay(g.ID)
			require.NoError(t, err)
		}
		assert.Equal(t, subdito.Days, g.DaysCompleted, "days never pass the target")
		assert.Equal(t, 100, g.Progress())
		assert.False(t, g.IsCompleted, "logging days never completes a goal")

		active, ok := tr.ActiveGoal(h.ID)
		require.True(t, ok)
		assert.Equal(t, g.ID, active.ID)

		g, err = tr.CompleteGoal(g.ID)
		require.NoError(t, err)
		assert.True(t, g.IsCompleted)

		_, ok = tr.ActiveGoal(h.ID)
		assert.False(t, ok)

		_, err = tr.LogGoalDay(g.ID)
		assert.True(t, errors.Is(err, errors.ErrConflict))
	})
}

func TestRankLookup(t *testing.T) {
	tr := newTestTracker(t, constants.BackendMemory)

	r, err := tr.Rank("copa")
	require.NoError(t, err)
	assert.Equal(t, 30, r.Days)

	_, err = tr.Rank("diamante")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	cat := tr.Catalog()
	cat[0].Days = 999
	r, _ = tr.Rank(cat[0].ID)
	assert.NotEqual(t, 999, r.Days)
}

func TestGoalCreatedEvent(t *testing.T) {
	tr := newTestTracker(t, constants.BackendMemory)
	h, _ := tr.CreateHabit(HabitInput{Name: "A", Frequency: "Diario"})

	var got []Event
	tr.Subscribe(func(ev Event) {
		// handlers may read back from the tracker
		_ = tr.Goals()
		got = append(got, ev)
	})

	g, err := tr.CreateGoal(h.ID, rocoso)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Event{Kind: GoalCreated, HabitID: h.ID, GoalID: g.ID}, got[0])
}

// Scenario from the reference data: two habits, a rocoso goal on the first,
// then the first habit is deleted.
func TestCascadeScenario(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend string) {
		tr := newTestTracker(t, backend)
		require.NoError(t, tr.Seed([]models.Habit{
			{ID: "1", Name: "Leer", Frequency: "Diario", Progress: 80},
			{ID: "2", Name: "Correr", Frequency: "Diario", Progress: 60},
		}, nil))

		g, err := tr.CreateGoal("1", rocoso)
		require.NoError(t, err)
		goals := tr.Goals()
		require.Len(t, goals, 1)
		assert.Equal(t, "1", g.HabitID)
		assert.Equal(t, "Leer", g.HabitName)
		assert.Equal(t, 15, g.TargetDays)
		assert.False(t, g.IsCompleted)

		require.NoError(t, tr.DeleteHabit("1"))
		habits := tr.Habits()
		require.Len(t, habits, 1)
		assert.Equal(t, "2", habits[0].ID)
		assert.Empty(t, tr.Goals())
	})
}

func TestSeedDefaultData(t *testing.T) {
	data := seed.MustDefault()
	tr := newTestTracker(t, constants.BackendSQLite)
	require.NoError(t, tr.Seed(data.Habits, data.Goals))

	assert.Equal(t, data.Habits, tr.Habits())
	assert.Equal(t, data.Goals, tr.Goals())
}

func TestConcurrentMutations(t *testing.T) {
	tr := newTestTracker(t, constants.BackendMemory)
	base, _ := tr.CreateHabit(HabitInput{Name: "base", Frequency: "Diario"})

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := tr.CreateHabit(HabitInput{Name: fmt.Sprintf("h%d", i), Frequency: "Diario"})
			if err != nil {
				t.Error(err)
				return
			}
			tr.CreateGoal(h.ID, rocoso)
			tr.CreateGoal(base.ID, rocoso)
			if i%2 == 0 {
				tr.DeleteHabit(h.ID)
			}
		}()
	}
	wg.Wait()

	habitIDs := map[string]bool{}
	for _, h := range tr.Habits() {
		habitIDs[h.ID] = true
	}
	assert.Len(t, habitIDs, 9)
	for _, g := range tr.Goals() {
		assert.True(t, habitIDs[g.HabitID], "goal %s references deleted habit %s", g.ID, g.HabitID)
	}
}
