package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitos/internal/config"
	"github.com/julianstephens/habitos/internal/constants"
	"github.com/julianstephens/habitos/internal/errors"
	"github.com/julianstephens/habitos/internal/models"
	"github.com/julianstephens/habitos/internal/seed"
	"github.com/julianstephens/habitos/internal/tracker"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func setupTestContext(t *testing.T, backend string) (*Context, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	cfg.Backend = backend

	var out bytes.Buffer
	ctx, err := NewContext(cfg, seed.MustDefault(), &out, tracker.WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := ctx.Close(); err != nil {
			t.Errorf("failed to close context: %v", err)
		}
	})
	return ctx, &out
}

func assertGolden(t *testing.T, name string, out *bytes.Buffer) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, out.Bytes())
}

func TestCommandOutput(t *testing.T) {
	tests := []struct {
		golden string
		cmd    interface{ Run(*Context) error }
	}{
		{"ranks", &RanksCmd{}},
		{"profile", &ProfileCmd{}},
		{"habit_list", &HabitListCmd{}},
		{"goal_list", &GoalListCmd{Status: "all"}},
		{"goal_list_completed", &GoalListCmd{Status: "completed"}},
		{"stats", &StatsCmd{}},
		{"doctor", &DoctorCmd{}},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			ctx, out := setupTestContext(t, constants.BackendMemory)
			require.NoError(t, tt.cmd.Run(ctx))
			assertGolden(t, tt.golden, out)
		})
	}
}

func TestCommandOutputSQLite(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendSQLite)
	require.NoError(t, (&HabitListCmd{}).Run(ctx))
	assertGolden(t, "habit_list", out)

	out.Reset()
	require.NoError(t, (&DoctorCmd{}).Run(ctx))
	assertGolden(t, "doctor", out)
}

func TestHabitListEmpty(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendMemory)
	for _, h := range ctx.Tracker.Habits() {
		require.NoError(t, ctx.Tracker.DeleteHabit(h.ID))
	}

	require.NoError(t, (&HabitListCmd{}).Run(ctx))
	assert.Equal(t, "No hay hábitos\n", out.String())

	out.Reset()
	require.NoError(t, (&GoalListCmd{Status: "all"}).Run(ctx))
	assert.Equal(t, "No hay metas\n", out.String())
}

func TestHabitListCompletedOnly(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendMemory)
	_, err := ctx.Tracker.SetHabitProgress("3", 100)
	require.NoError(t, err)

	require.NoError(t, (&HabitListCmd{Completed: true}).Run(ctx))
	assert.Contains(t, out.String(), "[3] Beber agua - 100%")
	assert.NotContains(t, out.String(), "Leer 20 minutos")
}

func TestReplayCascade(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendMemory)

	cmd := &ReplayCmd{File: filepath.Join("testdata", "replay", "cascade.yaml")}
	require.NoError(t, cmd.Run(ctx))
	assertGolden(t, "replay_cascade", out)
}

func TestReplayCascadeSQLite(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendSQLite)

	cmd := &ReplayCmd{File: filepath.Join("testdata", "replay", "cascade.yaml")}
	require.NoError(t, cmd.Run(ctx))
	assertGolden(t, "replay_cascade", out)
}

func TestReplayStopsAtFirstFailure(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendMemory)

	cmd := &ReplayCmd{File: filepath.Join("testdata", "replay", "unknown_habit.yaml")}
	err := cmd.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Contains(t, out.String(), "1. create_goal: error:")
	assert.NotContains(t, out.String(), "2. delete_habit")

	_, err = ctx.Tracker.Habit("2")
	assert.NoError(t, err, "steps after the failure must not run")
}

func TestReplayKeepGoing(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendMemory)

	cmd := &ReplayCmd{File: filepath.Join("testdata", "replay", "unknown_habit.yaml"), KeepGoing: true}
	err := cmd.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, out.String(), "2. delete_habit 2 [habit_deleted cascaded=1]")

	_, err = ctx.Tracker.Habit("2")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestReplayScriptValidation(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		script string
	}{
		{"empty", "steps: []\n"},
		{"unknown op", "steps:\n  - op: teleport\n"},
		{"unknown field", "steps:\n  - op: delete_goal\n    colour: red\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.script), 0o644))

			ctx, out := setupTestContext(t, constants.BackendMemory)
			assert.Error(t, (&ReplayCmd{File: path}).Run(ctx))
			assert.Empty(t, out.String(), "nothing runs when the script is invalid")
		})
	}
}

func TestStrictDeletesFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.StrictDeletes = true
	ctx, err := NewContext(cfg, seed.MustDefault(), &bytes.Buffer{})
	require.NoError(t, err)
	defer ctx.Close()

	assert.ErrorIs(t, ctx.Tracker.DeleteHabit("99"), errors.ErrNotFound)
}

func TestNewContextRejectsUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "postgres"
	_, err := NewContext(cfg, seed.MustDefault(), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestDumpHabits(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendMemory)
	require.NoError(t, (&DumpHabitsCmd{}).Run(ctx))

	var habits []models.Habit
	require.NoError(t, json.Unmarshal(out.Bytes(), &habits))
	require.Len(t, habits, 3)
	assert.Equal(t, "Leer 20 minutos", habits[0].Name)
	assert.Equal(t, 80, habits[0].Progress)
}

func TestDumpConfig(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendSQLite)
	require.NoError(t, (&DumpConfigCmd{}).Run(ctx))

	var dump map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &dump))
	assert.Equal(t, "sqlite", dump["backend"])
	assert.Equal(t, "sqlite", dump["storage"])
}

func TestInitCmd(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendMemory)
	ctx.ConfigPath = filepath.Join(t.TempDir(), "habitos", "config.yaml")

	require.NoError(t, (&InitCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Wrote default config to:")
	_, err := os.Stat(ctx.ConfigPath)
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, (&InitCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Config already exists at:")
}
