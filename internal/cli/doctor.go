package cli

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/julianstephens/habitos/internal/errors"
	"github.com/julianstephens/habitos/internal/storage/sqlite"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	checks := []struct {
		name string
		fn   func(*Context) error
	}{
		{"Configuration", checkConfig},
		{"Seed data", checkSeed},
		{"Storage reachable", checkStorage},
		{"Goal references", checkGoalReferences},
	}

	hasError := false
	for _, c := range checks {
		if err := c.fn(ctx); err != nil {
			ctx.printf("❌ %s: FAIL\n", c.name)
			for _, e := range multierr.Errors(err) {
				ctx.printf("   Error: %v\n", e)
			}
			hasError = true
			continue
		}
		ctx.printf("✓ %s: OK\n", c.name)
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkConfig(ctx *Context) error {
	return ctx.Config.Validate()
}

func checkSeed(ctx *Context) error {
	return ctx.Data.Validate()
}

func checkStorage(ctx *Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		_, err := ctx.Store.GetAllHabits()
		return err
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

// checkGoalReferences reports goals whose habit no longer exists.
func checkGoalReferences(ctx *Context) error {
	habitIDs := map[string]bool{}
	for _, h := range ctx.Tracker.Habits() {
		habitIDs[h.ID] = true
	}

	var err error
	for _, g := range ctx.Tracker.Goals() {
		if !habitIDs[g.HabitID] {
			err = multierr.Append(err, errors.NotFound("habit", g.HabitID))
		}
	}
	return err
}
