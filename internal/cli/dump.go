package cli

import (
	"encoding/json"
	"fmt"
)

type DumpCmd struct {
	Habits *DumpHabitsCmd `cmd:"" help:"Dump habits as JSON."`
	Goals  *DumpGoalsCmd  `cmd:"" help:"Dump goals as JSON."`
	Config *DumpConfigCmd `cmd:"" help:"Dump the resolved configuration as JSON."`
}

type DumpHabitsCmd struct{}

func (cmd *DumpHabitsCmd) Run(ctx *Context) error {
	return dumpJSON(ctx, ctx.Tracker.Habits())
}

type DumpGoalsCmd struct{}

func (cmd *DumpGoalsCmd) Run(ctx *Context) error {
	return dumpJSON(ctx, ctx.Tracker.Goals())
}

type DumpConfigCmd struct{}

func (cmd *DumpConfigCmd) Run(ctx *Context) error {
	output := map[string]any{
		"config_path":        ctx.ConfigPath,
		"backend":            ctx.Config.Backend,
		"storage":            ctx.Store.Name(),
		"debug":              ctx.Config.Debug,
		"strict_deletes":     ctx.Config.StrictDeletes,
		"single_active_goal": ctx.Config.SingleActiveGoal,
		"seed_file":          ctx.Config.SeedFile,
		"log_dir":            ctx.Config.LogDir,
	}
	return dumpJSON(ctx, output)
}

func dumpJSON(ctx *Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.println(string(jsonBytes))
	return nil
}
