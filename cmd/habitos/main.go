package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/julianstephens/habitos/internal/cli"
	"github.com/julianstephens/habitos/internal/config"
	"github.com/julianstephens/habitos/internal/constants"
	"github.com/julianstephens/habitos/internal/errors"
	"github.com/julianstephens/habitos/internal/logger"
	"github.com/julianstephens/habitos/internal/seed"
)

var CLI struct {
	Version          kong.VersionFlag
	Config           string `help:"Config file path." type:"string" default:"${config_path}"`
	Seed             string `help:"Replace the built-in habits, goals and rank catalog with a YAML file." type:"string"`
	Backend          string `help:"Storage backend for the session (memory or sqlite)."`
	Debug            bool   `help:"Enable debug logging to stderr."`
	StrictDeletes    bool   `help:"Fail when deleting an unknown habit or goal."`
	SingleActiveGoal bool   `help:"Allow only one uncompleted goal per habit."`

	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Init    cli.InitCmd    `cmd:"" help:"Write the default config file."`
	Ranks   cli.RanksCmd   `cmd:"" help:"List the goal rank catalog."`
	Profile cli.ProfileCmd `cmd:"" help:"Show the user profile."`
	Habit   cli.HabitCmd   `cmd:"" help:"Inspect habits."`
	Goal    cli.GoalCmd    `cmd:"" help:"Inspect goals."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show habit and goal statistics."`
	Replay  cli.ReplayCmd  `cmd:"" help:"Apply a script of habit and goal changes and print the result."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Dump    cli.DumpCmd    `cmd:"" help:"Dump session data as JSON for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with rank goals and progress statistics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Backend != "" {
		cfg.Backend = CLI.Backend
	}
	if CLI.Seed != "" {
		cfg.SeedFile = config.ExpandHome(CLI.Seed)
	}
	cfg.Debug = cfg.Debug || CLI.Debug
	cfg.StrictDeletes = cfg.StrictDeletes || CLI.StrictDeletes
	cfg.SingleActiveGoal = cfg.SingleActiveGoal || CLI.SingleActiveGoal
	if err := cfg.Validate(); err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, LogDir: cfg.LogDir}); err != nil {
		// Logging is best effort; carry on without a log file.
		logger.InitWriter(os.Stderr, log.WarnLevel)
		logger.Warn("Failed to initialize log file", "dir", cfg.LogDir, "error", err)
	}

	data, err := loadSeed(cfg.SeedFile)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx, err := cli.NewContext(cfg, data, os.Stdout)
	if err != nil {
		errors.Fatal(err)
	}
	appCtx.ConfigPath = config.ExpandHome(CLI.Config)

	err = ctx.Run(appCtx)
	_ = appCtx.Close()
	errors.Fatal(err)
}

func loadSeed(path string) (*seed.Data, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.Load(path)
}
