package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitos/internal/errors"
	"github.com/julianstephens/habitos/internal/logger"
	"github.com/julianstephens/habitos/internal/tracker"
)

// Replay operations.
const (
	opCreateHabit  = "create_habit"
	opRenameHabit  = "rename_habit"
	opSetProgress  = "set_progress"
	opDeleteHabit  = "delete_habit"
	opCreateGoal   = "create_goal"
	opLogDay       = "log_day"
	opCompleteGoal = "complete_goal"
	opDeleteGoal   = "delete_goal"
)

var replayOps = map[string]bool{
	opCreateHabit:  true,
	opRenameHabit:  true,
	opSetProgress:  true,
	opDeleteHabit:  true,
	opCreateGoal:   true,
	opLogDay:       true,
	opCompleteGoal: true,
	opDeleteGoal:   true,
}

type ReplayCmd struct {
	File      string `arg:"" type:"existingfile" help:"YAML script of steps to apply."`
	KeepGoing bool   `help:"Continue after a failing step."`
}

type replayScript struct {
	Steps []replayStep `yaml:"steps"`
}

// replayStep is one intent. Habit and Goal accept either an id or a name
// given earlier with As.
type replayStep struct {
	Op         string `yaml:"op"`
	As         string `yaml:"as"`
	Habit      string `yaml:"habit"`
	Goal       string `yaml:"goal"`
	Rank       string `yaml:"rank"`
	Name       string `yaml:"name"`
	Frequency  string `yaml:"frequency"`
	Motivation string `yaml:"motivation"`
	Notes      string `yaml:"notes"`
	Progress   int    `yaml:"progress"`
}

func loadReplayScript(path string) (*replayScript, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay script: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var script replayScript
	if err := dec.Decode(&script); err != nil {
		return nil, fmt.Errorf("failed to parse replay script: %w", err)
	}

	if len(script.Steps) == 0 {
		return nil, errors.Validation("steps", "script has no steps")
	}
	for i, s := range script.Steps {
		if !replayOps[s.Op] {
			return nil, errors.Validation("op", fmt.Sprintf("step %d: unknown operation %q", i+1, s.Op))
		}
	}
	return &script, nil
}

func (c *ReplayCmd) Run(ctx *Context) error {
	script, err := loadReplayScript(c.File)
	if err != nil {
		return err
	}

	var events []tracker.Event
	ctx.Tracker.Subscribe(func(ev tracker.Event) {
		events = append(events, ev)
	})

	r := &replayer{tracker: ctx.Tracker, aliases: map[string]string{}}
	var failures error
	for i, step := range script.Steps {
		events = events[:0]
		summary, err := r.apply(step)
		if err != nil {
			ctx.printf("%d. %s: error: %v\n", i+1, step.Op, err)
			failures = multierr.Append(failures, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err))
			if !c.KeepGoing {
				break
			}
			continue
		}
		ctx.printf("%d. %s %s%s\n", i+1, step.Op, summary, formatEvents(events))
	}
	logger.Debug("Replay finished", "file", c.File, "steps", len(script.Steps), "failed", len(multierr.Errors(failures)))

	ctx.println()
	ctx.println("Estado final:")
	habits := ctx.Tracker.Habits()
	if len(habits) == 0 {
		ctx.println("No hay hábitos")
	} else {
		ctx.println("Hábitos:")
		for _, h := range habits {
			printHabit(ctx, h)
		}
	}
	if err := (&GoalListCmd{Status: "all"}).Run(ctx); err != nil {
		return err
	}
	printStats(ctx)

	return failures
}

type replayer struct {
	tracker *tracker.Tracker
	aliases map[string]string
}

func (r *replayer) resolve(ref string) string {
	if id, ok := r.aliases[ref]; ok {
		return id
	}
	return ref
}

func (r *replayer) remember(alias, id string) {
	if alias != "" {
		r.aliases[alias] = id
	}
}

func (r *replayer) apply(s replayStep) (string, error) {
	t := r.tracker
	switch s.Op {
	case opCreateHabit:
		h, err := t.CreateHabit(tracker.HabitInput{
			Name:       s.Name,
			Frequency:  s.Frequency,
			Motivation: s.Motivation,
			Notes:      s.Notes,
		})
		if err != nil {
			return "", err
		}
		r.remember(s.As, h.ID)
		return fmt.Sprintf("%q -> %s", h.Name, h.ID), nil

	case opRenameHabit:
		h, err := t.RenameHabit(r.resolve(s.Habit), s.Name)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s -> %q", h.ID, h.Name), nil

	case opSetProgress:
		h, err := t.SetHabitProgress(r.resolve(s.Habit), s.Progress)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s -> %d%%", h.ID, h.Progress), nil

	case opDeleteHabit:
		id := r.resolve(s.Habit)
		return id, t.DeleteHabit(id)

	case opCreateGoal:
		rank, err := t.Rank(s.Rank)
		if err != nil {
			return "", err
		}
		g, err := t.CreateGoal(r.resolve(s.Habit), rank)
		if err != nil {
			return "", err
		}
		r.remember(s.As, g.ID)
		return fmt.Sprintf("%q %s -> %s", g.HabitName, rank.Name, g.ID), nil

	case opLogDay:
		g, err := t.LogGoalDay(r.resolve(s.Goal))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s -> %s", g.ID, g.DaysLabel()), nil

	case opCompleteGoal:
		g, err := t.CompleteGoal(r.resolve(s.Goal))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s -> completada", g.ID), nil

	case opDeleteGoal:
		id := r.resolve(s.Goal)
		return id, t.DeleteGoal(id)
	}
	return "", errors.Validation("op", fmt.Sprintf("unknown operation %q", s.Op))
}

func formatEvents(events []tracker.Event) string {
	if len(events) == 0 {
		return " (sin cambios)"
	}
	parts := make([]string, len(events))
	for i, ev := range events {
		parts[i] = string(ev.Kind)
		if ev.Kind == tracker.HabitDeleted {
			parts[i] += fmt.Sprintf(" cascaded=%d", ev.Cascaded)
		}
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
