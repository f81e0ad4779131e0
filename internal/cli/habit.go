package cli

import (
	"github.com/julianstephens/habitos/internal/models"
)

type HabitCmd struct {
	List HabitListCmd `cmd:"" help:"List habits." default:"1"`
}

type HabitListCmd struct {
	Completed bool `help:"Show only habits at 100%."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits := ctx.Tracker.Habits()
	if len(habits) == 0 {
		ctx.println("No hay hábitos")
		return nil
	}

	ctx.println("Hábitos:")
	for _, h := range habits {
		if c.Completed && !h.IsComplete() {
			continue
		}
		printHabit(ctx, h)
	}
	return nil
}

func printHabit(ctx *Context, h models.Habit) {
	ctx.printf("  [%s] %s - %d%% (%s)\n", h.ID, h.Name, h.Progress, h.Frequency)
	if h.Motivation != "" {
		ctx.printf("      Motivación: %s\n", h.Motivation)
	}
	if h.Notes != "" {
		ctx.printf("      Notas: %s\n", h.Notes)
	}
}
