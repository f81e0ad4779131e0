package cli

import (
	"github.com/julianstephens/habitos/internal/models"
	"github.com/julianstephens/habitos/internal/stats"
)

type GoalCmd struct {
	List GoalListCmd `cmd:"" help:"List goals." default:"1"`
}

type GoalListCmd struct {
	Status string `help:"Filter by status." enum:"all,active,completed" default:"all"`
}

func (c *GoalListCmd) Run(ctx *Context) error {
	goals := ctx.Tracker.Goals()
	if len(goals) == 0 {
		ctx.println("No hay metas")
		return nil
	}

	if c.Status != "completed" {
		printGoalGroup(ctx, "Metas activas:", stats.ActiveGoals(goals))
	}
	if c.Status != "active" {
		printGoalGroup(ctx, "Metas completadas:", stats.CompletedGoals(goals))
	}
	return nil
}

func printGoalGroup(ctx *Context, title string, goals []models.Goal) {
	ctx.println(title)
	if len(goals) == 0 {
		ctx.println("  (ninguna)")
		return
	}
	for _, g := range goals {
		printGoal(ctx, g)
	}
}

func printGoal(ctx *Context, g models.Goal) {
	ctx.printf("  [%s] %s %s - %s - %s (%d%%)\n",
		g.ID, g.RankEmoji, g.RankName, g.HabitName, g.DaysLabel(), g.Progress())
	if g.Reward != "" {
		ctx.printf("      Recompensa: %s\n", g.Reward)
	}
}
