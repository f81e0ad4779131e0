package cli

import (
	"github.com/julianstephens/habitos/internal/stats"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	printStats(ctx)
	return nil
}

func printStats(ctx *Context) {
	hs := stats.Habits(ctx.Tracker.Habits())
	gs := stats.Goals(ctx.Tracker.Goals())

	ctx.println("Estadísticas de hábitos:")
	ctx.printf("  Total: %d\n", hs.TotalHabits)
	ctx.printf("  Completados: %d\n", hs.CompletedHabits)
	ctx.printf("  Progreso promedio: %d%%\n", hs.AvgProgress)
	ctx.printf("  Mejor hábito: %s\n", hs.BestHabitName)
	ctx.println("Estadísticas de metas:")
	ctx.printf("  Completadas: %d de %d\n", gs.TotalCompleted, gs.TotalGoals)
	ctx.printf("  Resumen: %s\n", gs.SummaryText)
	for _, rc := range gs.ByRankOrdered() {
		ctx.printf("    %s: %d\n", rc.RankName, rc.Count)
	}
}
