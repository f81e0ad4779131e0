// Package progress renders the statistics views: the goal summary card and
// the per-habit progress overview.
package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitos/internal/models"
	"github.com/julianstephens/habitos/internal/stats"
)

const defaultBarWidth = 40

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	lowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

type Model struct {
	bar    progress.Model
	habits []models.Habit
	goals  []models.Goal
}

func New(habits []models.Habit, goals []models.Goal, width int) Model {
	m := Model{
		bar: progress.New(progress.WithDefaultGradient()),
	}
	m.SetData(habits, goals)
	m.SetWidth(width)
	return m
}

func (m *Model) SetData(habits []models.Habit, goals []models.Goal) {
	m.habits = habits
	m.goals = goals
}

func (m *Model) SetWidth(width int) {
	w := width - 30
	if w <= 0 || w > defaultBarWidth {
		w = defaultBarWidth
	}
	m.bar.Width = w
}

// HabitSummary is the "Progresos" view.
func (m Model) HabitSummary() string {
	s := stats.Habits(m.habits)

	avgStyle := lowStyle
	if s.AvgProgress >= 50 {
		avgStyle = goodStyle
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Resumen General"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Hábito más constante:"), s.BestHabitName)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Progreso Promedio:"), avgStyle.Render(fmt.Sprintf("%d%%", s.AvgProgress)))
	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Estadísticas en tiempo real"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Hábitos Totales:"), s.TotalHabits)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Al 100%:"), s.CompletedHabits)

	if len(m.habits) > 0 {
		b.WriteString("\n")
		for _, h := range m.habits {
			fmt.Fprintf(&b, "%-24s %s\n", truncate(h.Name, 24), m.bar.ViewAs(float64(h.Progress)/100))
		}
	}
	return b.String()
}

// GoalSummary is the card shown above the goal list.
func (m Model) GoalSummary() string {
	s := stats.Goals(m.goals)

	var b strings.Builder
	b.WriteString(headingStyle.Render("Resumen de Logros"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Tienes: %s\n", s.SummaryText)
	fmt.Fprintf(&b, "%s %d   %s %d\n",
		labelStyle.Render("Metas Totales:"), s.TotalGoals,
		labelStyle.Render("Completadas:"), s.TotalCompleted)
	b.WriteString(m.bar.ViewAs(s.CompletionRatio()))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
