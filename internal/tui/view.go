package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitos/internal/models"
	"github.com/julianstephens/habitos/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state == StateLogin {
		return m.viewLogin()
	}

	var content string
	switch m.state {
	case StateAddHabit:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			brandStyle.Render("Nuevo Hábito"),
			m.form.View(),
		))
	case StateGoalWizard:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.viewSection()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewTabs(),
		m.viewStatus(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewLogin() string {
	lines := []string{
		brandStyle.Render("HabitTracker"),
		"",
		m.form.View(),
	}
	if m.loginErr != "" {
		lines = append(lines, dangerStyle.Render("❌ "+m.loginErr))
	}
	creds := m.data.Credentials
	lines = append(lines, "", warningStyle.Render(fmt.Sprintf("Credenciales demo: %s / %s", creds.Username, creds.Password)))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		brandStyle.Render("HabitTracker"),
		inactiveTabStyle.Render("·"),
		m.section.Title(),
		inactiveTabStyle.Render("·"),
		m.data.User.Username,
	)
}

func (m Model) viewTabs() string {
	current := sectionIndex(m.section)
	var tabs []string
	for i, s := range models.NavSections {
		title := s.Title()
		if s == models.SectionUsuario {
			title = "Perfil"
		}
		if i == current {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.errMsg != "":
		return dangerStyle.Render(m.errMsg)
	case m.statusMsg != "":
		return statusStyle.Render(m.statusMsg)
	}
	return ""
}

func (m Model) viewSection() string {
	switch m.section {
	case models.SectionHabitos:
		return docStyle.Render(m.habitsModel.View())
	case models.SectionMetas:
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			cardStyle.Render(m.progressModel.GoalSummary()),
			m.goalsModel.View(),
		))
	case models.SectionProgresos:
		return docStyle.Render(m.progressModel.HabitSummary())
	case models.SectionUsuario, models.SectionPerfil:
		return m.viewProfile()
	case models.SectionAjustes:
		return m.viewSettings()
	default:
		return m.viewHome()
	}
}

func (m Model) viewHome() string {
	habitList := m.tracker.Habits()
	goalList := m.tracker.Goals()
	hs := stats.Habits(habitList)

	var b strings.Builder
	b.WriteString(brandStyle.Render("¡Bienvenido de nuevo!"))
	b.WriteString("\n")
	b.WriteString("¿Qué quieres lograr hoy? Define nuevos hábitos o alcanza metas legendarias.\n\n")
	fmt.Fprintf(&b, "Hábitos: %d   Metas activas: %d   Progreso promedio: %d%%\n",
		hs.TotalHabits, len(stats.ActiveGoals(goalList)), hs.AvgProgress)
	fmt.Fprintf(&b, "Mejor hábito: %s\n", hs.BestHabitName)
	return docStyle.Render(cardStyle.Render(b.String()))
}

func (m Model) viewProfile() string {
	u := m.data.User
	var b strings.Builder
	b.WriteString(brandStyle.Render(u.Username))
	b.WriteString("\n")
	b.WriteString(u.Email)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Avatar: %s\n", u.AvatarURL)
	fmt.Fprintf(&b, "Miembro desde: %s\n", u.MemberSince)
	return docStyle.Render(cardStyle.Render(b.String()))
}

func yesNo(v bool) string {
	if v {
		return "sí"
	}
	return "no"
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(brandStyle.Render("Configuración de la Aplicación"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Almacenamiento: %s\n", m.opts.Backend)
	fmt.Fprintf(&b, "Eliminaciones estrictas: %s\n", yesNo(m.opts.StrictDeletes))
	fmt.Fprintf(&b, "Una meta activa por hábito: %s\n", yesNo(m.opts.SingleActiveGoal))
	b.WriteString("\n[o] Cerrar sesión")
	return docStyle.Render(b.String())
}

func (m Model) viewConfirmDelete() string {
	if m.pending == nil {
		return ""
	}

	title := "Eliminar Hábito"
	if m.pending.kind == deleteGoal {
		title = "Eliminar Meta"
	}
	lines := []string{
		dangerStyle.Render(title),
		"",
		fmt.Sprintf("¿Estás seguro de que deseas eliminar %q? Esta acción no se puede deshacer.", m.pending.name),
	}
	if m.pending.cascaded > 0 {
		suffix := ""
		if m.pending.cascaded > 1 {
			suffix = "s"
		}
		lines = append(lines, warningStyle.Render(fmt.Sprintf("También se eliminará%s %d meta%s asociada%s.",
			pluralN(m.pending.cascaded), m.pending.cascaded, suffix, suffix)))
	}
	lines = append(lines, "", "[y] Sí, Eliminar", "[n] Cancelar")

	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

func pluralN(n int) string {
	if n > 1 {
		return "n"
	}
	return ""
}
