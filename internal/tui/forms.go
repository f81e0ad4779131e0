package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitos/internal/models"
)

type LoginFormModel struct {
	Username string
	Password string
}

type HabitFormModel struct {
	Name       string
	Frequency  string
	Motivation string
	Notes      string
}

type GoalFormModel struct {
	HabitID string
	RankID  string
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s no puede estar vacío", field)
		}
		return nil
	}
}

// NewLoginForm creates the login form
func NewLoginForm(fm *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usuario").
				Value(&fm.Username),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewHabitForm creates the form for adding habits
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre").
				Placeholder("ej. Leer").
				Value(&fm.Name).
				Validate(required("el nombre")),
			huh.NewInput().
				Title("Frecuencia").
				Placeholder("ej. Diario").
				Value(&fm.Frequency).
				Validate(required("la frecuencia")),
			huh.NewInput().
				Title("Motivación personal").
				Value(&fm.Motivation),
			huh.NewText().
				Title("Notas adicionales").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewGoalForm creates the two-step goal wizard: pick a habit, then a rank.
func NewGoalForm(fm *GoalFormModel, habits []models.Habit, catalog []models.RankOption) *huh.Form {
	habitOpts := make([]huh.Option[string], len(habits))
	for i, h := range habits {
		habitOpts[i] = huh.NewOption(fmt.Sprintf("%s (%s, %d%%)", h.Name, h.Frequency, h.Progress), h.ID)
	}
	rankOpts := make([]huh.Option[string], len(catalog))
	for i, r := range catalog {
		rankOpts[i] = huh.NewOption(fmt.Sprintf("%s - %d días", r.Label(), r.Days), r.ID)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("1. Elige un Hábito para desafiar").
				Options(habitOpts...).
				Value(&fm.HabitID),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("2. Elige la intensidad de tu meta").
				Options(rankOpts...).
				Value(&fm.RankID),
		),
	).WithTheme(huh.ThemeDracula())
}
