package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitos/internal/constants"
	"github.com/julianstephens/habitos/internal/logger"
	"github.com/julianstephens/habitos/internal/models"
	"github.com/julianstephens/habitos/internal/tracker"
	"github.com/julianstephens/habitos/internal/tui/components/goals"
	"github.com/julianstephens/habitos/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case eventMsg:
		m.refresh()
		if tracker.Event(msg).Kind == tracker.GoalCreated && m.state == StateBrowse {
			m.section = models.SectionMetas
		}
		return m, waitForEvent(m.events)
	}

	switch m.state {
	case StateLogin:
		return m.updateLogin(msg)
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateGoalWizard:
		return m.updateGoalWizard(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if handled, cmd := m.handleComponentMsg(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.moveSection(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.moveSection(-1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Profile):
			m.section = models.SectionPerfil
			return m, nil
		case key.Matches(msg, m.keys.Logout) && m.section == models.SectionAjustes:
			logger.Info("Session closed")
			m.startLogin()
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	switch m.section {
	case models.SectionHabitos:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case models.SectionMetas:
		m.goalsModel, cmd = m.goalsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) filtering() bool {
	switch m.section {
	case models.SectionHabitos:
		return m.habitsModel.Filtering()
	case models.SectionMetas:
		return m.goalsModel.Filtering()
	}
	return false
}

// updateForm forwards msg to the active huh form.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	cmd := m.updateForm(msg)
	switch m.form.State {
	case huh.StateCompleted:
		if err := m.login(m.loginForm.Username, m.loginForm.Password); err != nil {
			m.loginForm = &LoginFormModel{Username: m.loginForm.Username}
			m.form = NewLoginForm(m.loginForm)
			return m, m.form.Init()
		}
		return m, nil
	case huh.StateAborted:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateBrowse
		return m, nil
	}

	cmd := m.updateForm(msg)
	switch m.form.State {
	case huh.StateCompleted:
		h, err := m.tracker.CreateHabit(tracker.HabitInput{
			Name:       m.habitForm.Name,
			Frequency:  m.habitForm.Frequency,
			Motivation: m.habitForm.Motivation,
			Notes:      m.habitForm.Notes,
		})
		if err != nil {
			// Stay in the form so the user can fix the input or cancel with ESC.
			m.errMsg = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.refresh()
		m.errMsg = ""
		m.statusMsg = fmt.Sprintf("Hábito creado: %s", h.Name)
		m.state = StateBrowse
		m.section = models.SectionHabitos
	case huh.StateAborted:
		m.state = StateBrowse
	}
	return m, cmd
}

func (m Model) updateGoalWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateBrowse
		return m, nil
	}

	cmd := m.updateForm(msg)
	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateBrowse
		if err := m.createGoal(m.goalForm.HabitID, m.goalForm.RankID); err != nil {
			m.errMsg = err.Error()
		}
	case huh.StateAborted:
		m.state = StateBrowse
	}
	return m, cmd
}

func (m *Model) createGoal(habitID, rankID string) error {
	rank, err := m.tracker.Rank(rankID)
	if err != nil {
		return err
	}
	g, err := m.tracker.CreateGoal(habitID, rank)
	if err != nil {
		return err
	}
	m.refresh()
	m.errMsg = ""
	m.statusMsg = fmt.Sprintf("Nueva meta: %s %s para %s", g.RankEmoji, g.RankName, g.HabitName)
	return nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msgKey, m.keys.Confirm):
		if m.pending != nil {
			var err error
			switch m.pending.kind {
			case deleteHabit:
				err = m.tracker.DeleteHabit(m.pending.id)
			case deleteGoal:
				err = m.tracker.DeleteGoal(m.pending.id)
			}
			if err != nil {
				m.errMsg = err.Error()
			} else {
				m.statusMsg = fmt.Sprintf("Eliminado: %s", m.pending.name)
			}
			m.refresh()
		}
		m.pending = nil
		m.state = StateBrowse
	case key.Matches(msgKey, m.keys.Cancel):
		m.pending = nil
		m.state = StateBrowse
	}
	return m, nil
}

// handleComponentMsg handles the action messages emitted by the section
// components.
func (m *Model) handleComponentMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return true, m.form.Init()

	case habits.DeleteHabitMsg:
		cascaded := 0
		for _, g := range m.tracker.Goals() {
			if g.HabitID == msg.ID {
				cascaded++
			}
		}
		m.pending = &pendingDelete{kind: deleteHabit, id: msg.ID, name: msg.Name, cascaded: cascaded}
		m.state = StateConfirmDelete
		return true, nil

	case habits.AdjustProgressMsg:
		h, err := m.tracker.Habit(msg.ID)
		if err == nil {
			_, err = m.tracker.SetHabitProgress(msg.ID, clampProgress(h.Progress+msg.Delta))
		}
		if err != nil {
			m.errMsg = err.Error()
		}
		m.refresh()
		return true, nil

	case habits.NewGoalMsg:
		return true, m.openGoalWizard(msg.HabitID)

	case goals.NewGoalMsg:
		return true, m.openGoalWizard("")

	case goals.LogDayMsg:
		g, err := m.tracker.LogGoalDay(msg.ID)
		if err != nil {
			m.errMsg = err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("%s: %s", g.HabitName, g.DaysLabel())
		}
		m.refresh()
		return true, nil

	case goals.CompleteGoalMsg:
		g, err := m.tracker.CompleteGoal(msg.ID)
		if err != nil {
			m.errMsg = err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("¡Meta completada! %s %s", g.RankEmoji, g.RankName)
		}
		m.refresh()
		return true, nil

	case goals.DeleteGoalMsg:
		m.pending = &pendingDelete{kind: deleteGoal, id: msg.ID, name: msg.Name}
		m.state = StateConfirmDelete
		return true, nil
	}
	return false, nil
}

// openGoalWizard starts the goal wizard, or sends the user to the habit
// list when there is nothing to challenge yet.
func (m *Model) openGoalWizard(habitID string) tea.Cmd {
	habitList := m.tracker.Habits()
	if len(habitList) == 0 {
		m.section = models.SectionHabitos
		m.statusMsg = "Crea un hábito primero"
		return nil
	}

	m.goalForm = &GoalFormModel{HabitID: habitID}
	m.form = NewGoalForm(m.goalForm, habitList, m.tracker.Catalog())
	m.state = StateGoalWizard
	return m.form.Init()
}

func clampProgress(p int) int {
	switch {
	case p < 0:
		return 0
	case p > constants.MaxProgress:
		return constants.MaxProgress
	}
	return p
}
