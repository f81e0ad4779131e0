package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitos/internal/auth"
	"github.com/julianstephens/habitos/internal/logger"
	"github.com/julianstephens/habitos/internal/models"
	"github.com/julianstephens/habitos/internal/seed"
	"github.com/julianstephens/habitos/internal/tracker"
	"github.com/julianstephens/habitos/internal/tui/components/goals"
	"github.com/julianstephens/habitos/internal/tui/components/habits"
	"github.com/julianstephens/habitos/internal/tui/components/progress"
)

type SessionState int

const (
	StateLogin SessionState = iota
	StateBrowse
	StateAddHabit
	StateGoalWizard
	StateConfirmDelete
)

const eventBuffer = 64

// Options carries session settings shown on the Ajustes screen.
type Options struct {
	SkipLogin        bool
	Backend          string
	StrictDeletes    bool
	SingleActiveGoal bool
}

type deleteKind int

const (
	deleteHabit deleteKind = iota
	deleteGoal
)

type pendingDelete struct {
	kind     deleteKind
	id       string
	name     string
	cascaded int // goals that go with a habit
}

// eventMsg delivers a tracker event to Update.
type eventMsg tracker.Event

type Model struct {
	tracker       *tracker.Tracker
	data          *seed.Data
	gate          *auth.Gate
	opts          Options
	events        chan tracker.Event
	state         SessionState
	section       models.Section
	keys          KeyMap
	help          help.Model
	habitsModel   habits.Model
	goalsModel    goals.Model
	progressModel progress.Model
	form          *huh.Form
	loginForm     *LoginFormModel
	habitForm     *HabitFormModel
	goalForm      *GoalFormModel
	pending       *pendingDelete
	loginErr      string
	statusMsg     string
	errMsg        string
	quitting      bool
	width         int
	height        int
}

func NewModel(t *tracker.Tracker, data *seed.Data, gate *auth.Gate, opts Options) Model {
	events := make(chan tracker.Event, eventBuffer)
	t.Subscribe(func(ev tracker.Event) {
		select {
		case events <- ev:
		default:
			logger.Warn("TUI event dropped", "kind", ev.Kind)
		}
	})

	habitList := t.Habits()
	goalList := t.Goals()

	m := Model{
		tracker:       t,
		data:          data,
		gate:          gate,
		opts:          opts,
		events:        events,
		state:         StateBrowse,
		section:       models.SectionInicio,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		habitsModel:   habits.New(habitList, goalList, 0, 0),
		goalsModel:    goals.New(goalList, 0, 0),
		progressModel: progress.New(habitList, goalList, 0),
	}
	if !opts.SkipLogin {
		m.startLogin()
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case StateBrowse:
		if m.section == models.SectionAjustes {
			keys = append(keys, m.keys.Logout)
		}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(m.events)}
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}
	return tea.Batch(cmds...)
}

func waitForEvent(ch <-chan tracker.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-ch)
	}
}

func (m *Model) startLogin() {
	m.state = StateLogin
	m.loginForm = &LoginFormModel{}
	m.form = NewLoginForm(m.loginForm)
}

// login checks the credentials and opens the dashboard on success.
func (m *Model) login(username, password string) error {
	if err := m.gate.Check(username, password); err != nil {
		m.loginErr = err.Error()
		return err
	}
	m.loginErr = ""
	m.form = nil
	m.loginForm = nil
	m.state = StateBrowse
	m.section = models.SectionInicio
	return nil
}

// refresh reloads every component from the tracker.
func (m *Model) refresh() {
	habitList := m.tracker.Habits()
	goalList := m.tracker.Goals()
	m.habitsModel.SetHabits(habitList, goalList)
	m.goalsModel.SetGoals(goalList)
	m.progressModel.SetData(habitList, goalList)
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.habitsModel.SetSize(m.width-4, m.height-10)
	m.goalsModel.SetSize(m.width-4, m.height-16)
	m.progressModel.SetWidth(m.width)
}

func sectionIndex(s models.Section) int {
	if s == models.SectionPerfil {
		s = models.SectionUsuario
	}
	for i, ns := range models.NavSections {
		if ns == s {
			return i
		}
	}
	return 0
}

func (m *Model) moveSection(delta int) {
	n := len(models.NavSections)
	i := (sectionIndex(m.section) + delta + n) % n
	m.section = models.NavSections[i]
	m.statusMsg = ""
	m.errMsg = ""
}
