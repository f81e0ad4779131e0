package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitos/internal/models"
)

// ProgressStep is the amount one key press moves a habit's progress.
const ProgressStep = 10

type AddHabitMsg struct{}

type DeleteHabitMsg struct {
	ID   string
	Name string
}

type NewGoalMsg struct {
	HabitID string
}

type AdjustProgressMsg struct {
	ID    string
	Delta int
}

type Item struct {
	Habit      models.Habit
	ActiveGoal string // rank label of the habit's active goal, if any
}

func (i Item) Title() string {
	if i.Habit.IsComplete() {
		return "✓ " + i.Habit.Name
	}
	return "○ " + i.Habit.Name
}

func (i Item) Description() string {
	parts := []string{fmt.Sprintf("%d%%", i.Habit.Progress), i.Habit.Frequency}
	if i.Habit.Motivation != "" {
		parts = append(parts, i.Habit.Motivation)
	}
	if i.ActiveGoal != "" {
		parts = append(parts, "meta: "+i.ActiveGoal)
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add      key.Binding
	Delete   key.Binding
	NewGoal  key.Binding
	Increase key.Binding
	Decrease key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "nuevo hábito"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "eliminar"),
		),
		NewGoal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "nueva meta"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "progreso +10"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "progreso -10"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, goals []models.Goal, width, height int) Model {
	l := list.New(items(habits, goals), list.NewDefaultDelegate(), width, height)
	l.Title = "Hábitos"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.NewGoal}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.NewGoal, keys.Increase, keys.Decrease}
	}

	return Model{list: l, keys: keys}
}

func items(habits []models.Habit, goals []models.Goal) []list.Item {
	active := map[string]string{}
	for _, g := range goals {
		if _, seen := active[g.HabitID]; !seen && !g.IsCompleted {
			active[g.HabitID] = g.RankEmoji + " " + g.RankName
		}
	}

	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{Habit: h, ActiveGoal: active[h.ID]}
	}
	return out
}

func (m *Model) SetHabits(habits []models.Habit, goals []models.Goal) {
	m.list.SetItems(items(habits, goals))
}

// Selected returns the highlighted habit.
func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Habit, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: h.ID, Name: h.Name} }
			}
		case key.Matches(msg, m.keys.NewGoal):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return NewGoalMsg{HabitID: h.ID} }
			}
		case key.Matches(msg, m.keys.Increase):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return AdjustProgressMsg{ID: h.ID, Delta: ProgressStep} }
			}
		case key.Matches(msg, m.keys.Decrease):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return AdjustProgressMsg{ID: h.ID, Delta: -ProgressStep} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Aún no tienes hábitos.\n  Pulsa 'a' para crear uno."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
