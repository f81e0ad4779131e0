package goals

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitos/internal/models"
	"github.com/julianstephens/habitos/internal/stats"
)

type NewGoalMsg struct{}

type LogDayMsg struct {
	ID string
}

type CompleteGoalMsg struct {
	ID string
}

type DeleteGoalMsg struct {
	ID   string
	Name string
}

type Item struct {
	Goal models.Goal
}

func (i Item) Title() string {
	prefix := "▶ "
	if i.Goal.IsCompleted {
		prefix = "🏅 "
	}
	return fmt.Sprintf("%s%s %s · %s", prefix, i.Goal.RankEmoji, i.Goal.RankName, i.Goal.HabitName)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %d%%", i.Goal.DaysLabel(), i.Goal.Progress())
	if i.Goal.Reward != "" {
		desc += " | Recompensa: " + i.Goal.Reward
	}
	if i.Goal.IsCompleted {
		desc += " | completada"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Goal.HabitName + " " + i.Goal.RankName }

type KeyMap struct {
	New      key.Binding
	LogDay   key.Binding
	Complete key.Binding
	Delete   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "nueva meta"),
		),
		LogDay: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "registrar día"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "completar"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "eliminar"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// New lists active goals first, then the completed history.
func New(goals []models.Goal, width, height int) Model {
	l := list.New(items(goals), list.NewDefaultDelegate(), width, height)
	l.Title = "Metas"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.New, keys.LogDay, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.New, keys.LogDay, keys.Complete, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(goals []models.Goal) []list.Item {
	ordered := append(stats.ActiveGoals(goals), stats.CompletedGoals(goals)...)
	out := make([]list.Item, len(ordered))
	for i, g := range ordered {
		out[i] = Item{Goal: g}
	}
	return out
}

func (m *Model) SetGoals(goals []models.Goal) {
	m.list.SetItems(items(goals))
}

// Selected returns the highlighted goal.
func (m Model) Selected() (models.Goal, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Goal, ok
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
		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg { return NewGoalMsg{} }
		case key.Matches(msg, m.keys.LogDay):
			if g, ok := m.Selected(); ok && !g.IsCompleted {
				return m, func() tea.Msg { return LogDayMsg{ID: g.ID} }
			}
		case key.Matches(msg, m.keys.Complete):
			if g, ok := m.Selected(); ok && !g.IsCompleted {
				return m, func() tea.Msg { return CompleteGoalMsg{ID: g.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if g, ok := m.Selected(); ok {
				name := fmt.Sprintf("%s %s", g.RankName, g.HabitName)
				return m, func() tea.Msg { return DeleteGoalMsg{ID: g.ID, Name: name} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tienes metas.\n  Pulsa 'n' para crear un desafío."
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
