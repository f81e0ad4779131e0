package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitos/internal/tui"
)

type TuiCmd struct {
	SkipLogin bool `help:"Start on the dashboard without the login screen."`
}

func (c *TuiCmd) Run(ctx *Context) error {
	m := tui.NewModel(ctx.Tracker, ctx.Data, ctx.Gate, tui.Options{
		SkipLogin:        c.SkipLogin,
		Backend:          ctx.Store.Name(),
		StrictDeletes:    ctx.Config.StrictDeletes,
		SingleActiveGoal: ctx.Config.SingleActiveGoal,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
