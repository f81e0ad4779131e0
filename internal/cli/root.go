package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habitos/internal/auth"
	"github.com/julianstephens/habitos/internal/config"
	"github.com/julianstephens/habitos/internal/logger"
	"github.com/julianstephens/habitos/internal/seed"
	"github.com/julianstephens/habitos/internal/storage"
	"github.com/julianstephens/habitos/internal/tracker"
)

// Context is shared by every command.
type Context struct {
	Config     config.Config
	ConfigPath string
	Data       *seed.Data
	Store      storage.Provider
	Tracker    *tracker.Tracker
	Gate       *auth.Gate
	Out        io.Writer
}

// NewContext builds a seeded session for cfg. Extra tracker options are
// applied after the ones derived from cfg.
func NewContext(cfg config.Config, data *seed.Data, out io.Writer, opts ...tracker.Option) (*Context, error) {
	if out == nil {
		out = os.Stdout
	}

	store, err := storage.New(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", cfg.Backend, err)
	}

	trackerOpts := append([]tracker.Option{
		tracker.WithStrictDeletes(cfg.StrictDeletes),
		tracker.WithSingleActiveGoal(cfg.SingleActiveGoal),
	}, opts...)
	t := tracker.New(store, data.Catalog(), trackerOpts...)
	if err := t.Seed(data.Habits, data.Goals); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Context{
		Config:  cfg,
		Data:    data,
		Store:   store,
		Tracker: t,
		Gate:    auth.NewGate(data.Credentials),
		Out:     out,
	}, nil
}

// Close releases the session's storage.
func (c *Context) Close() error {
	if err := c.Store.Close(); err != nil {
		logger.Warn("Failed to close storage", "backend", c.Store.Name(), "error", err)
		return err
	}
	return nil
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}
