package cli

import (
	"fmt"

	"github.com/julianstephens/habitos/internal/config"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if ctx.ConfigPath == "" {
		return fmt.Errorf("no config path given")
	}
	written, err := config.WriteDefault(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if !written {
		ctx.printf("Config already exists at: %s\n", ctx.ConfigPath)
		return nil
	}
	ctx.printf("Wrote default config to: %s\n", ctx.ConfigPath)
	return nil
}
