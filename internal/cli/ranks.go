package cli

type RanksCmd struct{}

func (c *RanksCmd) Run(ctx *Context) error {
	ctx.println("Rangos disponibles:")
	for _, r := range ctx.Tracker.Catalog() {
		ctx.printf("  %s (%s) - %d días\n", r.Label(), r.ID, r.Days)
	}
	return nil
}
