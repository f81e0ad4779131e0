package cli

type ProfileCmd struct{}

func (c *ProfileCmd) Run(ctx *Context) error {
	u := ctx.Data.User
	ctx.printf("Usuario: %s\n", u.Username)
	ctx.printf("Email: %s\n", u.Email)
	ctx.printf("Miembro desde: %s\n", u.MemberSince)
	ctx.printf("Avatar: %s\n", u.AvatarURL)
	return nil
}
