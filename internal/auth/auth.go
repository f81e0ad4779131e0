// Package auth implements the demo login gate. It compares against a single
// plaintext credential pair and is not a security boundary.
package auth

import (
	stderrors "errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/julianstephens/habitos/internal/logger"
	"github.com/julianstephens/habitos/internal/models"
)

// ErrInvalidCredentials is returned for any username/password mismatch.
var ErrInvalidCredentials = stderrors.New("Usuario o contraseña incorrectos.")

// Gate checks login attempts against the demo credentials.
type Gate struct {
	username string
	password string
	fold     cases.Caser
}

// NewGate builds a gate for creds. The username is matched case-insensitively.
func NewGate(creds models.Credentials) *Gate {
	fold := cases.Lower(language.Spanish)
	return &Gate{
		username: fold.String(creds.Username),
		password: creds.Password,
		fold:     fold,
	}
}

// Check returns nil when username and password match.
func (g *Gate) Check(username, password string) error {
	if g.fold.String(username) != g.username || password != g.password {
		logger.Info("Login rejected", "username", username)
		return ErrInvalidCredentials
	}
	logger.Info("Login accepted", "username", username)
	return nil
}
