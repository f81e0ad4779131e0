package storage

import (
	"fmt"

	"github.com/julianstephens/habitos/internal/constants"
	"github.com/julianstephens/habitos/internal/storage/sqlite"
)

// New returns an uninitialized provider for the named backend.
func New(backend string) (Provider, error) {
	switch backend {
	case "", constants.BackendMemory:
		return NewMemoryStore(), nil
	case constants.BackendSQLite:
		return sqlite.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %q or %q)",
			backend, constants.BackendMemory, constants.BackendSQLite)
	}
}
