package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store is an in-memory SQLite database. The database lives only as long as
// the Store is open; nothing is written to disk.
type Store struct {
	name string
	db   *sql.DB
}

func NewStore() *Store {
	return &Store{
		name: "habitos-" + uuid.NewString(),
	}
}

func (s *Store) dsn() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", s.name)
}

func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps the in-memory database alive and makes every
	// statement observe the same state.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) Name() string { return "sqlite" }

// GetDB returns the underlying database connection.
// Returns nil until Init has been called.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
