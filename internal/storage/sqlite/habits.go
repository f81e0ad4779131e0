package sqlite

import (
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/julianstephens/habitos/internal/errors"
	"github.com/julianstephens/habitos/internal/models"
)

const habitColumns = "id, name, frequency, motivation, notes, progress"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	err := row.Scan(&h.ID, &h.Name, &h.Frequency, &h.Motivation, &h.Notes, &h.Progress)
	return h, err
}

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, frequency, motivation, notes, progress)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Frequency, habit.Motivation, habit.Notes, habit.Progress)
	if err != nil {
		return fmt.Errorf("failed to insert habit %s: %w", habit.ID, err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = ?", id)
	h, err := scanHabit(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, errors.NotFound("habit", id)
	}
	if err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT " + habitColumns + " FROM habits ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	res, err := s.db.Exec(`
		UPDATE habits SET name = ?, frequency = ?, motivation = ?, notes = ?, progress = ?
		WHERE id = ?`,
		habit.Name, habit.Frequency, habit.Motivation, habit.Notes, habit.Progress, habit.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit %s: %w", habit.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("habit", habit.ID)
	}
	return nil
}

// DeleteHabit removes the habit's goals and then the habit inside one
// transaction.
func (s *Store) DeleteHabit(id string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT count(*) FROM habits WHERE id = ?", id).Scan(&exists); err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, errors.NotFound("habit", id)
	}

	res, err := tx.Exec("DELETE FROM goals WHERE habit_id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete goals for habit %s: %w", id, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec("DELETE FROM habits WHERE id = ?", id); err != nil {
		return 0, fmt.Errorf("failed to delete habit %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit habit delete: %w", err)
	}
	return int(removed), nil
}
