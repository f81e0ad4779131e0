package sqlite

import (
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/julianstephens/habitos/internal/errors"
	"github.com/julianstephens/habitos/internal/models"
)

const goalColumns = "id, habit_id, habit_name, rank_id, rank_name, rank_emoji, target_days, days_completed, is_completed, reward"

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	var completed int
	err := row.Scan(&g.ID, &g.HabitID, &g.HabitName, &g.RankID, &g.RankName, &g.RankEmoji,
		&g.TargetDays, &g.DaysCompleted, &completed, &g.Reward)
	g.IsCompleted = completed != 0
	return g, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *Store) AddGoal(goal models.Goal) error {
	if _, err := s.GetHabit(goal.HabitID); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO goals (id, habit_id, habit_name, rank_id, rank_name, rank_emoji,
			target_days, days_completed, is_completed, reward)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.HabitID, goal.HabitName, goal.RankID, goal.RankName, goal.RankEmoji,
		goal.TargetDays, goal.DaysCompleted, boolToInt(goal.IsCompleted), goal.Reward)
	if err != nil {
		return fmt.Errorf("failed to insert goal %s: %w", goal.ID, err)
	}
	return nil
}

func (s *Store) GetGoal(id string) (models.Goal, error) {
	row := s.db.QueryRow("SELECT "+goalColumns+" FROM goals WHERE id = ?", id)
	g, err := scanGoal(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return models.Goal{}, errors.NotFound("goal", id)
	}
	if err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

func (s *Store) GetAllGoals() ([]models.Goal, error) {
	rows, err := s.db.Query("SELECT " + goalColumns + " FROM goals ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) UpdateGoal(goal models.Goal) error {
	res, err := s.db.Exec(`
		UPDATE goals SET days_completed = ?, is_completed = ?, reward = ?
		WHERE id = ?`,
		goal.DaysCompleted, boolToInt(goal.IsCompleted), goal.Reward, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal %s: %w", goal.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("goal", goal.ID)
	}
	return nil
}

func (s *Store) DeleteGoal(id string) error {
	res, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("goal", id)
	}
	return nil
}
