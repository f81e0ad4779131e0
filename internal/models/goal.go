package models

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/julianstephens/habitos/internal/constants"
	"github.com/julianstephens/habitos/internal/errors"
)

// Goal is a rank challenge attached to a habit. HabitName and the Rank*
// fields are snapshots taken when the goal is created and are never
// re-synced with the habit or the catalog.
type Goal struct {
	ID            string `json:"id" yaml:"id"`
	HabitID       string `json:"habit_id" yaml:"habit_id"`
	HabitName     string `json:"habit_name" yaml:"habit_name"`
	RankID        string `json:"rank_id" yaml:"rank_id"`
	RankName      string `json:"rank_name" yaml:"rank_name"`
	RankEmoji     string `json:"rank_emoji" yaml:"rank_emoji"`
	TargetDays    int    `json:"target_days" yaml:"target_days"`
	DaysCompleted int    `json:"days_completed" yaml:"days_completed"`
	IsCompleted   bool   `json:"is_completed" yaml:"is_completed"`
	Reward        string `json:"reward,omitempty" yaml:"reward,omitempty"`
}

// Progress returns the completion percentage derived from DaysCompleted and
// TargetDays, rounded to the nearest integer and clamped to [0, 100].
func (g Goal) Progress() int {
	if g.TargetDays <= 0 {
		return 0
	}
	p := (g.DaysCompleted*constants.MaxProgress*2 + g.TargetDays) / (g.TargetDays * 2)
	switch {
	case p < 0:
		return 0
	case p > constants.MaxProgress:
		return constants.MaxProgress
	}
	return p
}

// DaysLabel renders "done/target días".
func (g Goal) DaysLabel() string {
	return fmt.Sprintf("%d/%d días", g.DaysCompleted, g.TargetDays)
}

// Validate checks the referential fields and the day counters.
func (g Goal) Validate() error {
	var err error
	if g.HabitID == "" {
		err = multierr.Append(err, errors.Validation("habit_id", "cannot be empty"))
	}
	if g.RankID == "" {
		err = multierr.Append(err, errors.Validation("rank_id", "cannot be empty"))
	}
	if g.TargetDays <= 0 {
		err = multierr.Append(err, errors.Validation("target_days", "must be positive"))
	}
	if g.DaysCompleted < 0 || g.DaysCompleted > g.TargetDays {
		err = multierr.Append(err, errors.Validation("days_completed", "must be between 0 and target_days"))
	}
	return err
}
