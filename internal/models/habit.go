package models

import (
	"strings"

	"go.uber.org/multierr"

	"github.com/julianstephens/habitos/internal/constants"
	"github.com/julianstephens/habitos/internal/errors"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Frequency  string `json:"frequency" yaml:"frequency"` // free text, e.g. "Diario"
	Motivation string `json:"motivation,omitempty" yaml:"motivation,omitempty"`
	Notes      string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Progress   int    `json:"progress" yaml:"progress"` // 0-100
}

// IsComplete reports whether the habit has reached full progress.
func (h Habit) IsComplete() bool {
	return h.Progress == constants.MaxProgress
}

// Validate checks required fields and the progress range. All failures are
// reported together.
func (h Habit) Validate() error {
	var err error
	if strings.TrimSpace(h.Name) == "" {
		err = multierr.Append(err, errors.Validation("name", "cannot be empty"))
	}
	if strings.TrimSpace(h.Frequency) == "" {
		err = multierr.Append(err, errors.Validation("frequency", "cannot be empty"))
	}
	err = multierr.Append(err, ValidateProgress(h.Progress))
	return err
}

// ValidateProgress checks that p is a percentage in [0, 100].
func ValidateProgress(p int) error {
	if p < 0 || p > constants.MaxProgress {
		return errors.Validation("progress", "must be between 0 and 100")
	}
	return nil
}
