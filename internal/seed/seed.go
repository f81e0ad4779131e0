// Package seed provides the reference data a session starts from: the rank
// catalog, the demo user and credential pair, and the default habits and
// goals. The default set is embedded; a replacement file with the same
// schema can be supplied at startup.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitos/internal/errors"
	"github.com/julianstephens/habitos/internal/models"
)

//go:embed seed.yaml
var defaultSeedYAML []byte

// Data is the full reference data set.
type Data struct {
	Credentials models.Credentials  `yaml:"credentials"`
	User        models.User         `yaml:"user"`
	Ranks       []models.RankOption `yaml:"ranks"`
	Habits      []models.Habit      `yaml:"habits"`
	Goals       []models.Goal       `yaml:"goals"`
}

// Default returns the embedded reference data.
func Default() (*Data, error) {
	return Parse(defaultSeedYAML)
}

// MustDefault is Default for package-level initialization and tests.
func MustDefault() *Data {
	d, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded seed data is invalid: %v", err))
	}
	return d
}

// Load reads reference data from a YAML file.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates reference data. Unknown keys are rejected.
func Parse(raw []byte) (*Data, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var d Data
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the catalog and that the default goals reference known
// habits and ranks.
func (d *Data) Validate() error {
	var err error

	if len(d.Ranks) == 0 {
		err = multierr.Append(err, errors.Validation("ranks", "catalog cannot be empty"))
	}
	rankIDs := map[string]bool{}
	for _, r := range d.Ranks {
		if r.ID == "" || r.Name == "" {
			err = multierr.Append(err, errors.Validation("ranks", "id and name are required"))
		}
		if r.Days <= 0 {
			err = multierr.Append(err, errors.Validation("ranks", fmt.Sprintf("rank %q must require at least one day", r.ID)))
		}
		if rankIDs[r.ID] {
			err = multierr.Append(err, errors.Validation("ranks", fmt.Sprintf("duplicate rank id %q", r.ID)))
		}
		rankIDs[r.ID] = true
	}

	habitIDs := map[string]bool{}
	for _, h := range d.Habits {
		if h.ID == "" {
			err = multierr.Append(err, errors.Validation("habits", "id is required"))
		}
		if habitIDs[h.ID] {
			err = multierr.Append(err, errors.Validation("habits", fmt.Sprintf("duplicate habit id %q", h.ID)))
		}
		habitIDs[h.ID] = true
		err = multierr.Append(err, h.Validate())
	}

	goalIDs := map[string]bool{}
	for _, g := range d.Goals {
		if g.ID == "" {
			err = multierr.Append(err, errors.Validation("goals", "id is required"))
		}
		if goalIDs[g.ID] {
			err = multierr.Append(err, errors.Validation("goals", fmt.Sprintf("duplicate goal id %q", g.ID)))
		}
		goalIDs[g.ID] = true
		if !habitIDs[g.HabitID] {
			err = multierr.Append(err, errors.Validation("goals", fmt.Sprintf("goal %q references unknown habit %q", g.ID, g.HabitID)))
		}
		if !rankIDs[g.RankID] {
			err = multierr.Append(err, errors.Validation("goals", fmt.Sprintf("goal %q references unknown rank %q", g.ID, g.RankID)))
		}
		err = multierr.Append(err, g.Validate())
	}

	return err
}

// Catalog returns a copy of the rank catalog.
func (d *Data) Catalog() []models.RankOption {
	return slices.Clone(d.Ranks)
}
