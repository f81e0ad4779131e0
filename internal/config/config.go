// Package config loads habitos settings. Values are layered: built-in
// defaults, then the YAML config file, then a .env file and process
// environment, then command-line flags (applied by the caller).
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitos/internal/constants"
)

// Environment variable names.
const (
	EnvBackend          = "HABITOS_BACKEND"
	EnvDebug            = "HABITOS_DEBUG"
	EnvStrictDeletes    = "HABITOS_STRICT_DELETES"
	EnvSingleActiveGoal = "HABITOS_SINGLE_ACTIVE_GOAL"
	EnvSeedFile         = "HABITOS_SEED_FILE"
	EnvLogDir           = "HABITOS_LOG_DIR"
)

const defaultConfigYAML = `# habitos configuration
# Storage backend for the session: memory or sqlite (in-memory database).
backend: memory

# Reject deletes of unknown habit or goal ids instead of ignoring them.
strict_deletes: false

# Allow only one uncompleted goal per habit.
single_active_goal: false

# Replace the built-in habits, goals and rank catalog.
# seed_file: ~/.config/habitos/seed.yaml
`

// Config holds the resolved settings.
type Config struct {
	Backend          string `yaml:"backend"`
	Debug            bool   `yaml:"debug"`
	StrictDeletes    bool   `yaml:"strict_deletes"`
	SingleActiveGoal bool   `yaml:"single_active_goal"`
	SeedFile         string `yaml:"seed_file,omitempty"`
	LogDir           string `yaml:"log_dir,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend: constants.BackendMemory,
		LogDir:  filepath.Join(constants.DefaultConfigDir, "logs"),
	}
}

// Load resolves configuration from path, the .env file in the working
// directory and the environment. A missing config file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(ExpandHome(path))
		switch {
		case err == nil:
			if err := cfg.parse(raw); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		case stderrors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	cfg.SeedFile = ExpandHome(cfg.SeedFile)
	cfg.LogDir = ExpandHome(cfg.LogDir)
	return cfg, cfg.Validate()
}

func (c *Config) parse(raw []byte) error {
	var fileCfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&fileCfg); err != nil {
		// An empty or comment-only file decodes to io.EOF.
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse: %w", err)
	}

	if fileCfg.Backend != "" {
		c.Backend = fileCfg.Backend
	}
	if fileCfg.SeedFile != "" {
		c.SeedFile = fileCfg.SeedFile
	}
	if fileCfg.LogDir != "" {
		c.LogDir = fileCfg.LogDir
	}
	c.Debug = fileCfg.Debug
	c.StrictDeletes = fileCfg.StrictDeletes
	c.SingleActiveGoal = fileCfg.SingleActiveGoal
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Backend = v
	}
	if v, ok := lookup(EnvSeedFile); ok && v != "" {
		c.SeedFile = v
	}
	if v, ok := lookup(EnvLogDir); ok && v != "" {
		c.LogDir = v
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{EnvDebug, &c.Debug},
		{EnvStrictDeletes, &c.StrictDeletes},
		{EnvSingleActiveGoal, &c.SingleActiveGoal},
	}
	for _, b := range bools {
		v, ok := lookup(b.name)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", b.name, v, err)
		}
		*b.dst = parsed
	}
	return nil
}

// Validate checks the backend name.
func (c Config) Validate() error {
	switch c.Backend {
	case constants.BackendMemory, constants.BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, constants.BackendMemory, constants.BackendSQLite)
	}
}

// WriteDefault writes the commented default config to path unless a file
// already exists there.
func WriteDefault(path string) (bool, error) {
	path = ExpandHome(path)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
