package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "cashbuddy.yaml"

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config represents the top-level cashbuddy.yaml configuration.
type Config struct {
	Data     DataConfig   `yaml:"data"`
	Budget   BudgetConfig `yaml:"budget"`
	LogLevel string       `yaml:"log_level"`
	Git      GitConfig    `yaml:"git"`
}

// DataConfig says where and how expenses are persisted.
type DataConfig struct {
	Dir     string `yaml:"dir"`     // relative paths resolve against the config file
	Backend string `yaml:"backend"` // "csv" or "sqlite"
}

// BudgetConfig controls budget alerts.
type BudgetConfig struct {
	AlertThreshold decimal.Decimal `yaml:"alert_threshold"`
}

// GitConfig controls committing the data directory after each change.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a cashbuddy.yaml file from disk. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:     "data",
			Backend: BackendCSV,
		},
		Budget: BudgetConfig{
			AlertThreshold: decimal.NewFromInt(10),
		},
		LogLevel: "warn",
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "CashBuddy",
			AuthorEmail: "cashbuddy@localhost",
		},
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Data.Backend {
	case BackendCSV, BackendSQLite:
	default:
		problems = append(problems, fmt.Sprintf("unknown data backend %q: must be %q or %q", c.Data.Backend, BackendCSV, BackendSQLite))
	}
	if strings.TrimSpace(c.Data.Dir) == "" {
		problems = append(problems, "data dir must not be empty")
	}
	if c.Budget.AlertThreshold.IsNegative() {
		problems = append(problems, fmt.Sprintf("alert threshold %s must not be negative", c.Budget.AlertThreshold))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DataDir resolves the data directory against the directory holding the
// config file.
func (c *Config) DataDir(configPath string) string {
	if filepath.IsAbs(c.Data.Dir) {
		return c.Data.Dir
	}
	return filepath.Join(filepath.Dir(configPath), c.Data.Dir)
}
