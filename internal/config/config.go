package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Account describes one ledger account: a stable id, a credit limit
// reported alongside the balance, and the log file the account
// persists to (relative to the data dir; derived from the id when
// empty).
type Account struct {
	ID    int    `yaml:"id"`
	Limit int64  `yaml:"limit"`
	File  string `yaml:"file,omitempty"`
}

type Config struct {
	Home     string    `yaml:"home"`
	DataDir  string    `yaml:"data_dir"`
	LogDir   string    `yaml:"log_dir"`
	SlotSize int       `yaml:"slot_size"`
	Strict   bool      `yaml:"strict"`
	LogLevel string    `yaml:"log_level"`
	Accounts []Account `yaml:"accounts"`
}

// LogFile returns the account's log file name within the data dir.
func (a Account) LogFile() string {
	if a.File != "" {
		return a.File
	}
	return fmt.Sprintf("account-%d.plog", a.ID)
}

// Load resolves the application home (flag override, then PAGELOG_HOME,
// then ~/.local/share/pagelog), applies defaults and merges config.yaml
// on top if one exists.
func Load(homeOverride, configOverride string) (*Config, error) {
	home := homeOverride
	if home == "" {
		home = os.Getenv("PAGELOG_HOME")
	}

	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(userHome, ".local", "share", "pagelog")
	}

	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, err
	}

	cfg := &Config{
		Home:     home,
		DataDir:  filepath.Join(home, "data"),
		LogDir:   filepath.Join(home, "log"),
		SlotSize: 256,
		LogLevel: "info",
		Accounts: []Account{
			{ID: 1, Limit: 100_000},
			{ID: 2, Limit: 80_000},
			{ID: 3, Limit: 1_000_000},
			{ID: 4, Limit: 10_000_000},
			{ID: 5, Limit: 500_000},
		},
	}

	cfgPath := configOverride
	if cfgPath == "" {
		cfgPath = filepath.Join(home, "config.yaml")
	}

	if f, err := os.Open(cfgPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", cfgPath, err)
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindAccount looks an account definition up by id.
func (c *Config) FindAccount(id int) (Account, bool) {
	for _, a := range c.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}
