// Package config loads filmdesk settings from a TOML file, a .env file and
// FILMDESK_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables overriding the file.
const (
	EnvDatabase  = "FILMDESK_DB"
	EnvExportDir = "FILMDESK_EXPORT_DIR"
	EnvLogLevel  = "FILMDESK_LOG_LEVEL"
)

// Valid option values.
var (
	Periods   = []string{"all", "today", "week", "month", "upcoming"}
	LogLevels = []string{"debug", "info", "warn", "error"}
	Themes    = []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}
)

// Config holds all filmdesk configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Schedule   ScheduleConfig   `toml:"schedule"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds storage and logging preferences.
type GeneralConfig struct {
	Database  string `toml:"database,omitempty"`
	ExportDir string `toml:"export_dir,omitempty"`
	LogLevel  string `toml:"log_level"`
}

// ScheduleConfig holds schedule view preferences.
type ScheduleConfig struct {
	DefaultPeriod string `toml:"default_period"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Database:  DefaultDatabasePath(),
			ExportDir: ".",
			LogLevel:  "info",
		},
		Schedule: ScheduleConfig{
			DefaultPeriod: "upcoming",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "filmdesk")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "filmdesk")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDatabasePath returns the XDG data location of the database.
func DefaultDatabasePath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "filmdesk", "filmdesk.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "filmdesk", "filmdesk.db")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies .env and environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	// A missing .env is normal.
	_ = godotenv.Load()
	applyEnv(&cfg)

	if cfg.General.Database == "" {
		cfg.General.Database = DefaultDatabasePath()
	}
	if cfg.General.ExportDir == "" {
		cfg.General.ExportDir = "."
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.General.Database = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		cfg.General.ExportDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.General.LogLevel = strings.ToLower(v)
	}
}

// Validate checks that enumerated options hold known values.
func (c Config) Validate() error {
	if !oneOf(c.General.LogLevel, LogLevels) {
		return fmt.Errorf("config: unknown log_level %q (want one of %s)", c.General.LogLevel, strings.Join(LogLevels, ", "))
	}
	if !oneOf(c.Schedule.DefaultPeriod, Periods) {
		return fmt.Errorf("config: unknown default_period %q (want one of %s)", c.Schedule.DefaultPeriod, strings.Join(Periods, ", "))
	}
	if !oneOf(c.Appearance.Theme, Themes) {
		return fmt.Errorf("config: unknown theme %q (want one of %s)", c.Appearance.Theme, strings.Join(Themes, ", "))
	}
	return nil
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
