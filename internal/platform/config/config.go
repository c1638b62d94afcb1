package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "tomato/internal/platform/errors"
)

const (
	appName  = "tomato"
	fileName = "config.yaml"

	// EnvDataDir overrides the data directory when no flag is given.
	EnvDataDir = "TOMATO_DATA_DIR"
)

type Config struct {
	DataDir      string
	SessionsPath string
	DBPath       string
	LogPath      string

	WorkDuration      time.Duration
	ShortBreak        time.Duration
	LongBreak         time.Duration
	LongBreakInterval int

	Notify   bool
	LogLevel string
}

// fileConfig mirrors config.yaml. Pointer fields distinguish "unset" from zero.
type fileConfig struct {
	WorkMinutes       *int    `yaml:"work_minutes"`
	ShortBreakMinutes *int    `yaml:"short_break_minutes"`
	LongBreakMinutes  *int    `yaml:"long_break_minutes"`
	LongBreakInterval *int    `yaml:"long_break_interval"`
	Notify            *bool   `yaml:"notify"`
	LogLevel          *string `yaml:"log_level"`
}

func Defaults() Config {
	return Config{
		WorkDuration:      25 * time.Minute,
		ShortBreak:        5 * time.Minute,
		LongBreak:         15 * time.Minute,
		LongBreakInterval: 4,
		LogLevel:          "info",
	}
}

// New resolves the data directory, creates it, and overlays config.yaml from
// it when present. An empty dataDir falls back to the environment.
func New(dataDir string) (Config, error) {
	dir, err := ResolveDataDir(dataDir)
	if err != nil {
		return Config{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Config{}, fmt.Errorf("%w: create %s: %v", apperrors.ErrDataDir, dir, err)
	}

	cfg := Defaults()
	cfg.DataDir = dir
	cfg.SessionsPath = filepath.Join(dir, "sessions.json")
	cfg.DBPath = filepath.Join(dir, "tomato.db")
	cfg.LogPath = filepath.Join(dir, "tomato.log")

	if err := cfg.loadFile(filepath.Join(dir, fileName)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveDataDir picks, in order: the explicit path, $TOMATO_DATA_DIR,
// $XDG_DATA_HOME/tomato, ~/.local/share/tomato.
func ResolveDataDir(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir, nil
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDataDir, err)
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if fc.WorkMinutes != nil {
		c.WorkDuration = time.Duration(*fc.WorkMinutes) * time.Minute
	}
	if fc.ShortBreakMinutes != nil {
		c.ShortBreak = time.Duration(*fc.ShortBreakMinutes) * time.Minute
	}
	if fc.LongBreakMinutes != nil {
		c.LongBreak = time.Duration(*fc.LongBreakMinutes) * time.Minute
	}
	if fc.LongBreakInterval != nil {
		c.LongBreakInterval = *fc.LongBreakInterval
	}
	if fc.Notify != nil {
		c.Notify = *fc.Notify
	}
	if fc.LogLevel != nil {
		c.LogLevel = strings.ToLower(strings.TrimSpace(*fc.LogLevel))
	}
	return nil
}

func (c Config) Validate() error {
	if c.WorkDuration <= 0 {
		return fmt.Errorf("%w: work duration must be positive", apperrors.ErrInvalidInput)
	}
	if c.ShortBreak <= 0 || c.LongBreak <= 0 {
		return fmt.Errorf("%w: break durations must be positive", apperrors.ErrInvalidInput)
	}
	if c.LongBreakInterval < 1 {
		return fmt.Errorf("%w: long break interval must be at least 1", apperrors.ErrInvalidInput)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", apperrors.ErrInvalidInput, c.LogLevel)
	}
	return nil
}
