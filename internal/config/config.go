// Package config handles the configuration directory and the task file path.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tasktrack/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "tasktrack"

	// TasksFile is the default task file name inside the config directory.
	TasksFile = "tasks.json"

	// EnvFile is the optional dotenv file inside the config directory.
	EnvFile = "config.env"

	// FileKey names the task file override in EnvFile.
	FileKey = "TASKTRACK_FILE"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// DataFile overrides the task file location when non-empty.
	DataFile string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives debug output. Nil means discard.
	Logger *logrus.Logger
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasktrack or $HOME/.config/tasktrack.
// A TASKTRACK_FILE entry in <dir>/config.env sets DataFile; the process
// environment is not modified.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	env, err := godotenv.Read(cfg.EnvPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("invalid %s: %w", cfg.EnvPath(), err)
	}
	if file := env[FileKey]; file != "" {
		cfg.DataFile = cfg.resolve(file)
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnvPath returns the path to the optional dotenv file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// TasksPath returns the path of the task file.
func (c *Config) TasksPath() string {
	if c.DataFile != "" {
		return c.DataFile
	}
	return filepath.Join(c.Dir, TasksFile)
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *logrus.Logger {
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
	return c.Logger
}

// resolve makes a path from config.env relative to the config directory.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}
