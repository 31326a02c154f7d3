// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Default values.
const (
	DefaultTasksFile = "tasks.json"
	DefaultLogDir    = "~/.tasker"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultJournal   = true
)

// Default theme colors.
const (
	DefaultHighColor   = "#e74c3c"
	DefaultMediumColor = "#f39c12"
	DefaultLowColor    = "#2ecc71"
	DefaultDoneColor   = "#7f8c8d"
)

// Config holds the full configuration for tasker.
type Config struct {
	// Paths
	TasksFile string `toml:"tasks_file"`
	LogDir    string `toml:"log_dir"`

	// Activity journal under LogDir
	Journal bool `toml:"journal"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Presentation
	Theme ThemeConfig `toml:"theme"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// ThemeConfig holds hex colors used to render tasks.
type ThemeConfig struct {
	High   string `toml:"high"`
	Medium string `toml:"medium"`
	Low    string `toml:"low"`
	Done   string `toml:"done"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks values that cannot be repaired with defaults.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid log_level %q (expected debug|info|warn|error|fatal)", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q (expected text|json|logfmt)", c.LogFormat)
	}
	colors := []struct {
		name  string
		value string
	}{
		{"theme.high", c.Theme.High},
		{"theme.medium", c.Theme.Medium},
		{"theme.low", c.Theme.Low},
		{"theme.done", c.Theme.Done},
	}
	for _, color := range colors {
		if !hexColor.MatchString(color.value) {
			return fmt.Errorf("invalid %s %q (expected #rrggbb)", color.name, color.value)
		}
	}
	return nil
}
