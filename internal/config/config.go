package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "DAYCHECK_CONFIG"

type Config struct {
	// HTTP Server
	Port string `yaml:"port"`

	// Database
	DBPath string `yaml:"dbPath"`

	// Logging
	LogLevel string `yaml:"logLevel"`

	// Reminder
	Reminder ReminderConfig `yaml:"reminder"`
}

// ReminderConfig configures the daily checkup reminder.
type ReminderConfig struct {
	Enabled bool `yaml:"enabled"`
	Hour    int  `yaml:"hour"`
	Minute  int  `yaml:"minute"`
}

// Load builds the configuration from defaults, an optional YAML file
// named by DAYCHECK_CONFIG, and environment variable overrides, in that
// order.
func Load() *Config {
	cfg := &Config{
		Port:     "8082",
		DBPath:   "./data/daycheck.sqlite",
		LogLevel: "info",
		Reminder: ReminderConfig{Enabled: false, Hour: 20, Minute: 0},
	}

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "config: cannot read %s: %v (using defaults)\n", path, err)
		} else if err := yaml.Unmarshal(raw, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "config: cannot parse %s: %v (using defaults)\n", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	c.Port = getEnv("PORT", c.Port)
	c.DBPath = getEnv("DAYCHECK_DB_PATH", c.DBPath)
	c.LogLevel = getEnv("DAYCHECK_LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("DAYCHECK_REMINDER"); v != "" {
		c.Reminder.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	c.Reminder.Hour = getEnvInt("DAYCHECK_REMINDER_HOUR", c.Reminder.Hour)
	c.Reminder.Minute = getEnvInt("DAYCHECK_REMINDER_MINUTE", c.Reminder.Minute)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else {
		dir := filepath.Dir(c.DBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
				}
			}
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if c.Reminder.Hour < 0 || c.Reminder.Hour > 23 {
		errors = append(errors, fmt.Sprintf("invalid reminder hour %d: must be between 0 and 23", c.Reminder.Hour))
	}
	if c.Reminder.Minute < 0 || c.Reminder.Minute > 59 {
		errors = append(errors, fmt.Sprintf("invalid reminder minute %d: must be between 0 and 59", c.Reminder.Minute))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ReminderTime formats the configured reminder time for logs.
func (c *Config) ReminderTime() string {
	t := time.Date(0, 1, 1, c.Reminder.Hour, c.Reminder.Minute, 0, 0, time.UTC)
	return t.Format("15:04")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
