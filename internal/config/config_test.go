package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid defaults",
			config: Config{
				Port:     "8082",
				DBPath:   "./test.db",
				LogLevel: "info",
				Reminder: ReminderConfig{Hour: 20, Minute: 0},
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:     "abc",
				DBPath:   "./test.db",
				LogLevel: "info",
			},
			wantErr: true,
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:     "70000",
				DBPath:   "./test.db",
				LogLevel: "info",
			},
			wantErr: true,
		},
		{
			name: "empty database path",
			config: Config{
				Port:     "8082",
				DBPath:   "",
				LogLevel: "info",
			},
			wantErr: true,
		},
		{
			name: "bad log level",
			config: Config{
				Port:     "8082",
				DBPath:   "./test.db",
				LogLevel: "loud",
			},
			wantErr: true,
		},
		{
			name: "reminder hour out of range",
			config: Config{
				Port:     "8082",
				DBPath:   "./test.db",
				LogLevel: "info",
				Reminder: ReminderConfig{Hour: 24},
			},
			wantErr: true,
		},
		{
			name: "reminder minute out of range",
			config: Config{
				Port:     "8082",
				DBPath:   "./test.db",
				LogLevel: "info",
				Reminder: ReminderConfig{Hour: 8, Minute: 61},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Port != "8082" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DBPath != "./data/daycheck.sqlite" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Reminder.Enabled {
		t.Error("reminder should default to disabled")
	}
	if cfg.Reminder.Hour != 20 || cfg.Reminder.Minute != 0 {
		t.Errorf("reminder time = %d:%d", cfg.Reminder.Hour, cfg.Reminder.Minute)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DAYCHECK_DB_PATH", "/tmp/other.sqlite")
	t.Setenv("DAYCHECK_REMINDER", "true")
	t.Setenv("DAYCHECK_REMINDER_HOUR", "7")
	t.Setenv("DAYCHECK_REMINDER_MINUTE", "45")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DBPath != "/tmp/other.sqlite" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if !cfg.Reminder.Enabled || cfg.Reminder.Hour != 7 || cfg.Reminder.Minute != 45 {
		t.Errorf("reminder = %+v", cfg.Reminder)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "daycheck.yaml")
	raw := "port: \"9100\"\nlogLevel: debug\nreminder:\n  enabled: true\n  hour: 21\n  minute: 15\n"
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DAYCHECK_CONFIG", path)

	cfg := Load()
	if cfg.Port != "9100" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.Reminder.Enabled || cfg.Reminder.Hour != 21 || cfg.Reminder.Minute != 15 {
		t.Errorf("reminder = %+v", cfg.Reminder)
	}

	// Environment still wins over the file.
	t.Setenv("PORT", "9200")
	if cfg := Load(); cfg.Port != "9200" {
		t.Errorf("env override Port = %q", cfg.Port)
	}
}

func TestReminderTime(t *testing.T) {
	cfg := Config{Reminder: ReminderConfig{Hour: 7, Minute: 5}}
	if got := cfg.ReminderTime(); got != "07:05" {
		t.Fatalf("ReminderTime = %q", got)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DAYCHECK_DB_PATH", "DAYCHECK_LOG_LEVEL",
		"DAYCHECK_CONFIG", "DAYCHECK_REMINDER", "DAYCHECK_REMINDER_HOUR", "DAYCHECK_REMINDER_MINUTE"} {
		t.Setenv(key, "")
	}
}
