package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:     "8741",
				DBPath:   "./test.db",
				BaseURL:  "http://localhost:8741",
				LogLevel: "info",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:    "abc",
				DBPath:  "./test.db",
				BaseURL: "http://localhost:8741",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range low",
			config: Config{
				Port:    "0",
				DBPath:  "./test.db",
				BaseURL: "http://localhost:8741",
			},
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name: "invalid port - out of range high",
			config: Config{
				Port:    "70000",
				DBPath:  "./test.db",
				BaseURL: "http://localhost:8741",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "empty database path",
			config: Config{
				Port:    "8741",
				DBPath:  "",
				BaseURL: "http://localhost:8741",
			},
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name: "invalid base URL scheme",
			config: Config{
				Port:    "8741",
				DBPath:  "./test.db",
				BaseURL: "ftp://localhost",
			},
			wantErr:     true,
			errorString: "invalid base URL scheme 'ftp': must be 'http' or 'https'",
		},
		{
			name: "invalid log level",
			config: Config{
				Port:     "8741",
				DBPath:   "./test.db",
				BaseURL:  "http://localhost:8741",
				LogLevel: "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %q, want it to contain %q", err, tt.errorString)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate_CreatesDBDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := Config{
		Port:    "8741",
		DBPath:  filepath.Join(dir, "aarshjul.db"),
		BaseURL: "http://localhost:8741",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		got, err := cfg.SlogLevel()
		if err != nil {
			t.Errorf("SlogLevel(%q) unexpected error: %v", tt.level, err)
		}
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("AARSHJUL_DB_PATH", "")

	cfg := Load()

	if cfg.Port != "8741" {
		t.Errorf("default port = %s, want 8741", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:8741" {
		t.Errorf("default base URL = %s", cfg.BaseURL)
	}
	if cfg.DBPath == "" {
		t.Error("default DB path is empty")
	}
}
