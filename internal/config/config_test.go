package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func validTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DrawingsDirectory = t.TempDir()
	cfg.ExportDirectory = filepath.Join(cfg.DrawingsDirectory, "exports")
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeServer {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeServer)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.DefaultTolerance != DefaultTolerance {
		t.Errorf("DefaultTolerance = %q, want %q", cfg.DefaultTolerance, DefaultTolerance)
	}
	if !cfg.IncludePageRefs {
		t.Error("IncludePageRefs should default to true")
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("MaxFileSize = %d, want %d", cfg.MaxFileSize, DefaultMaxFileSize)
	}
	if cfg.DatabasePath == "" {
		t.Error("DatabasePath should be set by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "valid server config",
			modify: func(cfg *Config) {},
		},
		{
			name: "valid watch config",
			modify: func(cfg *Config) {
				cfg.Mode = ModeWatch
			},
		},
		{
			name: "invalid mode",
			modify: func(cfg *Config) {
				cfg.Mode = "batch"
			},
			wantErr: "mode must be",
		},
		{
			name: "port too low",
			modify: func(cfg *Config) {
				cfg.Port = 0
			},
			wantErr: "port must be",
		},
		{
			name: "port too high",
			modify: func(cfg *Config) {
				cfg.Port = 70000
			},
			wantErr: "port must be",
		},
		{
			name: "port ignored in watch mode",
			modify: func(cfg *Config) {
				cfg.Mode = ModeWatch
				cfg.Port = 0
			},
		},
		{
			name: "empty drawings directory",
			modify: func(cfg *Config) {
				cfg.DrawingsDirectory = ""
			},
			wantErr: "drawings directory",
		},
		{
			name: "empty export directory in watch mode",
			modify: func(cfg *Config) {
				cfg.Mode = ModeWatch
				cfg.ExportDirectory = ""
			},
			wantErr: "export directory",
		},
		{
			name: "empty export directory allowed in server mode",
			modify: func(cfg *Config) {
				cfg.ExportDirectory = ""
			},
		},
		{
			name: "zero max file size",
			modify: func(cfg *Config) {
				cfg.MaxFileSize = 0
			},
			wantErr: "file size",
		},
		{
			name: "empty default tolerance",
			modify: func(cfg *Config) {
				cfg.DefaultTolerance = ""
			},
			wantErr: "tolerance",
		},
		{
			name: "invalid environment",
			modify: func(cfg *Config) {
				cfg.Env = "staging"
			},
			wantErr: "invalid environment",
		},
		{
			name: "invalid log level",
			modify: func(cfg *Config) {
				cfg.LogLevel = "trace"
			},
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig(t)
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() returned unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() returned nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCreatesMissingDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := validTestConfig(t)
	cfg.Mode = ModeWatch
	cfg.DrawingsDirectory = filepath.Join(base, "drawings")
	cfg.ExportDirectory = filepath.Join(base, "exports")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestAddress(t *testing.T) {
	cfg := &Config{Host: "0.0.0.0", Port: 9090}
	if got := cfg.Address(); got != "0.0.0.0:9090" {
		t.Errorf("Address() = %q, want %q", got, "0.0.0.0:9090")
	}
}

func TestModeHelpers(t *testing.T) {
	cfg := &Config{Mode: ModeServer}
	if !cfg.IsServerMode() || cfg.IsWatchMode() {
		t.Error("server mode helpers wrong for mode=server")
	}

	cfg.Mode = ModeWatch
	if cfg.IsServerMode() || !cfg.IsWatchMode() {
		t.Error("mode helpers wrong for mode=watch")
	}
}

func TestHistoryEnabled(t *testing.T) {
	cfg := &Config{DatabasePath: "history.db"}
	if !cfg.HistoryEnabled() {
		t.Error("HistoryEnabled() = false with a database path set")
	}

	cfg.DatabasePath = ""
	if cfg.HistoryEnabled() {
		t.Error("HistoryEnabled() = true with no database path")
	}
}

func TestIsDebug(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	if !cfg.IsDebug() {
		t.Error("IsDebug() = false for loglevel=debug")
	}

	cfg.LogLevel = "info"
	if cfg.IsDebug() {
		t.Error("IsDebug() = true for loglevel=info")
	}
}
