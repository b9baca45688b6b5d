package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.BaseURL != "http://localhost:8080" {
		t.Errorf("expected base_url http://localhost:8080, got %s", cfg.Backend.BaseURL)
	}
	if len(cfg.Grid.Days) != 5 {
		t.Errorf("expected 5 grid days, got %d", len(cfg.Grid.Days))
	}
	if cfg.Grid.FirstHour != 7 || cfg.Grid.LastHour != 14 {
		t.Errorf("expected hours 7..14, got %d..%d", cfg.Grid.FirstHour, cfg.Grid.LastHour)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("expected provider ollama, got %s", cfg.LLM.Provider)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Grid.FirstHour != 7 {
		t.Errorf("expected default first_hour, got %d", cfg.Grid.FirstHour)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[backend]
base_url = "http://schedule.local:9000"
timeout = "3s"

[grid]
days = [1, 2, 3]
first_hour = 8
last_hour = 16

[cache]
enabled = true
db_path = "/tmp/horario-test.db"

[llm]
provider = "lmstudio"
model = "qwen"
base_url = "http://localhost:1234"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend.BaseURL != "http://schedule.local:9000" {
		t.Errorf("expected base_url from file, got %s", cfg.Backend.BaseURL)
	}
	timeout, err := cfg.BackendTimeout()
	if err != nil || timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v (%v)", timeout, err)
	}
	if len(cfg.Grid.Days) != 3 {
		t.Errorf("expected 3 days, got %d", len(cfg.Grid.Days))
	}
	w := cfg.Window()
	if w.FirstHour != 8 || w.LastHour != 16 || len(w.Days) != 3 {
		t.Errorf("unexpected window %+v", w)
	}
	if cfg.Cache.DBPath != "/tmp/horario-test.db" {
		t.Errorf("expected db_path /tmp/horario-test.db, got %s", cfg.Cache.DBPath)
	}
	if cfg.LLM.Provider != "lmstudio" || cfg.LLM.Model != "qwen" {
		t.Errorf("unexpected llm config %+v", cfg.LLM)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[backend]
base_url = "http://from-file:8080"

[grid]
first_hour = 8
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("HORARIO_BACKEND_URL", "http://from-env:8080")
	t.Setenv("HORARIO_DAYS", "1, 3,5")
	t.Setenv("HORARIO_LAST_HOUR", "18")
	t.Setenv("HORARIO_CACHE_ENABLED", "false")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend.BaseURL != "http://from-env:8080" {
		t.Errorf("expected env base_url, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Grid.FirstHour != 8 {
		t.Errorf("expected first_hour from file, got %d", cfg.Grid.FirstHour)
	}
	if cfg.Grid.LastHour != 18 {
		t.Errorf("expected last_hour from env, got %d", cfg.Grid.LastHour)
	}
	if got := cfg.Grid.Days; len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Errorf("expected days [1 3 5], got %v", got)
	}
	if cfg.Cache.Enabled {
		t.Error("expected cache disabled by env")
	}
}

func TestLoadFrom_BadEnv(t *testing.T) {
	t.Setenv("HORARIO_FIRST_HOUR", "seven")

	_, err := LoadFrom("/nonexistent/path/config.toml")
	if err == nil || !strings.Contains(err.Error(), "HORARIO_FIRST_HOUR") {
		t.Errorf("expected HORARIO_FIRST_HOUR error, got %v", err)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[grid\nfirst_hour ="), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"relative url", func(c *Config) { c.Backend.BaseURL = "localhost:8080" }, "base_url"},
		{"bad timeout", func(c *Config) { c.Backend.Timeout = "soon" }, "timeout"},
		{"negative timeout", func(c *Config) { c.Backend.Timeout = "-1s" }, "timeout"},
		{"no days", func(c *Config) { c.Grid.Days = nil }, "grid day"},
		{"day out of range", func(c *Config) { c.Grid.Days = []int{0, 1} }, "invalid grid day"},
		{"duplicate day", func(c *Config) { c.Grid.Days = []int{1, 1} }, "duplicate grid day"},
		{"hours reversed", func(c *Config) { c.Grid.FirstHour, c.Grid.LastHour = 12, 9 }, "first_hour"},
		{"hour too late", func(c *Config) { c.Grid.LastHour = 24 }, "between 0 and 23"},
		{"cache without path", func(c *Config) { c.Cache.DBPath = "" }, "db_path"},
		{"cache disabled without path", func(c *Config) { c.Cache.Enabled, c.Cache.DBPath = false, "" }, ""},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }, "theme"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("expandPath = %s", got)
	}
	if got := expandPath("/abs/y.db"); got != "/abs/y.db" {
		t.Errorf("expandPath changed an absolute path: %s", got)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Backend.BaseURL = "http://saved:8080"
	cfg.Grid.Days = []int{2, 4}
	cfg.UI.Theme = "latte"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Backend.BaseURL != "http://saved:8080" {
		t.Errorf("expected saved base_url, got %s", loaded.Backend.BaseURL)
	}
	if len(loaded.Grid.Days) != 2 || loaded.Grid.Days[1] != 4 {
		t.Errorf("expected saved days, got %v", loaded.Grid.Days)
	}
	if loaded.UI.Theme != "latte" {
		t.Errorf("expected saved theme, got %s", loaded.UI.Theme)
	}
}
