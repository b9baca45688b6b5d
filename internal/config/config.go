// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/horario/internal/schedule"
)

// Config holds the application configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Grid    GridConfig    `toml:"grid"`
	Cache   CacheConfig   `toml:"cache"`
	LLM     LLMConfig     `toml:"llm"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// BackendConfig holds the schedule backend settings.
type BackendConfig struct {
	BaseURL string `toml:"base_url"` // e.g., "http://localhost:8080"
	Timeout string `toml:"timeout"`  // e.g., "10s"
}

// GridConfig holds the visible week window.
type GridConfig struct {
	Days      []int `toml:"days"`       // 1=Monday .. 7=Sunday
	FirstHour int   `toml:"first_hour"` // first visible hour row
	LastHour  int   `toml:"last_hour"`  // last visible hour row (inclusive)
}

// CacheConfig holds the local snapshot cache settings.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "ollama" or "lmstudio"
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // empty disables file logging
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8080",
			Timeout: "10s",
		},
		Grid: GridConfig{
			Days:      []int{1, 2, 3, 4, 5},
			FirstHour: schedule.DefaultFirstHour,
			LastHour:  schedule.DefaultLastHour,
		},
		Cache: CacheConfig{
			Enabled: true,
			DBPath:  defaultDBPath(),
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// defaultDBPath returns the default snapshot cache path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "horario.db"
	}
	return filepath.Join(home, ".local", "share", "horario", "horario.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "horario", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Cache.DBPath = expandPath(cfg.Cache.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HORARIO_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("HORARIO_BACKEND_TIMEOUT"); v != "" {
		cfg.Backend.Timeout = v
	}

	if v := os.Getenv("HORARIO_DAYS"); v != "" {
		days, err := parseDays(v)
		if err != nil {
			return fmt.Errorf("HORARIO_DAYS: %w", err)
		}
		cfg.Grid.Days = days
	}
	if v := os.Getenv("HORARIO_FIRST_HOUR"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HORARIO_FIRST_HOUR: %w", err)
		}
		cfg.Grid.FirstHour = h
	}
	if v := os.Getenv("HORARIO_LAST_HOUR"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HORARIO_LAST_HOUR: %w", err)
		}
		cfg.Grid.LastHour = h
	}

	if v := os.Getenv("HORARIO_CACHE_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HORARIO_CACHE_ENABLED: %w", err)
		}
		cfg.Cache.Enabled = enabled
	}
	if v := os.Getenv("HORARIO_DB_PATH"); v != "" {
		cfg.Cache.DBPath = v
	}

	if v := os.Getenv("HORARIO_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("HORARIO_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("HORARIO_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("HORARIO_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("HORARIO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HORARIO_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

func parseDays(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid day %q", p)
		}
		days = append(days, d)
	}
	return days, nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validThemes = map[string]bool{
	"mocha": true,
	"latte": true,
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL, got %q", c.Backend.BaseURL)
	}
	if _, err := c.BackendTimeout(); err != nil {
		return err
	}

	if len(c.Grid.Days) == 0 {
		return errors.New("at least one grid day must be configured")
	}
	seen := make(map[int]bool, len(c.Grid.Days))
	for _, d := range c.Grid.Days {
		if d < 1 || d > 7 {
			return fmt.Errorf("invalid grid day: %d", d)
		}
		if seen[d] {
			return fmt.Errorf("duplicate grid day: %d", d)
		}
		seen[d] = true
	}
	if c.Grid.FirstHour < 0 || c.Grid.LastHour > 23 {
		return errors.New("grid hours must be between 0 and 23")
	}
	if c.Grid.FirstHour > c.Grid.LastHour {
		return errors.New("first_hour must not be after last_hour")
	}

	if c.Cache.Enabled && c.Cache.DBPath == "" {
		return errors.New("db_path must be set when the cache is enabled")
	}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}
	if c.Log.Level != "" && !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// BackendTimeout parses the backend request timeout.
func (c *Config) BackendTimeout() (time.Duration, error) {
	if c.Backend.Timeout == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("timeout must be a positive duration, got %q", c.Backend.Timeout)
	}
	return d, nil
}

// Window returns the visible grid window.
func (c *Config) Window() schedule.Window {
	w, err := schedule.NewWindow(c.Grid.Days, c.Grid.FirstHour, c.Grid.LastHour)
	if err != nil {
		return schedule.DefaultWindow()
	}
	return w
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
