package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-publishing/pkg/settings"
)

const (
	EnvConfigPath = "PUBLISHING_SETTINGS_CONFIG"

	DefaultListen   = "127.0.0.1:8080"
	DefaultLogLevel = "info"
)

type Config struct {
	Listen     string         `yaml:"listen"`
	Database   string         `yaml:"database"`
	DBWAL      bool           `yaml:"db_wal"`
	LogLevel   string         `yaml:"log_level"`
	OptionKey  string         `yaml:"option_key"`
	Categories []CategorySeed `yaml:"categories,omitempty"`
}

// CategorySeed is a taxonomy entry seeded into the store on startup.
type CategorySeed struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

func DefaultConfig() Config {
	return Config{
		Listen:    DefaultListen,
		DBWAL:     true,
		LogLevel:  DefaultLogLevel,
		OptionKey: settings.OptionKey,
	}
}

// Load reads the YAML file at path, falling back to $PUBLISHING_SETTINGS_CONFIG
// when path is blank, then applies environment overrides. With neither set the
// defaults are returned.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	path = strings.TrimSpace(path)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("PUBLISHING_SETTINGS_LISTEN")); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("PUBLISHING_SETTINGS_DATABASE")); v != "" {
		cfg.Database = v
	}
	if v := strings.TrimSpace(os.Getenv("PUBLISHING_SETTINGS_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("PUBLISHING_SETTINGS_OPTION_KEY")); v != "" {
		cfg.OptionKey = v
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Listen = strings.TrimSpace(c.Listen)
	c.Database = strings.TrimSpace(c.Database)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.OptionKey = strings.TrimSpace(c.OptionKey)
	if c.OptionKey == "" {
		c.OptionKey = settings.OptionKey
	}
	for i := range c.Categories {
		c.Categories[i].ID = strings.TrimSpace(c.Categories[i].ID)
		c.Categories[i].Name = strings.TrimSpace(c.Categories[i].Name)
	}
}

func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for i, category := range c.Categories {
		if category.ID == "" {
			return fmt.Errorf("categories[%d]: id is required", i)
		}
		if _, dup := seen[category.ID]; dup {
			return fmt.Errorf("categories[%d]: duplicate id %q", i, category.ID)
		}
		seen[category.ID] = struct{}{}
	}
	return nil
}

// SeedCategories converts the configured seeds into taxonomy entries.
func (c Config) SeedCategories() []settings.Category {
	if len(c.Categories) == 0 {
		return nil
	}
	out := make([]settings.Category, 0, len(c.Categories))
	for _, seed := range c.Categories {
		out = append(out, settings.Category{ID: seed.ID, Name: seed.Name})
	}
	return out
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", level)
	}
}

func NewLogger(level string) (*slog.Logger, error) {
	parsed, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parsed})
	return slog.New(h), nil
}
