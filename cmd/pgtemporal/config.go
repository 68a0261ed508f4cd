package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/pgtemporal/pgtemporal/pgtype"
	"github.com/pgtemporal/pgtemporal/tracelog"
)

// Config holds the defaults used when a command does not name a style.
type Config struct {
	IntervalStyle string    `json:"intervalStyle" yaml:"intervalStyle"`
	DateTimeStyle string    `json:"dateTimeStyle" yaml:"dateTimeStyle"`
	Log           LogConfig `json:"log" yaml:"log"`
}

// LogConfig selects the logging backend for decode tracing.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // trace | debug | info | warn | error | none
	Format string `json:"format" yaml:"format"` // comma separated: zap | zerolog | logrus | log15 | kitlog
}

var logFormats = []string{"zap", "zerolog", "logrus", "log15", "kitlog"}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	cfg := new(Config)
	applyDefaults(cfg)
	return cfg
}

// LoadConfig loads configuration from a file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := new(Config)
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(b, cfg); err != nil {
			if err := json.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("unknown config format")
			}
		}
	}

	applyDefaults(cfg)
	return cfg, validate(cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.IntervalStyle == "" {
		cfg.IntervalStyle = pgtype.IntervalStylePostgreSQL.String()
	}
	if cfg.DateTimeStyle == "" {
		cfg.DateTimeStyle = pgtype.DateTimeStyleISO.String()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = tracelog.LogLevelNone.String()
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "zap"
	}
}

func validate(cfg *Config) error {
	if _, err := pgtype.ParseIntervalStyle(cfg.IntervalStyle); err != nil {
		return fmt.Errorf("intervalStyle: %w", err)
	}
	if _, err := pgtype.ParseDateTimeStyle(cfg.DateTimeStyle); err != nil {
		return fmt.Errorf("dateTimeStyle: %w", err)
	}
	if _, err := tracelog.LogLevelFromString(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level %q: %w", cfg.Log.Level, err)
	}
	for _, format := range cfg.Log.Formats() {
		if !isLogFormat(format) {
			return fmt.Errorf("log.format must be one of %s, got %q", strings.Join(logFormats, ", "), format)
		}
	}
	return nil
}

// Formats splits Format into its backends.
func (c LogConfig) Formats() []string {
	var formats []string
	for _, f := range strings.Split(c.Format, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

func isLogFormat(format string) bool {
	for _, f := range logFormats {
		if format == f {
			return true
		}
	}
	return false
}
