package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "c.yml", `
intervalStyle: sql
dateTimeStyle: postgresql
log:
  level: debug
  format: zerolog
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		IntervalStyle: "sql",
		DateTimeStyle: "postgresql",
		Log:           LogConfig{Level: "debug", Format: "zerolog"},
	}, cfg)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeConfig(t, "c.json", `{"dateTimeStyle": "POSIX"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "POSIX", cfg.DateTimeStyle)
	assert.Equal(t, "PostgreSQL", cfg.IntervalStyle)
	assert.Equal(t, "none", cfg.Log.Level)
	assert.Equal(t, "zap", cfg.Log.Format)
}

func TestLoadConfigUnknownExtension(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "c.conf", "intervalStyle: iso\n"))
	require.NoError(t, err)
	assert.Equal(t, "iso", cfg.IntervalStyle)

	_, err = LoadConfig(writeConfig(t, "c.conf", "{{{"))
	assert.EqualError(t, err, "unknown config format")
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		body string
		msg  string
	}{
		{"intervalStyle: fancy\n", "intervalStyle"},
		{"dateTimeStyle: fancy\n", "dateTimeStyle"},
		{"log:\n  level: loud\n", "log.level"},
		{"log:\n  format: syslog\n", "log.format"},
	}

	for _, tt := range tests {
		_, err := LoadConfig(writeConfig(t, "c.yaml", tt.body))
		require.Errorf(t, err, "%s", tt.body)
		assert.Containsf(t, err.Error(), tt.msg, "%s", tt.body)
	}

	_, err := LoadConfig(writeConfig(t, "c.yaml", "intervalStyle: [1, 2]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml unmarshal")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, validate(cfg))
	assert.Equal(t, "ISO", cfg.DateTimeStyle)
}

func TestLogConfigFormats(t *testing.T) {
	assert.Equal(t, []string{"zap", "kitlog"}, LogConfig{Format: "zap, kitlog,"}.Formats())
	assert.Empty(t, LogConfig{}.Formats())

	cfg := DefaultConfig()
	cfg.Log.Format = "zap,syslog"
	err := validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"syslog"`)
}
