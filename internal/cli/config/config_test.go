package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "icpcboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPrompt, cfg.Session.Prompt)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, DefaultMirrorKey, cfg.Mirror.KeyPrefix)
	assert.Equal(t, 5*time.Second, cfg.Mirror.Redis.DialTimeout)
	assert.False(t, cfg.Mirror.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  format: json
session:
  prompt: "> "
  interactive: true
mirror:
  enabled: true
  keyPrefix: finals
  redis:
    addr: 127.0.0.1:6379
    db: 2
    readTimeout: 1s
export:
  path: out/final.xlsx
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "> ", cfg.Session.Prompt)
	assert.True(t, cfg.Session.Interactive)
	assert.Equal(t, "finals", cfg.Mirror.KeyPrefix)
	assert.Equal(t, 2, cfg.Mirror.Redis.DB)
	assert.Equal(t, time.Second, cfg.Mirror.Redis.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.Mirror.Redis.WriteTimeout)
	assert.Equal(t, "out/final.xlsx", cfg.Export.Path)
	require.NoError(t, cfg.Validate())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "logger: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad level", func(c *Config) { c.Logger.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logger.Format = "xml" }},
		{"export not xlsx", func(c *Config) { c.Export.Path = "board.csv" }},
		{"mirror without addr", func(c *Config) { c.Mirror.Enabled = true }},
		{"bad redis addr", func(c *Config) { c.Mirror.Redis.Addr = "no-port" }},
		{"negative db", func(c *Config) { c.Mirror.Redis.DB = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{}
			ApplyDefaults(&cfg)
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
