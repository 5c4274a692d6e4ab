package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"icpcboard/internal/common/cache"
	"icpcboard/pkg/utils/logger"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPrompt    = "icpc> "
	DefaultMirrorKey = "icpcboard"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// SessionConfig controls how commands are read.
type SessionConfig struct {
	Prompt      string `yaml:"prompt"`
	Interactive bool   `yaml:"interactive"`
	HistoryFile string `yaml:"historyFile"`
	Input       string `yaml:"input"` // file path, "" reads stdin
}

// MirrorConfig enables publishing committed boards to Redis.
type MirrorConfig struct {
	Enabled   bool              `yaml:"enabled"`
	KeyPrefix string            `yaml:"keyPrefix" validate:"omitempty,printascii"`
	Redis     cache.RedisConfig `yaml:"redis"`
}

// ExportConfig enables writing the final board to an xlsx workbook at END.
type ExportConfig struct {
	Path string `yaml:"path" validate:"omitempty,endswith=.xlsx"`
}

// Config holds scoreboard session configuration.
type Config struct {
	Logger  logger.Config `yaml:"logger"`
	Session SessionConfig `yaml:"session"`
	Mirror  MirrorConfig  `yaml:"mirror"`
	Export  ExportConfig  `yaml:"export"`
}

var validate = validator.New()

// Load reads path and applies defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config file failed: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file failed: %w", err)
		}
	}
	ApplyDefaults(&cfg)
	return cfg, nil
}

// ApplyDefaults fills zero-valued settings.
func ApplyDefaults(cfg *Config) {
	if cfg.Session.Prompt == "" {
		cfg.Session.Prompt = DefaultPrompt
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = DefaultLogLevel
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = DefaultLogFormat
	}
	if cfg.Mirror.KeyPrefix == "" {
		cfg.Mirror.KeyPrefix = DefaultMirrorKey
	}
	redisDefaults := cache.DefaultRedisConfig()
	if cfg.Mirror.Redis.MaxRetries == 0 {
		cfg.Mirror.Redis.MaxRetries = redisDefaults.MaxRetries
	}
	if cfg.Mirror.Redis.DialTimeout == 0 {
		cfg.Mirror.Redis.DialTimeout = redisDefaults.DialTimeout
	}
	if cfg.Mirror.Redis.ReadTimeout == 0 {
		cfg.Mirror.Redis.ReadTimeout = redisDefaults.ReadTimeout
	}
	if cfg.Mirror.Redis.WriteTimeout == 0 {
		cfg.Mirror.Redis.WriteTimeout = redisDefaults.WriteTimeout
	}
	if cfg.Mirror.Redis.PoolSize == 0 {
		cfg.Mirror.Redis.PoolSize = redisDefaults.PoolSize
	}
}

// Validate checks struct tags and cross-field requirements.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Mirror.Enabled && c.Mirror.Redis.Addr == "" {
		return fmt.Errorf("invalid config: mirror.redis.addr is required when the mirror is enabled")
	}
	return nil
}
