// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Flash    FlashConfig
	Log      LogConfig
}

type HTTPConfig struct {
	Addr            string        `env:"REMINDER_ADDR" env-default:":5000"`
	ReadTimeout     time.Duration `env:"REMINDER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"REMINDER_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `env:"REMINDER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"REMINDER_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type DatabaseConfig struct {
	Path string `env:"REMINDER_DB_PATH" env-default:"data/reminder.db"`
}

type FlashConfig struct {
	// Secret signs flash cookies. When unset a random one is generated per
	// process, so pending messages do not survive a restart.
	Secret string        `env:"REMINDER_FLASH_SECRET"`
	TTL    time.Duration `env:"REMINDER_FLASH_TTL" env-default:"5m"`
	Secure bool          `env:"REMINDER_FLASH_SECURE" env-default:"false"`

	// SecretGenerated is true when Secret was filled in by Read.
	SecretGenerated bool
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid LOG_LEVEL %q: %w", c.Level, err)
	}
	return level, nil
}

type Reader interface {
	Read() (*Config, error)
}

// EnvReader reads Config from the process environment, after loading the
// optional dotenv files it was given.
type EnvReader struct {
	dotenv []string
}

// NewEnvReader returns a reader that first loads dotenvFiles (default
// ".env"). Missing files are ignored; variables already set in the
// environment win over the files.
func NewEnvReader(dotenvFiles ...string) EnvReader {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	return EnvReader{dotenv: dotenvFiles}
}

func (r EnvReader) Read() (*Config, error) {
	for _, f := range r.dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}

	if cfg.Flash.Secret == "" {
		cfg.Flash.Secret = uuid.NewString()
		cfg.Flash.SecretGenerated = true
	}
	if _, err := cfg.Log.SlogLevel(); err != nil {
		return nil, err
	}
	return cfg, nil
}
