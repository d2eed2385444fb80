package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// durationSeconds parses env as time.Duration: "10s", "5m" or a bare number
// of seconds (e.g. "10" -> 10s).
type durationSeconds time.Duration

func (d *durationSeconds) SetValue(data string) error {
	v, err := parseDuration(data)
	if err != nil {
		return err
	}
	*d = durationSeconds(v)
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	// Strip optional surrounding quotes: "10s" or '10s'
	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	// A bare number means seconds (e.g. HTTP_READ_TIMEOUT=10).
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	return d, nil
}

func (d durationSeconds) Duration() time.Duration { return time.Duration(d) }

type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	Auth AuthConfig
}

type AppConfig struct {
	Env     string `env:"APP_ENV" env-default:"dev"`
	Version string `env:"VERSION" env-default:"dev"`
}

type HTTPConfig struct {
	Port string `env:"HTTP_PORT" env-default:"8080"`

	// Value: "10s", "5m" or a number of seconds without a suffix.
	ReadTimeout  durationSeconds `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout durationSeconds `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  durationSeconds `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type AuthConfig struct {
	// Secret signs bearer tokens. The default is for local development only.
	Secret string `env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	// TTL is the fixed token lifetime from issuance.
	TTL durationSeconds `env:"JWT_TTL" env-default:"30m"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
