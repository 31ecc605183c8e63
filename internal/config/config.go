// Package config loads service settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultRateLimit is the per-IP request allowance per window when the
// config file and environment leave it unset. An explicit 0 disables limiting.
const DefaultRateLimit = 120

// Server holds HTTP listener settings.
type Server struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	CORSOrigins   []string      `yaml:"cors_origins"`
	AdminKey      string        `yaml:"admin_key"`
}

// RateLimit caps requests per client IP on the compute endpoints.
type RateLimit struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// Storage locates the optional history database.
type Storage struct {
	// Path of the SQLite file. Empty disables history and chart caching.
	Path string `yaml:"path"`
}

// Ephemeris tunes the planetary position cache.
type Ephemeris struct {
	CacheResolution time.Duration `yaml:"cache_resolution"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
}

// Narrative points at an optional omen catalog.
type Narrative struct {
	// TemplatesFile replaces the built-in omen catalog when set.
	TemplatesFile string `yaml:"templates_file"`
}

// Log sets the slog level: debug, info, warn or error.
type Log struct {
	Level string `yaml:"level"`
}

// Config is the full service configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Storage   Storage   `yaml:"storage"`
	Ephemeris Ephemeris `yaml:"ephemeris"`
	Narrative Narrative `yaml:"narrative"`
	Log       Log       `yaml:"log"`
}

// Load reads path, applies environment overrides and fills defaults. An
// empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := Config{RateLimit: RateLimit{Requests: DefaultRateLimit}}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Info("config file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse yaml: %w", err)
			}
		}
	}
	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{
			"http://localhost:5173",
			"http://localhost:4173",
			"http://localhost:3000",
		}
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.Ephemeris.CacheResolution == 0 {
		c.Ephemeris.CacheResolution = time.Minute
	}
	if c.Ephemeris.CacheTTL == 0 {
		c.Ephemeris.CacheTTL = 5 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) applyEnv() {
	c.Server.ListenAddress = envOrDefault("OMENS_LISTEN_ADDR", c.Server.ListenAddress)
	c.Server.AdminKey = envOrDefault("OMENS_ADMIN_KEY", c.Server.AdminKey)
	c.Storage.Path = envOrDefault("OMENS_DB_PATH", c.Storage.Path)
	c.Narrative.TemplatesFile = envOrDefault("OMENS_TEMPLATES_FILE", c.Narrative.TemplatesFile)
	c.Log.Level = envOrDefault("OMENS_LOG_LEVEL", c.Log.Level)
	c.RateLimit.Requests = envIntOrDefault("OMENS_RATE_LIMIT", c.RateLimit.Requests)
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		var origins []string
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		c.Server.CORSOrigins = origins
	}
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.RateLimit.Requests < 0 {
		return fmt.Errorf("rate_limit.requests must not be negative, got %d", c.RateLimit.Requests)
	}
	if c.Ephemeris.CacheResolution < 0 || c.Ephemeris.CacheTTL < 0 {
		return errors.New("ephemeris cache durations must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	l, _ := ParseLevel(c.Log.Level)
	return l
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
