package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig
	DogAPI   DogAPIConfig
	Database DatabaseConfig
	Session  SessionConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
}

// DogAPIConfig holds the remote breed API client settings.
type DogAPIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	// ImageCount is how many photos the breed photos screen requests.
	ImageCount int `mapstructure:"image_count"`
	// PhotoConcurrency caps the per-breed photo fan-out. Zero means one request per
	// breed, all in flight at once.
	PhotoConcurrency int `mapstructure:"photo_concurrency"`
	// RequestsPerSecond throttles outbound requests. Zero disables throttling.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	// Offline serves empty results instead of calling the API.
	Offline bool `mapstructure:"offline"`
}

// DatabaseConfig is optional: with an empty URL events stay in process.
type DatabaseConfig struct {
	URL string
}

type SessionConfig struct {
	IdleGrace time.Duration `mapstructure:"idle_grace"`
}

type LogConfig struct {
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix DOGS_;
// PORT and DATABASE_URL are honoured as well.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("dogapi.base_url", "https://dog.ceo/api")
	v.SetDefault("dogapi.connect_timeout", 10*time.Second)
	v.SetDefault("dogapi.read_timeout", 30*time.Second)
	v.SetDefault("dogapi.image_count", 10)
	v.SetDefault("dogapi.photo_concurrency", 0)
	v.SetDefault("dogapi.requests_per_second", 0)
	v.SetDefault("dogapi.offline", false)
	v.SetDefault("database.url", "")
	v.SetDefault("session.idle_grace", 5*time.Minute)
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("DOGS_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	v.SetEnvPrefix("DOGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "DOGS_SERVER_PORT", "PORT"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv("database.url", "DOGS_DATABASE_URL", "DATABASE_URL"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.DogAPI.BaseURL == "" {
		return fmt.Errorf("dogapi.base_url must be set")
	}
	if c.DogAPI.ImageCount <= 0 {
		return fmt.Errorf("dogapi.image_count must be positive, got %d", c.DogAPI.ImageCount)
	}
	if c.DogAPI.PhotoConcurrency < 0 {
		return fmt.Errorf("dogapi.photo_concurrency must not be negative, got %d", c.DogAPI.PhotoConcurrency)
	}
	if c.DogAPI.RequestsPerSecond < 0 {
		return fmt.Errorf("dogapi.requests_per_second must not be negative, got %v", c.DogAPI.RequestsPerSecond)
	}
	return nil
}

// SlogLevel maps log.level onto a slog level, defaulting to Info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
