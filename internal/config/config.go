package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gopkg.in/yaml.v3"
)

// ErrMissingSecret is returned when no signing key has been configured.
var ErrMissingSecret = errors.New("SECRET_KEY is not set")

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string        `yaml:"port" env:"SERVER_PORT"`
		Mode           string        `yaml:"mode" env:"SERVER_MODE"`
		RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT"`
		AllowedOrigins []string      `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		URL             string        `yaml:"url" env:"DATABASE_URL"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret        string `yaml:"secret" env:"SECRET_KEY"`
		Algorithm     string `yaml:"algorithm" env:"ALGORITHM"`
		ExpireMinutes int    `yaml:"expire_minutes" env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
		Issuer        string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Seed struct {
		Enabled bool   `yaml:"enabled" env:"SEED_ENABLED"`
		File    string `yaml:"file" env:"SEED_FILE"`
	} `yaml:"seed"`

	Redis struct {
		Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
		Password string        `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"REDIS_DB"`
		GraphTTL time.Duration `yaml:"graph_ttl" env:"REDIS_GRAPH_TTL"`
	} `yaml:"redis"`

	RateLimit struct {
		LoginPerMinute int `yaml:"login_per_minute" env:"LOGIN_RATE_LIMIT"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Tracing struct {
		Enabled     bool    `yaml:"enabled" env:"OTEL_ENABLED"`
		Endpoint    string  `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
		Insecure    bool    `yaml:"insecure" env:"OTEL_EXPORTER_OTLP_INSECURE"`
		SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_SAMPLER_RATIO"`
		ServiceName string  `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
	} `yaml:"tracing"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; a missing signing key is.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Defaults returns a configuration holding only default values. It has no
// signing key and does not pass validation until one is set.
func Defaults() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8000"
	config.Server.Mode = "development"
	config.Server.RequestTimeout = 15 * time.Second
	config.Server.AllowedOrigins = []string{"*"}

	config.Database.URL = "sqlite://./malla_academica.db"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = time.Hour

	config.JWT.Algorithm = "HS256"
	config.JWT.ExpireMinutes = 1440
	config.JWT.Issuer = "coursemap"

	config.Seed.Enabled = true
	config.Seed.File = "data.json"

	config.Redis.GraphTTL = 10 * time.Minute

	config.RateLimit.LoginPerMinute = 10

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Tracing.SampleRatio = 0.1
	config.Tracing.ServiceName = "coursemap"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.JWT.Secret) == "" {
		return ErrMissingSecret
	}

	method := jwt.GetSigningMethod(config.JWT.Algorithm)
	if method == nil {
		return fmt.Errorf("unknown token algorithm %q", config.JWT.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return fmt.Errorf("token algorithm %q is not an HMAC scheme", config.JWT.Algorithm)
	}

	if config.JWT.ExpireMinutes <= 0 {
		return fmt.Errorf("token expiry must be positive, got %d minutes", config.JWT.ExpireMinutes)
	}

	if strings.TrimSpace(config.Database.URL) == "" {
		return fmt.Errorf("database url is required")
	}

	if config.Seed.Enabled && strings.TrimSpace(config.Seed.File) == "" {
		return fmt.Errorf("seed file is required when seeding is enabled")
	}

	if config.Tracing.SampleRatio < 0 || config.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample ratio must be within [0, 1]")
	}

	return nil
}

// TokenTTL returns the access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpireMinutes) * time.Minute
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}
