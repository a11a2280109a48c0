package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"
)

// Config carries settings shared by the API, worker and status refresher processes.
// Values come from an optional YAML file named by CONFIG_FILE, then environment
// variables, which always win.
type Config struct {
	Port                         string   `yaml:"port"`
	PostgresDSN                  string   `yaml:"postgresDsn"`
	TemporalAddress              string   `yaml:"temporalAddress"`
	TemporalNamespace            string   `yaml:"temporalNamespace"`
	TemporalDisabled             bool     `yaml:"temporalDisabled"`
	TimeZone                     string   `yaml:"timeZone"`
	CORSAllowedOrigins           []string `yaml:"corsAllowedOrigins"`
	SentryDSN                    string   `yaml:"sentryDsn"`
	Environment                  string   `yaml:"environment"`
	Release                      string   `yaml:"release"`
	LogLevel                     string   `yaml:"logLevel"`
	StatusRefreshIntervalMinutes int      `yaml:"statusRefreshIntervalMinutes"`
	PushgatewayURL               string   `yaml:"pushgatewayUrl"`
}

// LoadConfig reads the optional config file and environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              "8080",
		TemporalAddress:   client.DefaultHostPort,
		TemporalNamespace: client.DefaultNamespace,
		TimeZone:          "UTC",
		Environment:       "local",
		LogLevel:          "info",
	}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = envDefault("PORT", cfg.Port)
	cfg.PostgresDSN = envDefault("POSTGRES_DSN", cfg.PostgresDSN)
	cfg.TemporalAddress = envDefault("TEMPORAL_ADDRESS", cfg.TemporalAddress)
	cfg.TemporalNamespace = envDefault("TEMPORAL_NAMESPACE", cfg.TemporalNamespace)
	if raw, ok := os.LookupEnv("TEMPORAL_DISABLED"); ok {
		cfg.TemporalDisabled = isTruthy(raw)
	}
	cfg.TimeZone = envDefault("TZ", cfg.TimeZone)
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		cfg.CORSAllowedOrigins = splitList(raw)
	}
	cfg.SentryDSN = envDefault("SENTRY_DSN", cfg.SentryDSN)
	cfg.Environment = envDefault("ENVIRONMENT", cfg.Environment)
	cfg.Release = envDefault("RELEASE", cfg.Release)
	cfg.LogLevel = envDefault("LOG_LEVEL", cfg.LogLevel)
	if raw := strings.TrimSpace(os.Getenv("STATUS_REFRESH_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("STATUS_REFRESH_INTERVAL_MINUTES must be a positive integer")
		}
		cfg.StatusRefreshIntervalMinutes = minutes
	}

	cfg.PushgatewayURL = envDefault("PUSHGATEWAY_URL", cfg.PushgatewayURL)

	if cfg.StatusRefreshIntervalMinutes < 0 {
		return Config{}, fmt.Errorf("STATUS_REFRESH_INTERVAL_MINUTES must be a positive integer")
	}
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return Config{}, fmt.Errorf("TZ %q is not a known time zone: %w", cfg.TimeZone, err)
	}
	return cfg, nil
}

// StatusRefreshInterval is zero when the refresher should run once.
func (c Config) StatusRefreshInterval() time.Duration {
	return time.Duration(c.StatusRefreshIntervalMinutes) * time.Minute
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func loadFile(path string, cfg *Config) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
