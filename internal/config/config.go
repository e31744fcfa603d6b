package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	DatabaseURL     string
	HTTPListenAddr  string
	TemporalAddress string
	MigrationsDir   string
	LogLevel        string
	CORSOrigins     []string
	AdminAPIKey     string
	CookieSecure    bool
	ServiceName     string
}

func Load() (*Config, error) {
	origins := getEnv("CORS_ORIGINS", "http://localhost:5173")
	var corsList []string
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			corsList = append(corsList, trimmed)
		}
	}

	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		HTTPListenAddr:  getEnv("HTTP_LISTEN_ADDR", ":8080"),
		TemporalAddress: getEnv("TEMPORAL_ADDRESS", "localhost:7233"),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     corsList,
		AdminAPIKey:     getEnv("ADMIN_API_KEY", ""),
		CookieSecure:    getEnv("COOKIE_SECURE", "") == "true",
		ServiceName:     getEnv("SERVICE_NAME", "portal-api"),
	}

	return cfg, nil
}

// Validate checks that all config required for the given role is present.
// Role is "api" or "worker".
func (c *Config) Validate(role string) error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if role == "api" && c.AdminAPIKey == "" {
		missing = append(missing, "ADMIN_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
