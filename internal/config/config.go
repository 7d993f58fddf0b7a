package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything read from the environment at startup. Provider
// keys may be absent; endpoints check for them explicitly and degrade
// instead of crashing.
type AppConfig struct {
	OpenWeatherAPIKey string
	GeminiAPIKey      string

	// HTTPTimeout applies to the Fiber server's read/write deadlines.
	HTTPTimeout time.Duration

	// RefreshInterval controls how often the stored payload is re-fetched.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found or error loading it", "error", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GOOGLE_GEMINI_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	intervalStr := getenvDefault("REFRESH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// HasWeatherKey reports whether the weather/geocoding provider key is set.
func (c *AppConfig) HasWeatherKey() bool {
	return c.OpenWeatherAPIKey != ""
}

// HasGeminiKey reports whether the AI provider key is set.
func (c *AppConfig) HasGeminiKey() bool {
	return c.GeminiAPIKey != ""
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
