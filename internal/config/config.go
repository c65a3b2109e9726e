// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Gemini      GeminiConfig
	Catalog     CatalogConfig
	Session     SessionConfig
	RateLimit   RateLimitConfig
	Upload      UploadConfig
	CORS        CORSConfig
	Log         LogConfig
	I18n        I18nConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type CatalogConfig struct {
	// Path to a YAML catalog. Empty uses the catalog built into the binary.
	Path string
}

type SessionConfig struct {
	TTL          time.Duration
	SecureCookie bool
}

type RateLimitConfig struct {
	RequestsPerSecond  float64
	Burst              int
	InferencePerMinute int
	InferenceBurst     int
}

type UploadConfig struct {
	ImageMaxBytes int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type I18nConfig struct {
	DefaultLocale string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 90),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", ""),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Session: SessionConfig{
			TTL:          getEnvAsDuration("SESSION_TTL_MINUTES", time.Minute, 120*time.Minute),
			SecureCookie: getEnvAsBool("SESSION_SECURE_COOKIE", false),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond:  getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:              getEnvAsInt("RATE_LIMIT_BURST", 20),
			InferencePerMinute: getEnvAsInt("INFERENCE_RATE_PER_MINUTE", 30),
			InferenceBurst:     getEnvAsInt("INFERENCE_BURST", 5),
		},
		Upload: UploadConfig{
			ImageMaxBytes: int64(getEnvAsInt("IMAGE_MAX_BYTES", 10*1024*1024)),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	if c.Upload.ImageMaxBytes <= 0 {
		return fmt.Errorf("image upload limit must be positive")
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}

	if c.RateLimit.InferencePerMinute <= 0 || c.RateLimit.InferenceBurst <= 0 {
		return fmt.Errorf("inference rate limit must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration reads an integer count of unit.
func getEnvAsDuration(key string, unit, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return time.Duration(intValue) * unit
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
