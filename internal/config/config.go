package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string

	PostgresURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PlacesServiceURL string
	MapsServiceURL   string

	NarrativeProvider string
	OpenAIAPIKey      string
	OpenAIModel       string
	GeminiAPIKey      string
	GeminiModel       string

	JWTSecret    string
	TripCacheTTL time.Duration
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	return &Config{
		Port:              getEnvWithDefault("PORT", "8080"),
		AppEnv:            getEnvWithDefault("APP_ENV", "development"),
		PostgresURL:       os.Getenv("POSTGRES_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getIntWithDefault("REDIS_DB", 0),
		PlacesServiceURL:  getEnvWithDefault("PLACES_SERVICE_URL", "http://localhost:3000"),
		MapsServiceURL:    getEnvWithDefault("MAPS_SERVICE_URL", "http://localhost:3001"),
		NarrativeProvider: getEnvWithDefault("NARRATIVE_PROVIDER", "gemini"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TripCacheTTL:      getDurationWithDefault("TRIP_CACHE_TTL", 7*24*time.Hour),
	}
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
