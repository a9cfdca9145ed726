package config

import (
	"log/slog"
	"os"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port              string
	Env               string
	MongoURI          string
	JWTSecret         string
	JWTExpiry         time.Duration
	SkyscannerAPIKey  string
	OpenWeatherAPIKey string
	RapidAPIKey       string
}

func Load() Config {
	cfg := Config{
		Port:              getEnv("PORT", "4000"),
		Env:               getEnv("ENV", "development"),
		MongoURI:          getEnv("MONGODB_URI", "mongodb://localhost:27017/travel-planner"),
		JWTSecret:         getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:         24 * time.Hour,
		SkyscannerAPIKey:  getEnv("SKYSCANNER_API_KEY", ""),
		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		RapidAPIKey:       getEnv("RAPID_API_KEY", ""),
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
