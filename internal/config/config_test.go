package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "4000" {
		t.Errorf("Port = %q, want 4000", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.MongoURI != "mongodb://localhost:27017/travel-planner" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGODB_URI", "mongodb://db:27017/roamly")
	t.Setenv("JWT_SECRET", "a-real-secret")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://db:27017/roamly" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.JWTSecret != "a-real-secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("CONFIG_TEST_SET", "value")

	if got := getEnv("CONFIG_TEST_SET", "fallback"); got != "value" {
		t.Errorf("getEnv set = %q", got)
	}
	if got := getEnv("CONFIG_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv unset = %q", got)
	}
}
