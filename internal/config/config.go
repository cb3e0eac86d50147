package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config carries everything the server needs from the environment. It is
// built once in main and handed to each component explicitly.
type Config struct {
	Port            string
	Env             string
	JWTSecret       string
	JWTExpiresIn    time.Duration
	PasswordSalt    string
	DatabaseURL     string
	TestDatabaseURL string
}

// Load reads a .env file if present and assembles the configuration with
// defaults suitable for local development.
func Load() *Config {
	// Missing .env is fine, env vars may come from the system.
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "3000"),
		Env:             getEnv("APP_ENV", EnvDevelopment),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTExpiresIn:    getDuration("JWT_EXPIRES_IN", 24*time.Hour),
		PasswordSalt:    os.Getenv("PASSWORD_SALT"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		TestDatabaseURL: os.Getenv("TEST_DATABASE_URL"),
	}
}

// DSN returns the database URL for the current environment. Tests run
// against a separate database so they can be wiped freely.
func (c *Config) DSN() string {
	if c.Env == EnvTest {
		return c.TestDatabaseURL
	}
	return c.DatabaseURL
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
