package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration
type Config struct {
	Env            string
	Port           string
	ProductsAPIURL string
	CartsAPIURL    string
	RequestTimeout time.Duration
	RedisURL       string
	DefaultOwner   string
}

// Load reads configuration from the .env file and environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		ProductsAPIURL: getEnv("PRODUCTS_API_URL", "http://localhost:8001/products/"),
		CartsAPIURL:    getEnv("CARTS_API_URL", "http://localhost:8002/carts/"),
		RedisURL:       os.Getenv("REDIS_URL"),
		DefaultOwner:   getEnv("DEFAULT_OWNER_ID", "customer1"),
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		timeout = 10 * time.Second
	}
	cfg.RequestTimeout = timeout

	return cfg
}

// Helper to get an environment variable or return a default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
