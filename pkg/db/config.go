package db

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	Port     int
	MongoURL string
	Database string
}

// LoadConfig reads the server configuration from the process environment.
// A missing MONGO_URL is a hard error so startup fails fast instead of
// connecting lazily and logging the failure later.
func LoadConfig() (Config, error) {
	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		return Config{}, errors.New("MONGO_URL is required")
	}

	return Config{
		Port:     getEnvInt("PORT", 8080),
		MongoURL: mongoURL,
		Database: getEnv("MONGO_DB", "ecommerce"),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
