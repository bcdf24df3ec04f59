package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	AppName     = "campuspay-pricing-engine"
	EnvFileName = "config.env"
)

// LoadEnvFile loads environment variables from the config file in the user's
// config directory, then from a .env in the working directory. Errors are
// ignored since the files may not exist.
func LoadEnvFile() {
	if configBase, err := os.UserConfigDir(); err == nil {
		_ = godotenv.Load(filepath.Join(configBase, AppName, EnvFileName))
	}
	_ = godotenv.Load()
}

// Config holds the process configuration, read from the environment.
type Config struct {
	Addr           string
	DataSource     string
	CerebrasAPIKey string
	CerebrasAPIURL string
	ChatModel      string
	CacheDBPath    string
}

func FromEnv() Config {
	return Config{
		Addr:           getenv("ADDR", ":8080"),
		DataSource:     getenv("DATA_SOURCE", "data/sample_listings.csv"),
		CerebrasAPIKey: os.Getenv("CEREBRAS_API_KEY"),
		CerebrasAPIURL: os.Getenv("CEREBRAS_API_URL"),
		ChatModel:      os.Getenv("CHAT_MODEL"),
		CacheDBPath:    getenv("CACHE_DB_PATH", "replies.db"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
