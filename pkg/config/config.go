package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  string
	Env                   string
	PostgresConnStr       string
	TwitterConsumerKey    string
	TwitterConsumerSecret string
	TwitterCallbackURL    string
	FrontendURL           string
	JWTSecret             string
}

// Load reads the configuration from the environment, loading a .env file
// first when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		Env:                   getEnv("ENV", "development"),
		PostgresConnStr:       getEnv("POSTGRES_CONN_STR", ""),
		TwitterConsumerKey:    getEnv("TWITTER_CONSUMER_KEY", ""),
		TwitterConsumerSecret: getEnv("TWITTER_CONSUMER_SECRET", ""),
		TwitterCallbackURL:    getEnv("TWITTER_CALLBACK_URL", ""),
		FrontendURL:           getEnv("FRONTEND_URL", "http://localhost:5173"),
		JWTSecret:             getEnv("JWT_SECRET", "supersecretjwtkey"),
	}

	// The callback defaults to the front-end route that finishes the handshake.
	if cfg.TwitterCallbackURL == "" {
		cfg.TwitterCallbackURL = cfg.FrontendURL + "/auth/twitter/callback"
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
