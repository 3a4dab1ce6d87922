package config

import (
	"os"
	"strconv"
)

type Config struct {
	PostgresURI        string
	RedisURI           string
	FrontendURL        string
	AutosaveDebounceMS int
	ProjectSoftLimit   int
	TwitterAPIURL      string
	TwitterToken       string
	LinkedInAPIURL     string
	LinkedInToken      string
	RedditAPIURL       string
	RedditToken        string
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		RedisURI:           getEnv("REDIS_URI", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		AutosaveDebounceMS: getEnvInt("AUTOSAVE_DEBOUNCE_MS", 2000),
		ProjectSoftLimit:   getEnvInt("PROJECT_SOFT_LIMIT", 3),
		TwitterAPIURL:      getEnv("TWITTER_API_URL", ""),
		TwitterToken:       getEnv("TWITTER_TOKEN", ""),
		LinkedInAPIURL:     getEnv("LINKEDIN_API_URL", ""),
		LinkedInToken:      getEnv("LINKEDIN_TOKEN", ""),
		RedditAPIURL:       getEnv("REDDIT_API_URL", ""),
		RedditToken:        getEnv("REDDIT_TOKEN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
