package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAddr             = ":8080"
	defaultDirectoryBaseURL = "https://developers.zomato.com/api/v2.1"
	defaultDirectoryTimeout = 20 * time.Second
	defaultPageSize         = 20
	defaultFavoritesDB      = "eatery.db"
	defaultSessionIdle      = 30 * time.Minute
	defaultMaxSessions      = 10000
)

// Config holds environment-driven configuration.
type Config struct {
	Addr string

	DirectoryBaseURL string
	DirectoryAPIKey  string
	DirectoryTimeout time.Duration
	PageSize         int

	// SessionIdleTimeout and MaxSessions bound the in-memory browsing sessions.
	SessionIdleTimeout time.Duration
	MaxSessions        int

	JWTSecret string

	// DatabaseURL selects Postgres for favorites; when empty the local
	// SQLite file at FavoritesDB is used instead.
	DatabaseURL string
	FavoritesDB string

	CORSAllowOrigins string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:               getEnv("EATERY_ADDR", defaultAddr),
		DirectoryBaseURL:   getEnv("DIRECTORY_BASE_URL", defaultDirectoryBaseURL),
		DirectoryAPIKey:    os.Getenv("DIRECTORY_API_KEY"),
		DirectoryTimeout:   getDuration("DIRECTORY_TIMEOUT", defaultDirectoryTimeout),
		PageSize:           getInt("PAGE_SIZE", defaultPageSize),
		SessionIdleTimeout: getDuration("SESSION_IDLE_TIMEOUT", defaultSessionIdle),
		MaxSessions:        getInt("MAX_SESSIONS", defaultMaxSessions),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		FavoritesDB:        getEnv("FAVORITES_DB", defaultFavoritesDB),
		CORSAllowOrigins:   getEnv("CORS_ALLOW_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
