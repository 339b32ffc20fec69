package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	BooksCollection string
	AuditCollection string
	JWTSecret       string
	UserId          string
	UserName        string
	UserPassword    string
	BooksPerPage    int
	QueryTimeout    time.Duration
	ExportInterval  time.Duration
	LogLevel        string
	LogFormat       string
	Environment     string
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:          getEnv("DB_NAME", "library"),
		BooksCollection: getEnv("BOOKS_COLLECTION", "books"),
		AuditCollection: getEnv("AUDIT_COLLECTION", "audit_logs"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		UserId:          os.Getenv("HARD_CODED_USER_ID"),
		UserName:        os.Getenv("HARD_CODED_USER_NAME"),
		UserPassword:    os.Getenv("HARD_CODED_USER_PASSWORD"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       os.Getenv("LOG_FORMAT"),
		Environment:     getEnv("APP_ENV", "development"),
	}

	var err error
	if cfg.BooksPerPage, err = getInt("BOOKS_PER_PAGE", 5); err != nil {
		return Config{}, err
	}
	if cfg.QueryTimeout, err = getDuration("QUERY_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ExportInterval, err = getDuration("EXPORT_INTERVAL", 30*time.Second); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
