package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	DBDriver     string
	DatabaseDSN  string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
	UploadDir    string
	UploadLimit  string
	FrontendURLs []string
	CookieSecure bool
	FetchTimeout time.Duration
	FetchRate    float64
	LogLevel     string
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "4000"),
		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN:  getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/booking?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		TokenTTL:     getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:   getEnvInt("BCRYPT_COST", 10),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		UploadLimit:  getEnv("UPLOAD_BODY_LIMIT", "100M"),
		FrontendURLs: getEnvList("FRONTEND_URL", []string{"http://localhost:5173"}),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		FetchRate:    getEnvFloat("FETCH_RATE", 5),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvList splits a comma separated value; the localhost dev origin is always kept.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	out := make([]string, 0, 2)
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return append(out, def...)
}
