package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	DEBUG      bool

	ACCESS_TOKEN_TTL  = 30 * 24 * time.Hour
	REFRESH_TOKEN_TTL = 24 * time.Hour

	REDIS_ADDR     string
	REDIS_PASSWORD string
	REDIS_DB       int
	CACHE_TTL      = time.Hour

	EMAIL_BACKEND      = "smtp"
	EMAIL_FILE_PATH    = "sent_emails"
	SMTP_HOST          string
	SMTP_PORT          = 587
	SMTP_USER          string
	SMTP_PASSWORD      string
	SMTP_USE_TLS       bool
	DEFAULT_FROM_EMAIL = "noreply@localhost"

	MEDIA_ROOT             = "media"
	MEDIA_URL              = "/media/"
	MAX_UPLOAD_BYTES int64 = 5 << 20

	ALLOWED_HOSTS = []string{"*"}
	CORS_ORIGIN   = "*"
	TIME_ZONE     = "UTC"
	Location      = time.UTC
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = getEnv("DB_URL", "")
	JWT_SECRET = getEnv("JWT_SECRET", "")
	DEBUG = getBool("DEBUG", false)

	ACCESS_TOKEN_TTL = getDuration("ACCESS_TOKEN_TTL", 30*24*time.Hour)
	REFRESH_TOKEN_TTL = getDuration("REFRESH_TOKEN_TTL", 24*time.Hour)

	REDIS_ADDR = getEnv("REDIS_ADDR", "localhost:6379")
	REDIS_PASSWORD = getEnv("REDIS_PASSWORD", "")
	REDIS_DB = getInt("REDIS_DB", 0)
	CACHE_TTL = getDuration("CACHE_TTL", time.Hour)

	EMAIL_BACKEND = strings.ToLower(getEnv("EMAIL_BACKEND", "smtp"))
	EMAIL_FILE_PATH = getEnv("EMAIL_FILE_PATH", "sent_emails")
	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getInt("SMTP_PORT", 587)
	SMTP_USER = getEnv("SMTP_USER", "")
	SMTP_PASSWORD = getEnv("SMTP_PASSWORD", "")
	SMTP_USE_TLS = getBool("SMTP_USE_TLS", false)
	DEFAULT_FROM_EMAIL = getEnv("DEFAULT_FROM_EMAIL", "noreply@localhost")

	MEDIA_ROOT = getEnv("MEDIA_ROOT", "media")
	MEDIA_URL = getEnv("MEDIA_URL", "/media/")
	MAX_UPLOAD_BYTES = int64(getInt("MAX_UPLOAD_BYTES", 5<<20))

	ALLOWED_HOSTS = splitList(getEnv("ALLOWED_HOSTS", "*"))
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	TIME_ZONE = getEnv("TIME_ZONE", "UTC")
	loc, err := time.LoadLocation(TIME_ZONE)
	if err != nil {
		log.Printf("Unknown TIME_ZONE %q, falling back to UTC", TIME_ZONE)
		loc = time.UTC
	}
	Location = loc
}

// MustEnv aborts the process when one of keys has no value. Commands call it
// for the settings they cannot run without.
func MustEnv(keys ...string) {
	for _, key := range keys {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			log.Fatalf("Missing required environment variable: %s", key)
		}
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %t", key, raw, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
