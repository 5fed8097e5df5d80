package config

import (
	"os"
	"strings"
	"time"

	// Environment variables
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	// Server configuration
	Port string

	// Admin credentials and token signing
	AdminUsername     string
	AdminPasswordHash string
	TokenSecret       string
	TokenTTL          time.Duration

	// Storage paths
	DBPath    string
	UploadDir string

	// CORS
	AllowedOrigins []string

	// Email
	ResendAPIKey string
	MailFrom     string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "5002"),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		TokenSecret:       getEnv("JWT_SECRET", ""),
		TokenTTL:          getEnvAsDuration("TOKEN_TTL", "24h"),

		DBPath:    getEnv("DB_PATH", "bookings.json"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		MailFrom:     getEnv("MAIL_FROM", "11 Rock Ranch <bookings@11rockranch.com>"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key, fallback string) time.Duration {
	value := getEnv(key, fallback)
	d, err := time.ParseDuration(value)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func getEnvAsSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
