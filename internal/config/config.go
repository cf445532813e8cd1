package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	JWTSecret      string
	AccessTokenTTL time.Duration

	// Static bearer value for service-to-service calls. Empty means the
	// bypass is disabled and internal callers must present a real token.
	InternalAPIToken string

	DefaultAdminUsername string
	DefaultAdminEmail    string
	DefaultAdminPassword string
	DefaultAdminFullName string

	GinMode    string
	ServerPort string
}

func Load() *Config {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	ttlMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL_MINUTES", "60"))
	if err != nil || ttlMinutes <= 0 {
		ttlMinutes = 60
	}

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "familyhub"),
		DBPassword: getEnv("DB_PASSWORD", "familyhub"),
		DBName:     getEnv("DB_NAME", "family_hub"),
		DBPath:     getEnv("DB_PATH", "family_hub.db"),

		JWTSecret:      getEnv("JWT_SECRET", "change-me-in-production"),
		AccessTokenTTL: time.Duration(ttlMinutes) * time.Minute,

		InternalAPIToken: getEnv("INTERNAL_API_TOKEN", ""),

		DefaultAdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
		DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", "admin@familyhub.local"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
		DefaultAdminFullName: getEnv("DEFAULT_ADMIN_FULL_NAME", "Administrator"),

		GinMode:    getEnv("GIN_MODE", "debug"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
