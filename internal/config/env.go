package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// DuplicateServiceURL is the base URL of the external duplicate-detection
	// service. Empty disables the check (every trip stays editable).
	DuplicateServiceURL string

	// JWTSecret verifies bearer tokens issued by the external user service.
	// Empty disables auth enforcement (local development).
	JWTSecret string
}

func LoadEnv() Env {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return Env{
		AppAddr:             getenv("APP_ADDR", ":8080"),
		GinMode:             getenv("GIN_MODE", ""),
		DBUser:              getenv("DB_USER", "root"),
		DBPass:              getenv("DB_PASS", ""),
		DBHost:              getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:              getenv("DB_NAME", "hauling_app"),
		DuplicateServiceURL: getenv("DUPLICATE_SERVICE_URL", ""),
		JWTSecret:           getenv("AUTH_JWT_SECRET", ""),
	}
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
