package config

import "os"

// Config collects everything the service reads from the environment.
// godotenv.Load in main fills the environment from .env during development.
type Config struct {
	Env           string // "development" or "production"
	Port          string
	DBDSN         string
	RedisAddr     string // empty disables the redis list cache
	RedisPassword string
	JWTSecret     string
	CORSOrigin    string
}

func Load() *Config {
	return &Config{
		Env:           getenv("APP_ENV", "development"),
		Port:          getenv("PORT", "8080"),
		DBDSN:         getenv("DB_DSN", "root:root@tcp(127.0.0.1:3306)/catalog_admin?parseTime=true"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getenv("JWT_SECRET", "dev-only-secret-change-me"),
		CORSOrigin:    getenv("CORS_ORIGIN", "http://localhost:5173"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
