package connection

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"salescrm/logs"
)

const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

type Config struct {
	Port            string
	JWTSecret       string
	JWTExpire       time.Duration
	StoreBackend    string
	CredentialsFile string
	ProjectID       string
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	OverdueInterval time.Duration
	CORSOrigin      string
	AdminUsername   string
	AdminPassword   string
	LogLevel        string
	LogFormat       string
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		logs.Log.Debug("no .env file loaded")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		JWTSecret:       os.Getenv("JWT_SECRET_KEY"),
		JWTExpire:       getDuration("JWT_EXPIRE", 24*time.Hour),
		StoreBackend:    getEnv("STORE_BACKEND", BackendMemory),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ProjectID:       os.Getenv("FIRESTORE_PROJECT_ID"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		OverdueInterval: getDuration("OVERDUE_INTERVAL", time.Hour),
		CORSOrigin:      os.Getenv("CORS_ORIGIN"),
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logs.Log.WithField("key", key).Warnf("invalid duration %q, using %s", raw, fallback)
		return fallback
	}
	return d
}
