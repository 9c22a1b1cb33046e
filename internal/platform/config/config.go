package config

import (
	"os"
	"strings"
)

// Config agrupa todo lo que el binario lee de env. Se carga una vez en main.
type Config struct {
	Addr string

	// Si DBDSN viene vacío, el router usa el store in-memory (modo dev).
	DBDSN          string
	MigrationsPath string

	// Si JWTSecret viene vacío, no hay verifier y el auth queda en modo dev
	// (headers X-Debug-User-ID / X-Debug-Roles).
	JWTSecret string

	LogLevel  string
	LogFormat string
	AppName   string
}

func FromEnv() Config {
	return Config{
		Addr:           ":" + getenv("PORT", "8080"),
		DBDSN:          os.Getenv("DB_DSN"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "file://migrations"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
		AppName:        getenv("APP_NAME", "petclinic-rest"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
