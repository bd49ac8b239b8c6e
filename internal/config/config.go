package config

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

const devSecretKey = "change_me_in_production"

type Config struct {
	HTTPPort       string
	DatabaseDSN    string
	SQLitePath     string
	SecretKey      string
	CORSOrigins    string
	CurfewTZ       string
	AdminEmail     string
	AdminPassword  string
	AttachmentPath string
	CookieSecure   bool
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		SQLitePath:     getEnv("DB_PATH", filepath.Join("data", "crewplan.db")),
		SecretKey:      getEnv("SECRET_KEY", devSecretKey),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:5173"),
		CurfewTZ:       getEnv("CURFEW_TZ", "Europe/Amsterdam"),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		AttachmentPath: getEnv("ATTACHMENT_PATH", filepath.Join("data", "attachments")),
		CookieSecure:   getEnv("COOKIE_SECURE", "false") == "true",
	}

	if cfg.SecretKey == devSecretKey {
		log.Println("[WARN] SECRET_KEY is the development default, set a real secret in production")
	}

	return cfg
}

// CurfewLocation resolves the reference timezone for the minor-curfew rule,
// falling back to UTC when the name is unknown.
func (cfg *Config) CurfewLocation() *time.Location {
	location, err := time.LoadLocation(cfg.CurfewTZ)
	if err != nil {
		log.Printf("invalid CURFEW_TZ %q, falling back to UTC", cfg.CurfewTZ)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
