package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	DBUrl       string

	// Admin auth
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string

	// CORS
	AllowedOrigins []string

	// Mailer
	MailProvider       string
	MailFromAddress    string
	MailFromName       string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string

	// Base URL the server-rendered pages use to fetch the events listing.
	// Defaults to the local listen address.
	InternalAPIBaseURL string
}

// Load loads configuration from environment variables.
// It attempts to load from a .env file when not in production.
// DATABASE_URL is required; a missing value is a startup error.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on system environment variables only,
	// so a missing .env file is not an error there.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               os.Getenv("PORT"),
		DBUrl:              os.Getenv("DATABASE_URL"),
		AdminEmail:         strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		MailProvider:       os.Getenv("MAIL_PROVIDER"),
		MailFromAddress:    os.Getenv("MAIL_FROM_ADDRESS"),
		MailFromName:       os.Getenv("MAIL_FROM_NAME"),
		SESRegion:          os.Getenv("AWS_SES_REGION"),
		SESAccessKeyID:     os.Getenv("AWS_SES_ACCESS_KEY_ID"),
		SESSecretAccessKey: os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
		InternalAPIBaseURL: os.Getenv("INTERNAL_API_BASE_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.MailProvider == "" {
		cfg.MailProvider = "noop"
	}
	if cfg.InternalAPIBaseURL == "" {
		cfg.InternalAPIBaseURL = "http://localhost:" + cfg.Port
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	return cfg, nil
}
