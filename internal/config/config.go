package config

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	// Firestore connection.
	FirebaseCredentials   string // service-account JSON, not a file path
	FirebaseProjectID     string
	FirestoreEmulatorHost string
	FirestoreCollection   string
	FetchTimeout          time.Duration // 0 disables the per-fetch deadline
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "15s"))
	if err != nil || fetchTimeout < 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	cfg := &Config{
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":5000"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		CORSAllowedOrigins: parseList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		FirebaseCredentials:   strings.TrimSpace(os.Getenv("FIREBASE_CREDENTIALS")),
		FirebaseProjectID:     os.Getenv("FIREBASE_PROJECT_ID"),
		FirestoreEmulatorHost: os.Getenv("FIRESTORE_EMULATOR_HOST"),
		FirestoreCollection:   sharedcfg.EnvOrDefault("FIRESTORE_COLLECTION", "potholes_database"),
		FetchTimeout:          fetchTimeout,
	}

	if cfg.FirestoreCollection == "" {
		return nil, errors.New("FIRESTORE_COLLECTION is required")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	if err := validateCredentials(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateCredentials(cfg *Config) error {
	if cfg.FirestoreEmulatorHost != "" {
		// The emulator accepts unauthenticated clients but still needs a project.
		if cfg.FirebaseCredentials == "" && cfg.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required when FIRESTORE_EMULATOR_HOST is set without FIREBASE_CREDENTIALS")
		}
		if cfg.FirebaseCredentials == "" {
			return nil
		}
	}

	if cfg.FirebaseCredentials == "" {
		return errors.New("FIREBASE_CREDENTIALS is not set")
	}

	var creds map[string]any
	if err := json.Unmarshal([]byte(cfg.FirebaseCredentials), &creds); err != nil {
		return errors.New("FIREBASE_CREDENTIALS is not a valid JSON object")
	}
	return nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
