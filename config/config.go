package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the application.
type Config struct {
	// DatabaseURL selects the Postgres backend when set; otherwise the
	// service falls back to a local SQLite file at SQLitePath.
	DatabaseURL string
	SQLitePath  string

	ServerPort   int
	JWTSecretKey string

	// Admin credentials for the built-in verifier. The password is stored
	// as a bcrypt hash, never in plaintext.
	AdminUsername     string
	AdminPasswordHash string

	// Photo upload backend: "local" (default) or "r2".
	UploadBackend string
	UploadDir     string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

const (
	UploadBackendLocal = "local"
	UploadBackendR2    = "r2"
)

// Load reads configuration from environment variables, optionally loading a
// .env file first (useful for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "5001"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "database.sqlite"
	}

	uploadBackend := os.Getenv("UPLOAD_BACKEND")
	if uploadBackend == "" {
		uploadBackend = UploadBackendLocal
	}
	if uploadBackend != UploadBackendLocal && uploadBackend != UploadBackendR2 {
		return nil, fmt.Errorf("UPLOAD_BACKEND must be %q or %q, got %q", UploadBackendLocal, UploadBackendR2, uploadBackend)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SQLitePath:        sqlitePath,
		ServerPort:        port,
		JWTSecretKey:      jwtKey,
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		UploadBackend:     uploadBackend,
		UploadDir:         uploadDir,
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	if cfg.UploadBackend == UploadBackendR2 {
		if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" || cfg.R2PublicBaseURL == "" {
			return nil, fmt.Errorf("UPLOAD_BACKEND=r2 requires all R2_* environment variables to be set")
		}
	}

	if cfg.AdminUsername == "" || cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD_HASH environment variables are not set")
	}

	return cfg, nil
}
