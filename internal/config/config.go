package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend selector values for Config.StorageBackend.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	PublicDir   string // single-page client bundle served at /

	// File storage
	StorageBackend string // "local" or "s3"
	UploadDir      string // local backend root, served at /uploads
	S3Bucket       string
	S3Region       string
	S3Endpoint     string // optional, for MinIO-style deployments
	S3AccessKey    string
	S3SecretKey    string
}

func Load() *Config {
	// Not fatal if missing: production injects real env vars instead.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=bondyard port=5432 sslmode=disable"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		PublicDir:      getEnv("PUBLIC_DIR", "./public"),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageLocal),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set; refusing to start without one.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters.")
	}
	if cfg.StorageBackend != StorageLocal && cfg.StorageBackend != StorageS3 {
		log.Fatalf("[FATAL] STORAGE_BACKEND must be %q or %q, got %q", StorageLocal, StorageS3, cfg.StorageBackend)
	}
	if cfg.StorageBackend == StorageS3 && cfg.S3Bucket == "" {
		log.Fatal("[FATAL] STORAGE_BACKEND=s3 requires S3_BUCKET.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=bondyard port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN is the development default; set a real DSN for production.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is the development default; set your own origin for production.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
