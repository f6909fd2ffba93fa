package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/random"
)

// Config represents the complete runtime configuration
type Config struct {
	Port          int
	DatabaseURL   string
	RunMigrations bool
	CORSOrigins   []string

	Auth    AuthConfig
	Redis   RedisConfig
	Mail    MailConfig
	Storage StorageConfig
}

// AuthConfig contains token signing and password hashing settings
type AuthConfig struct {
	JWTSecret       string
	GeneratedSecret bool
	TokenTTL        time.Duration
	BcryptCost      int
}

// RedisConfig contains the connection used by the mail outbox
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MailConfig contains notification delivery settings
type MailConfig struct {
	Transport          string // "redis" or "log"
	OutboxKey          string
	From               string
	ManagerEmail       string
	EmailTempPasswords bool
}

// StorageConfig contains MinIO/S3 settings for document templates
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
	URLTTL    time.Duration
}

var ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is required")

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          envInt("PORT", 8080),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RunMigrations: envBool("RUN_MIGRATIONS", true),
		CORSOrigins:   envList("CORS_ORIGINS"),
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			TokenTTL:   envDuration("TOKEN_TTL", 7*24*time.Hour),
			BcryptCost: envInt("BCRYPT_COST", 12),
		},
		Redis: RedisConfig{
			Addr:     envString("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
		},
		Mail: MailConfig{
			Transport:          strings.ToLower(envString("MAIL_TRANSPORT", "log")),
			OutboxKey:          envString("MAIL_OUTBOX_KEY", "estateportal:mail:outbox"),
			From:               envString("MAIL_FROM", "no-reply@estateportal.local"),
			ManagerEmail:       os.Getenv("MANAGER_EMAIL"),
			EmailTempPasswords: envBool("EMAIL_TEMP_PASSWORDS", false),
		},
		Storage: StorageConfig{
			Endpoint:  envString("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: envString("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: envString("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:    envBool("MINIO_USE_SSL", false),
			Region:    envString("MINIO_REGION", "us-east-1"),
			Bucket:    envString("DOCUMENTS_BUCKET", "investor-documents"),
			URLTTL:    envDuration("DOCUMENT_URL_TTL", 15*time.Minute),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	if cfg.Auth.JWTSecret == "" {
		// development only; tokens do not survive a restart
		cfg.Auth.JWTSecret = random.String(32)
		cfg.Auth.GeneratedSecret = true
	}

	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
