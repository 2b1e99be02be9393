package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret     string
	SessionSecret string

	// OTPTTL is how long an emailed one-time passcode stays valid.
	OTPTTL time.Duration
	// TokenTTL is the bearer token lifetime.
	TokenTTL time.Duration
	// SessionTTL is the server-side session lifetime.
	SessionTTL time.Duration

	// RevocationBackend selects where revoked tokens are kept: "memory" or "redis".
	RevocationBackend string

	BrevoAPIURL  string
	BrevoAPIKey  string
	MailFrom     string
	MailFromName string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	AdminDeleteCode string
	ClientOrigin    string
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/campusnotes?charset=utf8mb4&parseTime=True&loc=Local"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-too"),

		OTPTTL:     getEnvDuration("OTP_TTL", 10*time.Minute),
		TokenTTL:   getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		SessionTTL: getEnvDuration("SESSION_TTL", 4*24*time.Hour),

		RevocationBackend: getEnv("REVOCATION_BACKEND", "memory"),

		BrevoAPIURL:  getEnv("BREVO_API_URL", "https://api.brevo.com/v3/smtp/email"),
		BrevoAPIKey:  os.Getenv("BREVO_API_KEY"),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@campusnotes.local"),
		MailFromName: getEnv("MAIL_FROM_NAME", "CampusNotes"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", "campusnotes"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		AdminDeleteCode: getEnv("ADMIN_DELETE_CODE", "admin123"),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
