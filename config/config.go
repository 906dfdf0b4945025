package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Wizard  WizardConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
	// CSRFKey must be 32 bytes; empty disables CSRF protection.
	CSRFKey string
	// MaxUploadBytes caps the multipart body of the media upload form.
	MaxUploadBytes int64
	// MaxImageBytes caps each attached image.
	MaxImageBytes int64
}

// APIConfig points at the external branch API.
type APIConfig struct {
	BaseURL      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type WizardConfig struct {
	// StepGating redirects a step page to the draft's current step when the
	// requested step has not been reached yet.
	StepGating bool
	DraftTTL   time.Duration
	// SweepSchedule is a cron spec for purging expired in-memory drafts.
	SweepSchedule string
	// InFlightTTL bounds how long an operation token survives a crashed request.
	InFlightTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			CSRFKey:        getEnv("CSRF_KEY", ""),
			MaxUploadBytes: parseInt64(getEnv("MAX_UPLOAD_BYTES", "33554432"), 32<<20),
			MaxImageBytes:  parseInt64(getEnv("MAX_IMAGE_BYTES", "5242880"), 5<<20),
		},
		API: APIConfig{
			BaseURL:      strings.TrimRight(getEnv("GYM_API_BASE_URL", "https://api.milicode.ir"), "/"),
			ReadTimeout:  parseDuration(getEnv("GYM_API_READ_TIMEOUT", "10s"), 10*time.Second),
			WriteTimeout: parseDuration(getEnv("GYM_API_WRITE_TIMEOUT", "20s"), 20*time.Second),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "change-me-session-secret"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "gym_session"),
			TTL:        parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour),
			Secure:     parseBool(getEnv("SESSION_COOKIE_SECURE", "false")),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       int(parseInt64(getEnv("REDIS_DB", "0"), 0)),
		},
		Wizard: WizardConfig{
			StepGating:    parseBool(getEnv("WIZARD_STEP_GATING", "false")),
			DraftTTL:      parseDuration(getEnv("WIZARD_DRAFT_TTL", "6h"), 6*time.Hour),
			SweepSchedule: getEnv("WIZARD_SWEEP_SCHEDULE", "@every 10m"),
			InFlightTTL:   parseDuration(getEnv("WIZARD_INFLIGHT_TTL", "1m"), time.Minute),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "")),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseInt64(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
