package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/numthm/internal/envs"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Numbering
	PrefixNumbers bool
	CustomEnvsRaw string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Result publishing (optional)
	PublishURL    string
	PublishAPIKey string

	// PDF chapter import
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("NUMTHM_API_KEY"),

		PrefixNumbers: envBool("PREFIX_NUMBERS", false),
		CustomEnvsRaw: os.Getenv("CUSTOM_ENVS"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PublishURL:    os.Getenv("PUBLISH_URL"),
		PublishAPIKey: os.Getenv("PUBLISH_API_KEY"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("NUMTHM_API_KEY is required")
	}
	if _, err := c.CustomEnvs(); err != nil {
		return fmt.Errorf("CUSTOM_ENVS: %w", err)
	}
	return nil
}

// CustomEnvs parses the CUSTOM_ENVS triples declared in the environment.
func (c Config) CustomEnvs() ([]envs.Spec, error) {
	return envs.ParseSpecs(c.CustomEnvsRaw)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
