package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth; empty disables bearer auth.
	APIKey string

	// Batch locations
	InputDir  string
	OutputDir string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Per-document deadline; zero means none.
	DocumentTimeout time.Duration

	// SQLite file caching PDF outlines by content; empty disables it.
	CachePath string

	// Heading heuristics
	HeaderMarginPercent   float64
	FooterMarginPercent   float64
	MaxWordCount          int
	MinWordCount          int
	SizeMultiplier        float64
	SignalSize            bool
	SignalBold            bool
	SignalNumbering       bool
	SignalAllCaps         bool
	RequireDifferentColor bool
	RequireCentered       bool
	CenterTolerance       float64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("API_KEY"),

		InputDir:  envOr("INPUT_DIR", "/app/input"),
		OutputDir: envOr("OUTPUT_DIR", "/app/output"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		DocumentTimeout: envDuration("DOCUMENT_TIMEOUT", 0),

		CachePath: os.Getenv("CACHE_PATH"),

		HeaderMarginPercent:   envFloat("HEADER_MARGIN_PERCENT", 10),
		FooterMarginPercent:   envFloat("FOOTER_MARGIN_PERCENT", 10),
		MaxWordCount:          envInt("MAX_WORD_COUNT", 20),
		MinWordCount:          envInt("MIN_WORD_COUNT", 1),
		SizeMultiplier:        envFloat("SIZE_MULTIPLIER", 1.15),
		SignalSize:            envBool("SIGNAL_SIZE", true),
		SignalBold:            envBool("SIGNAL_BOLD", true),
		SignalNumbering:       envBool("SIGNAL_NUMBERING", true),
		SignalAllCaps:         envBool("SIGNAL_ALL_CAPS", true),
		RequireDifferentColor: envBool("REQUIRE_DIFFERENT_COLOR", false),
		RequireCentered:       envBool("REQUIRE_CENTERED", false),
		CenterTolerance:       envFloat("CENTER_TOLERANCE", 20),
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
	if cfg.DocumentTimeout < 0 {
		cfg.DocumentTimeout = 0
	}

	return cfg
}

// Validate checks settings the batch and server cannot run without. The
// heuristics themselves are validated when the classifier is built.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("INPUT_DIR is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	return nil
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
