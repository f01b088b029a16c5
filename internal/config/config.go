package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Document index connection
	DocIndexURL    string
	DocIndexAPIKey string

	// Dependency parser sidecar
	ParserURL      string
	ParserAPIKey   string
	ParserMaxChars int

	// Filings search
	FilingsURL      string
	FilingsAPIKey   string
	FilingsCacheTTL time.Duration

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Release index scraping
	IndexURL         string
	FetchRate        float64
	FetchBurst       int
	MaxDownloadBytes int64

	// Upload limits
	MaxUploadBytes int64

	// Temporal tables override (optional YAML file)
	TablesPath string

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocIndexURL:    envOr("DOCINDEX_URL", "http://localhost:8080"),
		DocIndexAPIKey: os.Getenv("DOCINDEX_API_KEY"),

		ParserURL:      envOr("PARSER_URL", "http://localhost:8070"),
		ParserAPIKey:   os.Getenv("PARSER_API_KEY"),
		ParserMaxChars: envInt("PARSER_MAX_CHARS", 100000),

		FilingsURL:      envOr("FILINGS_URL", "https://api.sec-api.io"),
		FilingsAPIKey:   os.Getenv("FILINGS_API_KEY"),
		FilingsCacheTTL: envDuration("FILINGS_CACHE_TTL", 24*time.Hour),

		APIKey: os.Getenv("AAERMINER_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		IndexURL:         envOr("AAER_INDEX_URL", "https://www.sec.gov/divisions/enforce/friactions.htm"),
		FetchRate:        envFloat("FETCH_RATE", 1.0),
		FetchBurst:       envInt("FETCH_BURST", 2),
		MaxDownloadBytes: envInt64("MAX_DOWNLOAD_BYTES", 52428800), // 50MB

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800),

		TablesPath: os.Getenv("TABLES_PATH"),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.ParserMaxChars <= 0 {
		cfg.ParserMaxChars = 100000
	}
	if cfg.FetchRate <= 0 {
		cfg.FetchRate = 1.0
	}
	if cfg.FetchBurst <= 0 {
		cfg.FetchBurst = 2
	}
	if cfg.MaxDownloadBytes <= 0 {
		cfg.MaxDownloadBytes = 52428800
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.FilingsCacheTTL <= 0 {
		cfg.FilingsCacheTTL = 24 * time.Hour
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocIndexAPIKey == "" {
		return fmt.Errorf("DOCINDEX_API_KEY is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("AAERMINER_API_KEY is required")
	}
	if c.FilingsAPIKey == "" {
		return fmt.Errorf("FILINGS_API_KEY is required")
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
