// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/image-crop-mcp/internal/imaging"
)

// Config holds the server configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is "text" or "json". Logs always go to stderr.
	LogFormat string

	// PreviewMaxSize bounds preview sides when a request gives no size.
	PreviewMaxSize int

	// Output encoders
	JPEGQuality  int
	WebPLossless bool
	WebPQuality  int

	// Workers caps concurrently running image jobs.
	Workers int

	// MetricsAddr enables a Prometheus /metrics listener, e.g. ":9090".
	MetricsAddr string
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		LogLevel:       "info",
		LogFormat:      "text",
		PreviewMaxSize: imaging.DefaultPreviewSize,
		JPEGQuality:    imaging.DefaultJPEGQuality,
		WebPLossless:   true,
		WebPQuality:    90,
		Workers:        runtime.NumCPU(),
	}
}

// Load reads a .env file from the working directory if present, then
// overrides the defaults with CROP_MCP_* environment variables. A value
// that does not parse is an error, the same as one out of range.
func Load() (Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	def := Default()
	var env envReader
	cfg := Config{
		LogLevel:       strings.ToLower(getEnv("CROP_MCP_LOG_LEVEL", def.LogLevel)),
		LogFormat:      strings.ToLower(getEnv("CROP_MCP_LOG_FORMAT", def.LogFormat)),
		PreviewMaxSize: env.getInt("CROP_MCP_PREVIEW_MAX_SIZE", def.PreviewMaxSize),
		JPEGQuality:    env.getInt("CROP_MCP_JPEG_QUALITY", def.JPEGQuality),
		WebPLossless:   env.getBool("CROP_MCP_WEBP_LOSSLESS", def.WebPLossless),
		WebPQuality:    env.getInt("CROP_MCP_WEBP_QUALITY", def.WebPQuality),
		Workers:        env.getInt("CROP_MCP_WORKERS", def.Workers),
		MetricsAddr:    getEnv("CROP_MCP_METRICS_ADDR", def.MetricsAddr),
	}

	if env.err != nil {
		return Config{}, env.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	if c.PreviewMaxSize < 1 {
		return fmt.Errorf("preview max size must be positive, got %d", c.PreviewMaxSize)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	if c.WebPQuality < 0 || c.WebPQuality > 100 {
		return fmt.Errorf("webp quality must be between 0 and 100, got %d", c.WebPQuality)
	}
	if c.Workers < 1 || c.Workers > 256 {
		return fmt.Errorf("workers must be between 1 and 256, got %d", c.Workers)
	}
	return nil
}

// EncodeOptions returns the encoder settings for crop output.
func (c Config) EncodeOptions() imaging.EncodeOptions {
	return imaging.EncodeOptions{
		JPEGQuality:  c.JPEGQuality,
		WebPLossless: c.WebPLossless,
		WebPQuality:  float32(c.WebPQuality),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envReader parses typed variables and collects every parse failure.
type envReader struct {
	err error
}

func (e *envReader) getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		e.err = errors.Join(e.err, fmt.Errorf("%s must be an integer, got %q", key, value))
		return fallback
	}
	return i
}

func (e *envReader) getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		e.err = errors.Join(e.err, fmt.Errorf("%s must be a boolean, got %q", key, value))
		return fallback
	}
	return b
}
