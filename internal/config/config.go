// Package config loads server configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// AllowedOrigins is the CORS allowlist, comma-joined for Fiber.
	AllowedOrigins string

	// MaxUploadBytes bounds the uploaded PDF size.
	MaxUploadBytes int64

	// MinQuestions and MaxQuestions bound the question_count form field.
	MinQuestions int
	MaxQuestions int

	// MinExtractedChars is the minimum extracted text length required
	// before generation is attempted.
	MinExtractedChars int
}

// Load reads configuration from a .env file (when present) and the
// process environment.
func Load() Config {
	// Missing .env is fine, system environment wins either way.
	_ = godotenv.Load()

	cfg := Config{
		Addr:              ":8000",
		AllowedOrigins:    "http://localhost:3000",
		MaxUploadBytes:    10 * 1024 * 1024,
		MinQuestions:      5,
		MaxQuestions:      20,
		MinExtractedChars: 100,
	}

	if addr := os.Getenv("QUILLIUM_ADDR"); addr != "" {
		cfg.Addr = addr
	} else if port := os.Getenv("BACKEND_PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = origins
	}

	return cfg
}
