// Package config loads the settings of a profile analysis run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/naka-gawa/github-profile-report/internal/usecase"
)

// Config holds the settings of one run. Values come from the environment
// (optionally seeded from a .env file) and are overridden by CLI flags.
type Config struct {
	Username       string
	Token          string
	APIURL         string
	OutputDir      string
	SampleSize     int
	RequestTimeout time.Duration
	Verbose        bool
}

// Load reads .env if present and builds a Config from the environment.
// A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	sampleSize, err := strconv.Atoi(getEnv("GITHUB_PROFILE_SAMPLE_REPOS", strconv.Itoa(usecase.DefaultSampleSize)))
	if err != nil {
		return nil, fmt.Errorf("invalid GITHUB_PROFILE_SAMPLE_REPOS: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("GITHUB_REQUEST_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GITHUB_REQUEST_TIMEOUT: %w", err)
	}

	return &Config{
		Token:          getEnv("GITHUB_TOKEN", ""),
		APIURL:         getEnv("GITHUB_API_URL", ""),
		OutputDir:      getEnv("GITHUB_PROFILE_OUTPUT", ""),
		SampleSize:     sampleSize,
		RequestTimeout: timeout,
	}, nil
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	if c.Username == "" {
		return errors.New("username is required")
	}
	if c.SampleSize <= 0 {
		return fmt.Errorf("sample size must be positive, got %d", c.SampleSize)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
