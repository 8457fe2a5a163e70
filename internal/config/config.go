// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Port             string
	AllowedOrigin    string
	AWSRegion        string
	S3Bucket         string
	CloudfrontDomain string

	// AssetDir overrides the font and templates from a local directory.
	AssetDir    string
	AssetPrefix string

	BackgroundDir    string
	BackgroundPrefix string

	RateLimit     int
	RateWindowSec int

	// PublishImages uploads slider images to S3 and returns CloudFront URLs.
	PublishImages bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		AllowedOrigin:    getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		AWSRegion:        getEnv("AWS_REGION", "ap-northeast-1"),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		CloudfrontDomain: getEnv("CLOUDFRONT_DOMAIN", ""),
		AssetDir:         getEnv("ASSET_DIR", ""),
		AssetPrefix:      getEnv("ASSET_PREFIX", "captcha/assets/"),
		BackgroundDir:    getEnv("BACKGROUND_DIR", ""),
		BackgroundPrefix: getEnv("BACKGROUND_PREFIX", "backgrounds/"),
	}

	var err error
	if cfg.RateLimit, err = strconv.Atoi(getEnv("RATE_LIMIT", "60")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	if cfg.RateWindowSec, err = strconv.Atoi(getEnv("RATE_WINDOW_SEC", "60")); err != nil {
		return nil, fmt.Errorf("invalid RATE_WINDOW_SEC: %w", err)
	}
	if cfg.PublishImages, err = strconv.ParseBool(getEnv("PUBLISH_IMAGES", "false")); err != nil {
		return nil, fmt.Errorf("invalid PUBLISH_IMAGES: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate port is a number
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.New("invalid port: must be a number")
	}

	if c.RateLimit <= 0 {
		return errors.New("invalid rate limit: must be positive")
	}
	if c.RateWindowSec <= 0 {
		return errors.New("invalid rate window: must be positive")
	}

	if c.PublishImages && (c.S3Bucket == "" || c.CloudfrontDomain == "") {
		return errors.New("publishing images requires S3_BUCKET and CLOUDFRONT_DOMAIN")
	}

	return nil
}

// RateWindow returns the rate limit window as a duration.
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateWindowSec) * time.Second
}

// UseS3 reports whether an S3 bucket is configured.
func (c *Config) UseS3() bool {
	return c.S3Bucket != ""
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
