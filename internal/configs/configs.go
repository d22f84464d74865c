/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures the chat client by reading operating system environment variables, including
the running environment, the chat server URL, the username to register, the local browser
surface port, CORS allowed origins, the outbound queue size and the submit rate limit.
*/
package configs

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Settings
	Environment string
	Port        int

	// Chat Server Settings
	ServerURL     string
	Username      string
	SendQueueSize int

	// Security Settings
	AllowedOrigins []string
	SubmitRate     float64
	SubmitBurst    int
}

// IsDevelopment reports whether the application runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type conversions and validation.
// It returns a pointer to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Settings ---
	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Port
	port, err := intEnv("PORT", 3000)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Chat Server Settings ---
	// ServerURL
	cfg.ServerURL = os.Getenv("CHAT_SERVER_URL")
	if cfg.ServerURL == "" {
		cfg.ServerURL = "ws://127.0.0.1:8080"
	}
	u, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid CHAT_SERVER_URL environment variable: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("CHAT_SERVER_URL must use the ws or wss scheme, got %q", u.Scheme)
	}

	// Username. An empty value is reported when the session starts.
	cfg.Username = strings.TrimSpace(os.Getenv("CHAT_USERNAME"))

	// SendQueueSize
	queueSize, err := intEnv("SEND_QUEUE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	if queueSize <= 0 {
		return nil, fmt.Errorf("SEND_QUEUE_SIZE must be positive, got %d", queueSize)
	}
	cfg.SendQueueSize = queueSize

	// --- Security Settings ---
	// AllowedOrigins
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	cfg.AllowedOrigins = []string{}
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	// SubmitRate
	rateStr := os.Getenv("SUBMIT_RATE")
	if rateStr == "" {
		rateStr = "5"
	}
	submitRate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SUBMIT_RATE environment variable: %w", err)
	}
	if submitRate <= 0 {
		return nil, fmt.Errorf("SUBMIT_RATE must be positive, got %v", submitRate)
	}
	cfg.SubmitRate = submitRate

	// SubmitBurst
	burst, err := intEnv("SUBMIT_BURST", 10)
	if err != nil {
		return nil, err
	}
	if burst <= 0 {
		return nil, fmt.Errorf("SUBMIT_BURST must be positive, got %d", burst)
	}
	cfg.SubmitBurst = burst

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}
