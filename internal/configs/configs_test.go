package configs_test

import (
	"testing"

	"yewchat/internal/configs"
)

var configKeys = []string{
	"ENVIRONMENT", "PORT", "CHAT_SERVER_URL", "CHAT_USERNAME",
	"SEND_QUEUE_SIZE", "ALLOWED_ORIGINS", "SUBMIT_RATE", "SUBMIT_BURST",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Environment != "development" || !cfg.IsDevelopment() {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.ServerURL != "ws://127.0.0.1:8080" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Username != "" {
		t.Errorf("Username = %q, want empty", cfg.Username)
	}
	if cfg.SendQueueSize != 1000 {
		t.Errorf("SendQueueSize = %d, want 1000", cfg.SendQueueSize)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("AllowedOrigins = %v, want empty", cfg.AllowedOrigins)
	}
	if cfg.SubmitRate != 5 || cfg.SubmitBurst != 10 {
		t.Errorf("submit limit = %v/%d, want 5/10", cfg.SubmitRate, cfg.SubmitBurst)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "4000")
	t.Setenv("CHAT_SERVER_URL", "wss://chat.example.com/socket")
	t.Setenv("CHAT_USERNAME", "  alice ")
	t.Setenv("SEND_QUEUE_SIZE", "16")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SUBMIT_RATE", "0.5")
	t.Setenv("SUBMIT_BURST", "2")

	cfg, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if cfg.Port != 4000 {
		t.Errorf("Port = %d, want 4000", cfg.Port)
	}
	if cfg.ServerURL != "wss://chat.example.com/socket" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Username != "alice" {
		t.Errorf("Username = %q, want alice", cfg.Username)
	}
	if cfg.SendQueueSize != 16 {
		t.Errorf("SendQueueSize = %d, want 16", cfg.SendQueueSize)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.SubmitRate != 0.5 || cfg.SubmitBurst != 2 {
		t.Errorf("submit limit = %v/%d, want 0.5/2", cfg.SubmitRate, cfg.SubmitBurst)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port not a number", "PORT", "abc"},
		{"privileged port", "PORT", "80"},
		{"port too large", "PORT", "70000"},
		{"http scheme", "CHAT_SERVER_URL", "http://127.0.0.1:8080"},
		{"unparseable url", "CHAT_SERVER_URL", "ws://[::1"},
		{"zero queue", "SEND_QUEUE_SIZE", "0"},
		{"queue not a number", "SEND_QUEUE_SIZE", "many"},
		{"negative rate", "SUBMIT_RATE", "-1"},
		{"rate not a number", "SUBMIT_RATE", "fast"},
		{"zero burst", "SUBMIT_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := configs.LoadConfig(); err == nil {
				t.Errorf("LoadConfig() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}
