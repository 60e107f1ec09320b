package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("RENDER_BACKEND_URL", "https://render.example.com")
	t.Setenv("POLL_INTERVAL_SECONDS", "")
	t.Setenv("POLL_MAX_TICKS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("PollInterval mismatch: %v", cfg.PollInterval)
	}
	if cfg.PollMaxTicks != 60 {
		t.Fatalf("PollMaxTicks mismatch: %d", cfg.PollMaxTicks)
	}
	if cfg.ResultRetention != 30*time.Second {
		t.Fatalf("ResultRetention mismatch: %v", cfg.ResultRetention)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("AllowedOrigins mismatch: %#v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigRequiresBackendURL(t *testing.T) {
	t.Setenv("RENDER_BACKEND_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when RENDER_BACKEND_URL is unset")
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("RENDER_BACKEND_URL", "https://render.example.com")
	t.Setenv("POLL_INTERVAL_SECONDS", "2")
	t.Setenv("POLL_MAX_TICKS", "10")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.PollInterval != 2*time.Second || cfg.PollMaxTicks != 10 {
		t.Fatalf("poll policy mismatch: %v / %d", cfg.PollInterval, cfg.PollMaxTicks)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://staging.example.com" {
		t.Fatalf("AllowedOrigins mismatch: %#v", cfg.AllowedOrigins)
	}
}
