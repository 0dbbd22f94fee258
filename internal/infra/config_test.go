package infra

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig should fail without BACKEND_URL")
	}
}

func TestLoadConfigRejectsRelativeBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "backend:9000")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig should reject a URL without scheme and host")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend:9000/")
	t.Setenv("PORT", "")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("DEFAULT_LOCALE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BackendURL != "http://backend:9000" {
		t.Fatalf("BackendURL mismatch: got %q", cfg.BackendURL)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want 8080", cfg.Port)
	}
	if cfg.HTTPWriteTimeout != 90*time.Second {
		t.Fatalf("HTTPWriteTimeout mismatch: got %s", cfg.HTTPWriteTimeout)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("DefaultLocale mismatch: got %q", cfg.DefaultLocale)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigParsesOriginList(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://gen.example.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://meme.example.com, ,http://localhost:3000 ")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := []string{"https://meme.example.com", "http://localhost:3000"}
	if len(cfg.CORSAllowedOrigins) != len(expected) {
		t.Fatalf("CORSAllowedOrigins mismatch: got %#v want %#v", cfg.CORSAllowedOrigins, expected)
	}
	for i, origin := range expected {
		if cfg.CORSAllowedOrigins[i] != origin {
			t.Fatalf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], origin)
		}
	}
	if cfg.RateLimitPerMin != 30 {
		t.Fatalf("RateLimitPerMin should fall back to 30, got %d", cfg.RateLimitPerMin)
	}
}

func TestNewHTTPServerRaisesShortWriteTimeout(t *testing.T) {
	cfg := &Config{Port: "9090", HTTPWriteTimeout: 10 * time.Second}
	srv := NewHTTPServer(cfg, nil)
	if srv.server.WriteTimeout != minWriteTimeout {
		t.Fatalf("WriteTimeout = %s, want %s", srv.server.WriteTimeout, minWriteTimeout)
	}
	if srv.Addr() != ":9090" {
		t.Fatalf("Addr = %q", srv.Addr())
	}

	cfg.HTTPWriteTimeout = 2 * time.Minute
	if got := NewHTTPServer(cfg, nil).server.WriteTimeout; got != 2*time.Minute {
		t.Fatalf("WriteTimeout = %s, want 2m", got)
	}
}
