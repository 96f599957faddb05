package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, "DATABASE_URL", "postgres://localhost/labsense_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DBMaxConns != 20 {
		t.Errorf("expected default max conns 20, got %d", cfg.DBMaxConns)
	}
	if cfg.DefaultTenant != "default" {
		t.Errorf("expected default tenant, got %s", cfg.DefaultTenant)
	}
	if cfg.ExtractorTimeout != 60 {
		t.Errorf("expected default extractor timeout 60, got %d", cfg.ExtractorTimeout)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	setEnv(t, "DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestResolvedAuthMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit", Config{AuthMode: "jwt", Env: "development"}, "jwt"},
		{"dev inferred", Config{Env: "development"}, "development"},
		{"production inferred", Config{Env: "production"}, "jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ResolvedAuthMode(); got != tt.want {
				t.Errorf("ResolvedAuthMode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Env: "production", ExtractorURL: "http://extractor:9000", ExtractorTimeout: 60}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for jwt mode without JWT_SECRET")
	}

	cfg.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.ExtractorURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for production without EXTRACTOR_URL")
	}

	dev := &Config{Env: "development", ExtractorTimeout: 60}
	if err := dev.Validate(); err != nil {
		t.Errorf("unexpected error in development: %v", err)
	}

	dev.ExtractorTimeout = 0
	if err := dev.Validate(); err == nil {
		t.Error("expected error for non-positive extractor timeout")
	}
}
