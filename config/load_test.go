package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:3001" {
		t.Fatalf("listen addr %q", cfg.ListenAddr)
	}
	if cfg.Store.RetryBackoff != 5*time.Second {
		t.Fatalf("retry backoff %v", cfg.Store.RetryBackoff)
	}
	if cfg.Reports.DateRequired {
		t.Fatalf("date must be optional by default")
	}
	if cfg.IsProduction() {
		t.Fatalf("default env must not be production")
	}
	found := false
	for _, origin := range cfg.AllowedOrigins {
		if origin == "http://localhost:5500" {
			found = true
		}
	}
	if !found {
		t.Fatalf("default allow-list missing localhost:5500: %v", cfg.AllowedOrigins)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CG_APP_ENV", "production")
	t.Setenv("CG_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CG_REPORTS_DATE_REQUIRED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production mode")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins %v", cfg.AllowedOrigins)
	}
	if !cfg.Reports.DateRequired {
		t.Fatalf("date-required flag not applied")
	}
}

func TestIsProductionIsCaseInsensitive(t *testing.T) {
	cfg := &AppConfig{AppEnv: " Production "}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
	cfg.AppEnv = "development"
	if cfg.IsProduction() {
		t.Fatalf("development is not production")
	}
}
