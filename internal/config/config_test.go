package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.AppPort != 3006 {
		t.Errorf("expected default AppPort 3006, got %d", cfg.AppPort)
	}

	if cfg.TenantID != "test123" {
		t.Errorf("expected default TenantID 'test123', got %s", cfg.TenantID)
	}

	if cfg.TokenTTL != 8*time.Hour {
		t.Errorf("expected default TokenTTL 8h, got %s", cfg.TokenTTL)
	}

	if cfg.TokenSubject != "123" {
		t.Errorf("expected default TokenSubject '123', got %s", cfg.TokenSubject)
	}

	if cfg.MockEmail != "user@example.com" {
		t.Errorf("expected default MockEmail, got %s", cfg.MockEmail)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}

	if cfg.RateLimitEnabled() {
		t.Error("expected rate limiting disabled without REDIS_URL")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("TENANT_ID", "acme")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppPort != 9090 {
		t.Errorf("expected AppPort 9090, got %d", cfg.AppPort)
	}

	if cfg.TenantID != "acme" {
		t.Errorf("expected TenantID 'acme', got %s", cfg.TenantID)
	}

	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("expected TokenTTL 30m, got %s", cfg.TokenTTL)
	}

	if !cfg.RateLimitEnabled() {
		t.Error("expected rate limiting enabled with REDIS_URL")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("TOKEN_TTL", "forever")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable TOKEN_TTL, got nil")
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if err := loadDotenv(filepath.Join(dir, "absent.env")); err != nil {
			t.Fatalf("expected missing .env to be ignored, got %v", err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.env")
		if err := os.WriteFile(path, []byte("BAD-KEY=1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := loadDotenv(path); err == nil {
			t.Fatal("expected error for malformed .env, got nil")
		}
	})

	t.Run("valid file", func(t *testing.T) {
		t.Setenv("DOTENV_TEST_TENANT", "")
		os.Unsetenv("DOTENV_TEST_TENANT")
		path := filepath.Join(dir, "good.env")
		if err := os.WriteFile(path, []byte("DOTENV_TEST_TENANT=acme\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := loadDotenv(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := os.Getenv("DOTENV_TEST_TENANT"); got != "acme" {
			t.Errorf("expected DOTENV_TEST_TENANT 'acme', got %q", got)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		AppPort:   3006,
		JWTSecret: "secret",
		TenantID:  "test123",
		TokenTTL:  time.Hour,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"empty tenant", func(c *Config) { c.TenantID = "" }, true},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }, true},
		{"negative ttl", func(c *Config) { c.TokenTTL = -time.Minute }, true},
		{"port too large", func(c *Config) { c.AppPort = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{AppEnv: "production"}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction to return true")
	}

	cfg.AppEnv = "development"
	if cfg.IsProduction() {
		t.Error("expected IsProduction to return false")
	}
}
