// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("STORE_TYPE", "sql")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.StoreType != StoreSQL {
		t.Errorf("expected sql store, got %s", cfg.StoreType)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("expected UTC location, got %v (%v)", loc, err)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_SECRET", "env-secret")

	cfg, err := ParseFlags([]string{"-p", "8080", "-s", "memory", "-token-secret", "cli-secret"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.TokenSecret != "cli-secret" {
		t.Errorf("expected cli-secret, got %s", cfg.TokenSecret)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_TYPE", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("TOKEN_SECRET", "s")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.StoreType != StoreFile || cfg.DataDir != "./data" {
		t.Errorf("unexpected store defaults: %s %s", cfg.StoreType, cfg.DataDir)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing secret", map[string]string{"TOKEN_SECRET": ""}, nil},
		{"bad port", map[string]string{"TOKEN_SECRET": "s", "PORT": "abc"}, nil},
		{"sql without url", map[string]string{"TOKEN_SECRET": "s", "DATABASE_URL": ""}, []string{"-s", "sql"}},
		{"redis without url", map[string]string{"TOKEN_SECRET": "s", "REDIS_URL": ""}, []string{"-s", "redis"}},
		{"unknown store", map[string]string{"TOKEN_SECRET": "s"}, []string{"-s", "s3"}},
		{"bad time zone", map[string]string{"TOKEN_SECRET": "s"}, []string{"-tz", "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseTokenFlags(t *testing.T) {
	req, err := ParseTokenFlags([]string{"-uid", "alice", "-role", "seller", "-ttl", "2h"})
	if err != nil {
		t.Fatal(err)
	}
	if req.UID != "alice" || req.Role != "seller" || req.TTL != 2*time.Hour {
		t.Errorf("unexpected request: %+v", req)
	}

	if _, err := ParseTokenFlags([]string{"-role", "admin"}); err == nil {
		t.Error("expected error for missing uid")
	}
	if _, err := ParseTokenFlags([]string{"-uid", "bob", "-role", "owner"}); err == nil {
		t.Error("expected error for unknown role")
	}
	if _, err := ParseTokenFlags([]string{"-uid", "bob", "-role", "admin", "-ttl", "-1h"}); err == nil {
		t.Error("expected error for negative ttl")
	}
}

func TestSettingsDefaults(t *testing.T) {
	// No settings file in the search paths: defaults apply
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	s, err := NewSettingsManager("").Load()
	if err != nil {
		t.Fatal(err)
	}
	if s.Retention.Sales != 12*time.Hour || s.Retention.Winners != 24*time.Hour || s.Retention.Results != 7*24*time.Hour {
		t.Errorf("unexpected retention defaults: %+v", s.Retention)
	}
	if !s.CircuitBreaker.Enabled || s.CircuitBreaker.FailureRatio != 0.6 {
		t.Errorf("unexpected breaker defaults: %+v", s.CircuitBreaker)
	}
}

func TestSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lottohub.yaml")
	content := "retention:\n  sales: 6h\n  winners: 0s\nredis:\n  retry_attempts: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewSettingsManager(path)
	s, err := m.Load()
	if err != nil {
		t.Fatal(err)
	}
	if s.Retention.Sales != 6*time.Hour {
		t.Errorf("expected 6h sales retention, got %v", s.Retention.Sales)
	}
	if s.Retention.Winners != 0 {
		t.Errorf("expected disabled winner retention, got %v", s.Retention.Winners)
	}
	if s.Redis.RetryAttempts != 5 {
		t.Errorf("expected 5 retry attempts, got %d", s.Redis.RetryAttempts)
	}
	if m.Current() != s {
		t.Error("Current() should return the loaded settings")
	}
}

func TestSettingsValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("circuit_breaker:\n  failure_ratio: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSettingsManager(path).Load(); err == nil {
		t.Error("expected validation error")
	}
}
