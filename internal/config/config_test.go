package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
}

func TestLoad_RequiresSupabaseURL(t *testing.T) {
	setCredentials(t)
	os.Unsetenv("SUPABASE_URL")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when SUPABASE_URL is missing")
	}
}

func TestLoad_RequiresAnonKey(t *testing.T) {
	setCredentials(t)
	os.Unsetenv("SUPABASE_ANON_KEY")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when SUPABASE_ANON_KEY is missing")
	}
}

func TestLoad_RequiresServiceRoleKey(t *testing.T) {
	setCredentials(t)
	os.Unsetenv("SUPABASE_SERVICE_ROLE_KEY")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when SUPABASE_SERVICE_ROLE_KEY is missing")
	}
}

func TestLoad_WithCredentials(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SupabaseURL != "https://demo.supabase.co" {
		t.Errorf("expected SUPABASE_URL to be set, got %s", cfg.SupabaseURL)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DBMaxConns != 10 {
		t.Errorf("expected default max conns 10, got %d", cfg.DBMaxConns)
	}
	if cfg.BaaSTimeout != 10*time.Second {
		t.Errorf("expected default BaaS timeout 10s, got %s", cfg.BaaSTimeout)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected default CORS origins [*], got %v", cfg.CORSOrigins)
	}
}

func TestLoad_CORSOriginsList(t *testing.T) {
	setCredentials(t)
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
	if !c.IsProduction() {
		t.Error("expected IsProduction() to return true for production")
	}
}

func TestConfig_RESTURL(t *testing.T) {
	c := &Config{SupabaseURL: "https://demo.supabase.co/"}
	if got := c.RESTURL(); got != "https://demo.supabase.co/rest/v1" {
		t.Errorf("RESTURL() = %s", got)
	}
}

func validConfig() *Config {
	return &Config{
		Env:         "development",
		SupabaseURL: "https://demo.supabase.co",
		BaaSTimeout: 10 * time.Second,
		DBMaxConns:  10,
		DBMinConns:  1,
	}
}

func TestValidate_Development(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_ProductionRequiresJWTSecret(t *testing.T) {
	c := validConfig()
	c.Env = "production"
	if err := c.Validate(); err == nil {
		t.Error("expected error without SUPABASE_JWT_SECRET in production")
	}
	c.SupabaseJWTSecret = "secret"
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_ProductionRequiresHTTPS(t *testing.T) {
	c := validConfig()
	c.Env = "production"
	c.SupabaseJWTSecret = "secret"
	c.SupabaseURL = "http://demo.supabase.co"
	if err := c.Validate(); err == nil {
		t.Error("expected error for plain http in production")
	}
}

func TestValidate_UnknownEnv(t *testing.T) {
	c := validConfig()
	c.Env = "staging"
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown ENV")
	}
}

func TestValidate_ConnBounds(t *testing.T) {
	c := validConfig()
	c.DBMinConns = 20
	if err := c.Validate(); err == nil {
		t.Error("expected error when min conns exceed max conns")
	}
}

func TestRequireDatabase(t *testing.T) {
	c := validConfig()
	if err := c.RequireDatabase(); err == nil {
		t.Error("expected error without DATABASE_URL")
	}
	c.DatabaseURL = "postgres://localhost/portal"
	if err := c.RequireDatabase(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := validConfig()
	c.Env = "staging"
	c.BaaSTimeout = 0
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "ENV") || !strings.Contains(msg, "BAAS_TIMEOUT") {
		t.Errorf("expected both problems reported, got %q", msg)
	}
}
