package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garnizeh/boards/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Addr:           ":3001",
		JWTSecret:      "strongsecret",
		APITimeout:     5 * time.Second,
		DatabasePath:   "boards.db",
		TokenDuration:  24 * time.Hour,
		BcryptCost:     10,
		OTPTTL:         5 * time.Minute,
		MaxResumeBytes: 1 << 20,
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	t.Setenv("BOARDS_ENV", "production")

	cfg := validConfig()
	cfg.JWTSecret = "supersecretkey"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT in non-development env")
	}
}

func TestValidate_InsecureJWT_AllowsDevelopment(t *testing.T) {
	t.Setenv("BOARDS_ENV", "development")

	cfg := validConfig()
	cfg.JWTSecret = "supersecretkey"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	t.Setenv("BOARDS_ENV", "development")

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{name: "EmptyAddr", mutate: func(c *config.Config) { c.Addr = "" }},
		{name: "EmptyDatabasePath", mutate: func(c *config.Config) { c.DatabasePath = "" }},
		{name: "EmptySecret", mutate: func(c *config.Config) { c.JWTSecret = "" }},
		{name: "ZeroTimeout", mutate: func(c *config.Config) { c.APITimeout = 0 }},
		{name: "ZeroTokenDuration", mutate: func(c *config.Config) { c.TokenDuration = 0 }},
		{name: "ZeroOTPTTL", mutate: func(c *config.Config) { c.OTPTTL = 0 }},
		{name: "BcryptCostTooLow", mutate: func(c *config.Config) { c.BcryptCost = 1 }},
		{name: "BcryptCostTooHigh", mutate: func(c *config.Config) { c.BcryptCost = 40 }},
		{name: "ZeroResumeLimit", mutate: func(c *config.Config) { c.MaxResumeBytes = 0 }},
		{name: "SMTPWithoutPort", mutate: func(c *config.Config) { c.SMTP.Host = "smtp.example.com"; c.SMTP.Port = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"BOARDS_ADDR", "BOARDS_JWT_SECRET", "BOARDS_DATABASE_PATH", "BOARDS_TOKEN_DURATION", "BOARDS_OTP_TTL", "SMTP_HOST"} {
		t.Setenv(k, "")
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error for empty path: %v", err)
	}

	if cfg.Addr != ":3001" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":3001")
	}
	if cfg.JWTSecret != "supersecretkey" {
		t.Fatalf("unexpected JWTSecret: got %q", cfg.JWTSecret)
	}
	if cfg.DatabasePath != "boards.db" {
		t.Fatalf("unexpected DatabasePath: got %q", cfg.DatabasePath)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Fatalf("unexpected TokenDuration: got %v want %v", cfg.TokenDuration, 24*time.Hour)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Fatalf("unexpected OTPTTL: got %v", cfg.OTPTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("unexpected BcryptCost: got %d", cfg.BcryptCost)
	}
	if cfg.SMTP.Enabled() {
		t.Fatalf("expected SMTP disabled by default")
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("BOARDS_ADDR", ":7000")
	t.Setenv("BOARDS_TOKEN_DURATION", "90m")
	t.Setenv("BOARDS_ALLOWED_ORIGIN", "https://quiz.example.com")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Fatalf("unexpected Addr: %q", cfg.Addr)
	}
	if cfg.TokenDuration != 90*time.Minute {
		t.Fatalf("unexpected TokenDuration: %v", cfg.TokenDuration)
	}
	if cfg.AllowedOrigin != "https://quiz.example.com" {
		t.Fatalf("unexpected AllowedOrigin: %q", cfg.AllowedOrigin)
	}
	if !cfg.SMTP.Enabled() || cfg.SMTP.Port != 2525 {
		t.Fatalf("unexpected SMTP config: %+v", cfg.SMTP)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("addr: \":9090\"\njwt_secret: \"filekey\"\ntimeout: \"30s\"\ndatabase_path: \"test.db\"\ntoken_duration: \"2h\"\nallowed_origin: \"https://jobs.example.com\"\nsmtp:\n  host: \"mail.example.com\"\n  port: 465\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error for file: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":9090")
	}
	if cfg.JWTSecret != "filekey" {
		t.Fatalf("unexpected JWTSecret: got %q want %q", cfg.JWTSecret, "filekey")
	}
	if cfg.DatabasePath != "test.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "test.db")
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("unexpected APITimeout: got %v want %v", cfg.APITimeout, 30*time.Second)
	}
	if cfg.TokenDuration != 2*time.Hour {
		t.Fatalf("unexpected TokenDuration: got %v want %v", cfg.TokenDuration, 2*time.Hour)
	}
	if cfg.AllowedOrigin != "https://jobs.example.com" {
		t.Fatalf("unexpected AllowedOrigin: got %q", cfg.AllowedOrigin)
	}
	if cfg.SMTP.Host != "mail.example.com" || cfg.SMTP.Port != 465 {
		t.Fatalf("unexpected SMTP: %+v", cfg.SMTP)
	}
}

func TestLoadConfig_BadPath(t *testing.T) {
	if _, err := config.LoadConfig("/path/that/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent path, got nil")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("::: not yaml :::"), 0o600); err != nil {
		t.Fatalf("failed to write bad yaml: %v", err)
	}

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatalf("expected YAML decode error, got nil")
	}
}
