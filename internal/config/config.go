package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const insecureSecret = "supersecretkey"

type Config struct {
	Addr           string        `yaml:"addr"`
	JWTSecret      string        `yaml:"jwt_secret"`
	Issuer         string        `yaml:"issuer"`
	APITimeout     time.Duration `yaml:"timeout"`
	DatabasePath   string        `yaml:"database_path"`
	TokenDuration  time.Duration `yaml:"token_duration"`
	MigrateOnStart bool          `yaml:"migrate_on_start"`
	AllowedOrigin  string        `yaml:"allowed_origin"`
	FrontendURL    string        `yaml:"frontend_url"`
	PublicBaseURL  string        `yaml:"public_base_url"`
	BcryptCost     int           `yaml:"bcrypt_cost"`
	OTPTTL         time.Duration `yaml:"otp_ttl"`
	MaxResumeBytes int64         `yaml:"max_resume_bytes"`
	SMTP           SMTPConfig    `yaml:"smtp"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Enabled reports whether outbound mail should go through SMTP.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// LoadConfig builds the configuration from defaults, an optional .env file, BOARDS_*
// environment variables and finally the YAML file at path, if any.
func LoadConfig(path string) (*Config, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	cfg := &Config{
		Addr:           getEnv("BOARDS_ADDR", ":3001"),
		JWTSecret:      getEnv("BOARDS_JWT_SECRET", insecureSecret),
		Issuer:         getEnv("BOARDS_ISSUER", "boards"),
		APITimeout:     getEnvDuration("BOARDS_TIMEOUT", 15*time.Second),
		DatabasePath:   getEnv("BOARDS_DATABASE_PATH", "boards.db"),
		TokenDuration:  getEnvDuration("BOARDS_TOKEN_DURATION", 24*time.Hour),
		MigrateOnStart: getEnv("BOARDS_MIGRATE_ON_START", "true") == "true",
		AllowedOrigin:  getEnv("BOARDS_ALLOWED_ORIGIN", "http://localhost:3000"),
		FrontendURL:    getEnv("BOARDS_FRONTEND_URL", "http://localhost:3000"),
		PublicBaseURL:  getEnv("BOARDS_PUBLIC_BASE_URL", "http://localhost:3001"),
		BcryptCost:     getEnvInt("BOARDS_BCRYPT_COST", 10),
		OTPTTL:         getEnvDuration("BOARDS_OTP_TTL", 5*time.Minute),
		MaxResumeBytes: int64(getEnvInt("BOARDS_MAX_RESUME_BYTES", 5<<20)),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@localhost"),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations the servers cannot run with. The default signing
// secret is only accepted when BOARDS_ENV=development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.DatabasePath == "" {
		return errors.New("database_path is required")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.JWTSecret == insecureSecret && os.Getenv("BOARDS_ENV") != "development" {
		return errors.New("jwt_secret uses the insecure default; set BOARDS_JWT_SECRET or BOARDS_ENV=development")
	}
	if c.APITimeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.TokenDuration <= 0 {
		return errors.New("token_duration must be positive")
	}
	if c.OTPTTL <= 0 {
		return errors.New("otp_ttl must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.MaxResumeBytes <= 0 {
		return errors.New("max_resume_bytes must be positive")
	}
	if c.SMTP.Enabled() && c.SMTP.Port == 0 {
		return errors.New("smtp.port is required when smtp.host is set")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}
