// Package config reads service settings from the environment and optional
// .env files.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr         string
	StoreDriver  string
	DatabaseDSN  string
	DBTimeout    time.Duration
	LogLevel     string
	DemoData     bool
	BorrowPeriod time.Duration
	SubmitDelay  time.Duration

	SessionSecret string
	// SecretGenerated is set when SESSION_SECRET was empty and a random one
	// was created. Sessions then do not survive a restart.
	SecretGenerated bool
	SessionTTL      time.Duration
	CookieSecure    bool

	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
	MaxBodyBytes   int64
	EnableHSTS     bool
}

// LoadEnvFiles reads .env and .env.local without overriding variables that
// are already set.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_TIMEOUT", "3s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEMO_DATA", false)
	v.SetDefault("BORROW_PERIOD", 14)
	v.SetDefault("SUBMIT_DELAY", "1s")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("ENABLE_HSTS", false)
}

// Load builds a Config from the process environment.
func Load() (Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	c := Config{
		Addr:           v.GetString("APP_ADDR"),
		StoreDriver:    strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseDSN:    v.GetString("DB_DSN"),
		DBTimeout:      v.GetDuration("DB_TIMEOUT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		DemoData:       v.GetBool("DEMO_DATA"),
		BorrowPeriod:   time.Duration(v.GetInt("BORROW_PERIOD")) * 24 * time.Hour,
		SubmitDelay:    v.GetDuration("SUBMIT_DELAY"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
		CookieSecure:   v.GetBool("COOKIE_SECURE"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		MaxBodyBytes:   v.GetInt64("MAX_BODY_BYTES"),
		EnableHSTS:     v.GetBool("ENABLE_HSTS"),
	}

	if c.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		c.SessionSecret = secret
		c.SecretGenerated = true
	}
	return c, c.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("DB_DSN is required when STORE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMemory, DriverPostgres, c.StoreDriver))
	}
	if c.BorrowPeriod <= 0 {
		errs = append(errs, errors.New("BORROW_PERIOD must be a positive number of days"))
	}
	if c.SubmitDelay < 0 {
		errs = append(errs, errors.New("SUBMIT_DELAY must not be negative"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

// RedactedDSN hides the credentials of DatabaseDSN for logging.
func (c Config) RedactedDSN() string {
	return RedactDSN(c.DatabaseDSN)
}

func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
