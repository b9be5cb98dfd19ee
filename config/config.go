package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"agencydash/model"
)

const (
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

type FirebaseOptions struct {
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS_1"`
	ProjectID       string `env:"GOOGLE_CLOUD_PROJECT_ID"`
}

type JWTOptions struct {
	Secret        string        `env:"JWT_SECRET_KEY"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET_KEY"`
	Issuer        string        `env:"JWT_ISSUER" envDefault:"agencydash"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL" envDefault:"60m"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`
}

type LoginGuardOptions struct {
	MaxFailures   int           `env:"LOGIN_MAX_FAILURES" envDefault:"5"`
	FailureWindow time.Duration `env:"LOGIN_FAILURE_WINDOW" envDefault:"15m"`
	BlockDuration time.Duration `env:"LOGIN_BLOCK_DURATION" envDefault:"30m"`
}

type RecaptchaOptions struct {
	Enabled         bool    `env:"RECAPTCHA_ENABLED" envDefault:"false"`
	SiteKey         string  `env:"RECAPTCHA_SITE_KEY"`
	CredentialsFile string  `env:"GOOGLE_APPLICATION_CREDENTIALS_2"`
	MinScore        float32 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`
}

type RateLimitOptions struct {
	Enabled bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Auth    string `env:"RATE_LIMIT_AUTH" envDefault:"20-M"`
}

type ReportOptions struct {
	// TrueType font embedded in PDF exports; without it PDFs use cp1252.
	PDFFontFile string `env:"PDF_FONT_FILE"`
}

type MetricsOptions struct {
	Enabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"METRICS_PATH" envDefault:"/metrics"`
}

type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	GinMode     string   `env:"GIN_MODE" envDefault:"release"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"LOG_FORMAT" envDefault:"text"`
	StoreDriver string   `env:"STORE_DRIVER" envDefault:"firestore"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// Email overrides for the login gate; matched case-insensitively.
	SuperAdminEmails         []string `env:"SUPER_ADMIN_EMAILS" envSeparator:","`
	ProductionInchargeEmails []string `env:"PRODUCTION_INCHARGE_EMAILS" envSeparator:","`

	Firebase   FirebaseOptions
	JWT        JWTOptions
	LoginGuard LoginGuardOptions
	Recaptcha  RecaptchaOptions
	RateLimit  RateLimitOptions
	Metrics    MetricsOptions
	Report     ReportOptions
}

// LoadEnv loads the env files that exist, in order.
func LoadEnv(files ...string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads .env files when present and parses the process environment.
func Load() (*Config, error) {
	if _, err := LoadEnv(".env", ".env.local"); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	return Parse(env.Options{})
}

// Parse builds a Config from opts; tests pass opts.Environment directly.
func Parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" || c.JWT.RefreshSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY and JWT_REFRESH_SECRET_KEY must be set")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	switch c.StoreDriver {
	case DriverFirestore:
		if c.Firebase.CredentialsFile == "" {
			return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS_1 is required for the firestore driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverFirestore, DriverMemory, c.StoreDriver)
	}
	if c.LoginGuard.MaxFailures < 1 {
		return fmt.Errorf("LOGIN_MAX_FAILURES must be at least 1, got %d", c.LoginGuard.MaxFailures)
	}
	if c.Recaptcha.Enabled && (c.Recaptcha.SiteKey == "" || c.Firebase.ProjectID == "") {
		return fmt.Errorf("RECAPTCHA_SITE_KEY and GOOGLE_CLOUD_PROJECT_ID are required when reCAPTCHA is enabled")
	}
	return nil
}

// DashboardOverrides maps lower-cased emails to the dashboard they are
// always routed to, regardless of their employee record.
func (c *Config) DashboardOverrides() map[string]model.Dashboard {
	overrides := map[string]model.Dashboard{}
	for _, email := range c.ProductionInchargeEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			overrides[email] = model.DashboardProductionIncharge
		}
	}
	// Super admin wins when an email is listed twice.
	for _, email := range c.SuperAdminEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			overrides[email] = model.DashboardSuperAdmin
		}
	}
	return overrides
}
