package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultEmailDomains is the school-email allow-list applied at sign-up.
// Override with ALLOWED_EMAIL_DOMAINS (comma-separated). This is the single
// canonical copy; the schools table's domain_whitelist only resolves an
// email to a school, it never gates sign-up.
var defaultEmailDomains = []string{
	"princeton.edu", "mit.edu", "harvard.edu", "college.harvard.edu", "stanford.edu",
	"yale.edu", "caltech.edu", "duke.edu", "jhu.edu", "northwestern.edu",
	"upenn.edu", "cornell.edu", "uchicago.edu", "brown.edu", "columbia.edu",
	"dartmouth.edu", "ucla.edu", "berkeley.edu", "umich.edu", "rice.edu",
	"vanderbilt.edu", "cmu.edu", "usc.edu", "utexas.edu", "wustl.edu",
	"ucsd.edu", "bu.edu", "umd.edu", "bowdoin.edu", "ed.ac.uk", "amherst.edu",
	"williams.edu", "colgate.edu", "colby.edu", "middlebury.edu", "bates.edu",
	"hamilton.edu", "trincoll.edu", "skidmore.edu", "wesleyan.edu", "conncoll.edu",
	"kenyon.edu", "oberlin.edu", "macalester.edu", "stolaf.edu", "grinnell.edu",
	"fandm.edu", "dickinson.edu", "denison.edu", "oxy.edu", "whitman.edu", "reed.edu",
}

type Config struct {
	// Application
	AppName      string
	AppEnv       string
	AppURL       string
	Port         string
	SupportEmail string
	ContentPath  string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret              string
	JWTExpiry              time.Duration
	TokenEmailVerifyExpiry time.Duration

	// Sign-up gating
	AllowedEmailDomains []string
	// SignupBypassEmails skip the domain allow-list entirely. A narrow
	// backdoor for platform operators whose personal email is not on a
	// school domain. Empty by default: deployments with existing operator
	// accounts must set SIGNUP_BYPASS_EMAILS or those addresses can no
	// longer sign up.
	SignupBypassEmails []string

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string // Optional: for S3-compatible services
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:      envString("APP_NAME", "Dorm Scout"),
		AppEnv:       envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:       envRequired("APP_URL"), // Required: base URL for verification links
		Port:         envString("PORT", "8090"),
		SupportEmail: envString("SUPPORT_EMAIL", "hello@dormscout.app"),
		ContentPath:  envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/dormscout.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:              envRequired("JWT_SECRET"),
		JWTExpiry:              envDuration("JWT_EXPIRY", 168*time.Hour),               // 7 days
		TokenEmailVerifyExpiry: envDuration("TOKEN_EMAIL_VERIFY_EXPIRY", 24*time.Hour), // 24 hours

		// Sign-up gating
		AllowedEmailDomains: envStringList("ALLOWED_EMAIL_DOMAINS", defaultEmailDomains),
		SignupBypassEmails:  envStringList("SIGNUP_BYPASS_EMAILS", nil),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@dormscout.app"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (S3-compatible - required for photo uploads)
		S3Region:        envRequired("S3_REGION"),
		S3Bucket:        envString("S3_BUCKET", "dorm-photos"),
		S3AccessKey:     envRequired("S3_ACCESS_KEY"),
		S3SecretKey:     envRequired("S3_SECRET_KEY"),
		S3Endpoint:      envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 168*time.Hour),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for
// production deployments. Development allows email to fall back to log mode.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envStringList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DomainAllowed reports whether an email domain is on the sign-up allow-list.
func (c *Config) DomainAllowed(domain string) bool {
	domain = strings.ToLower(domain)
	for _, d := range c.AllowedEmailDomains {
		if d == domain {
			return true
		}
	}
	return false
}

// BypassEmail reports whether an address skips the domain check entirely.
func (c *Config) BypassEmail(email string) bool {
	email = strings.ToLower(email)
	for _, e := range c.SignupBypassEmails {
		if e == email {
			return true
		}
	}
	return false
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to attach to request contexts and client-facing responses.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:      c.AppName,
		AppEnv:       c.AppEnv,
		AppURL:       c.AppURL,
		Port:         c.Port,
		SupportEmail: c.SupportEmail,
		EmailFrom:    c.EmailFrom,
		S3Endpoint:   c.S3Endpoint,
	}
}
