package folio

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path used when no DB_* parameters are set (default "data/folio.db")
	Database     DatabaseConfig

	AdminEmail    string // Seeded admin account, created on startup when missing
	AdminPassword string
	SessionSecret string // Required: session encryption and token signing secret
	CookieSecure  bool   // Set true for HTTPS

	CORSOrigins []string // Origins allowed to call /api/ from the browser

	Redis           RedisConfig
	ContentCacheTTL time.Duration // Public content cache TTL (default 5min)

	MetricsEnabled bool
	LogLevel       slog.Level
}

// DatabaseConfig holds PostgreSQL connection parameters. When none of them
// are set the site runs on a local SQLite file instead.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSL      bool
}

// RedisConfig enables the Redis content cache backend when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.Database.Port == "" {
		c.Database.Port = "5432"
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
}

// Validate checks the configuration before anything is opened.
func (c SiteConfig) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}
	return c.Database.Validate()
}

// Validate rejects a partial set of PostgreSQL parameters, naming the
// missing ones. Either all of them or none must be set.
func (d DatabaseConfig) Validate() error {
	if missing := d.missing(); len(missing) > 0 && len(missing) < 4 {
		return fmt.Errorf("folio: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Postgres reports whether the full set of PostgreSQL parameters is present.
func (d DatabaseConfig) Postgres() bool {
	return len(d.missing()) == 0
}

func (d DatabaseConfig) missing() []string {
	var missing []string
	for _, p := range []struct{ env, val string }{
		{"DB_HOST", d.Host},
		{"DB_NAME", d.Name},
		{"DB_USER", d.User},
		{"DB_PASSWORD", d.Password},
	} {
		if p.val == "" {
			missing = append(missing, p.env)
		}
	}
	return missing
}

func (d DatabaseConfig) dsn() string {
	sslmode := "disable"
	if d.SSL {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, sslmode)
}

// LoadConfig builds a SiteConfig from environment variables. It only
// rejects malformed values; App.Setup checks that serving is possible.
func LoadConfig() (SiteConfig, error) {
	cfg := SiteConfig{
		Name:         os.Getenv("SITE_NAME"),
		URL:          os.Getenv("SITE_URL"),
		Description:  os.Getenv("SITE_DESCRIPTION"),
		Author:       os.Getenv("SITE_AUTHOR"),
		Addr:         os.Getenv("ADDR"),
		DatabasePath: os.Getenv("DATABASE_PATH"),
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			SSL:      os.Getenv("DB_SSL") == "true",
		},
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		CookieSecure:   os.Getenv("COOKIE_SECURE") == "true",
		CORSOrigins:    FilterEmpty(strings.Split(os.Getenv("CORS_ORIGINS"), ",")),
		MetricsEnabled: os.Getenv("METRICS_ENABLED") == "true",
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("folio: invalid REDIS_DB %q: %w", v, err)
		}
		cfg.Redis.DB = db
	}
	if v := os.Getenv("CONTENT_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("folio: invalid CONTENT_CACHE_TTL %q: %w", v, err)
		}
		cfg.ContentCacheTTL = ttl
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("folio: invalid LOG_LEVEL %q: %w", v, err)
		}
	}

	cfg.setDefaults()
	return cfg, cfg.Database.Validate()
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithStore injects an already opened store instead of opening one from the config.
func WithStore(s *Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
