package folio

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"SITE_NAME", "ADDR", "DATABASE_PATH", "DB_HOST", "DB_NAME", "DB_USER", "DB_PASSWORD", "CONTENT_CACHE_TTL", "LOG_LEVEL", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "Portfolio" || cfg.Addr != ":3000" || cfg.DatabasePath != "data/folio.db" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.ContentCacheTTL != 5*time.Minute {
		t.Errorf("ContentCacheTTL = %v", cfg.ContentCacheTTL)
	}
	if cfg.Database.Postgres() {
		t.Error("no DB_* set: expected SQLite")
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "folio")
	t.Setenv("DB_USER", "folio")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_PORT", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("CONTENT_CACHE_TTL", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Database.Postgres() || cfg.Database.Port != "5432" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.ContentCacheTTL != 30*time.Second || cfg.LogLevel != slog.LevelDebug || cfg.Redis.DB != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigPartialDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "pw")
	_, err := LoadConfig()
	want := "folio: missing required environment variables: DB_NAME, DB_USER"
	if err == nil || err.Error() != want {
		t.Fatalf("err = %v, want %q", err, want)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	for key, val := range map[string]string{
		"REDIS_DB":          "zero",
		"CONTENT_CACHE_TTL": "soon",
		"LOG_LEVEL":         "loud",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("%s=%q: expected error", key, val)
			}
		})
	}
}

func TestValidateRequiresSessionSecret(t *testing.T) {
	cfg := SiteConfig{}
	cfg.setDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without SessionSecret")
	}
	cfg.SessionSecret = "x"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "5433", Name: "n", User: "u", Password: "p", SSL: true}
	want := "host=h port=5433 user=u password=p dbname=n sslmode=require TimeZone=UTC"
	if got := d.dsn(); got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("FOLIO_TEST_FORMAT", "")
	if got := EnvOr("FOLIO_TEST_FORMAT", "text"); got != "text" {
		t.Errorf("EnvOr unset = %q, want text", got)
	}
	t.Setenv("FOLIO_TEST_FORMAT", "json")
	if got := EnvOr("FOLIO_TEST_FORMAT", "text"); got != "json" {
		t.Errorf("EnvOr set = %q, want json", got)
	}
}
