package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Crawl.Limit != 50 || cfg.Crawl.Threads != 5 {
		t.Errorf("Crawl = %+v, want defaults", cfg.Crawl)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadReadsYAMLFileOverridingDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := "crawl:\n  seedUrl: \"http://example.com\"\n  limit: 7\nlogging:\n  level: \"debug\"\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Crawl.SeedURL != "http://example.com" {
		t.Errorf("Crawl.SeedURL = %q", cfg.Crawl.SeedURL)
	}
	if cfg.Crawl.Limit != 7 {
		t.Errorf("Crawl.Limit = %d, want 7", cfg.Crawl.Limit)
	}
	// Untouched fields keep their defaults.
	if cfg.Crawl.Threads != 5 {
		t.Errorf("Crawl.Threads = %d, want default 5", cfg.Crawl.Threads)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoadReturnsErrorForMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load with a missing path returned nil error")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SE_CRAWL_SEED_URL", "http://override.example.com")
	t.Setenv("SE_CRAWL_LIMIT", "99")
	t.Setenv("SE_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Crawl.SeedURL != "http://override.example.com" {
		t.Errorf("Crawl.SeedURL = %q", cfg.Crawl.SeedURL)
	}
	if cfg.Crawl.Limit != 99 {
		t.Errorf("Crawl.Limit = %d, want 99", cfg.Crawl.Limit)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
}

func TestApplyEnvOverridesIgnoresUnparseableInts(t *testing.T) {
	t.Setenv("SE_CRAWL_LIMIT", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Crawl.Limit != 50 {
		t.Errorf("Crawl.Limit = %d, want default 50 preserved on parse failure", cfg.Crawl.Limit)
	}
}

func TestPostgresConfigDSN(t *testing.T) {
	p := PostgresConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "searchengine",
		Password: "secret",
		Database: "searchengine",
		SSLMode:  "disable",
	}
	want := "host=db.internal port=5432 user=searchengine password=secret dbname=searchengine sslmode=disable"
	if got := p.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
