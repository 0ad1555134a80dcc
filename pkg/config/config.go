// Package config loads application configuration from YAML files with
// environment-variable overrides; loaded values are not validated. It provides typed structs for
// every subsystem the engine touches: the crawler, the query processor, the
// optional Redis/Kafka/Postgres tiers, and logging.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Crawl    CrawlConfig    `yaml:"crawl"`
	Index    IndexConfig    `yaml:"index"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CrawlConfig controls the crawler and the shared work queue it and the
// query processor run on.
type CrawlConfig struct {
	SeedURL   string `yaml:"seedUrl"`
	Limit     int    `yaml:"limit"`
	Threads   int    `yaml:"threads"`
	Redirects int    `yaml:"redirects"`
}

// IndexConfig controls where JSON exports are written.
type IndexConfig struct {
	IndexPath   string `yaml:"indexPath"`
	CountsPath  string `yaml:"countsPath"`
	ResultsPath string `yaml:"resultsPath"`
}

// PostgresConfig holds connection parameters for the external user store.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// RedisConfig holds connection and caching parameters for the optional
// query-result cache tier. A blank Addr disables the tier entirely.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// KafkaConfig holds broker and topic settings for the optional
// document-indexed event publisher. Empty Brokers disables publishing.
type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	IndexedTopic string   `yaml:"indexedTopic"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if path is non-empty) and applies
// environment-variable overrides, returning a Config populated with
// sensible defaults for anything left unset.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Crawl: CrawlConfig{
			Limit:     50,
			Threads:   5,
			Redirects: 3,
		},
		Index: IndexConfig{
			IndexPath:   "index.json",
			CountsPath:  "counts.json",
			ResultsPath: "results.json",
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "searchengine",
			User:            "searchengine",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			PoolSize: 10,
			CacheTTL: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
		},
	}
}

// applyEnvOverrides reads SE_*-prefixed environment variables and overrides
// the corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SE_CRAWL_SEED_URL"); v != "" {
		cfg.Crawl.SeedURL = v
	}
	if v := os.Getenv("SE_CRAWL_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Crawl.Limit = n
		}
	}
	if v := os.Getenv("SE_CRAWL_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Crawl.Threads = n
		}
	}
	if v := os.Getenv("SE_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("SE_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("SE_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SE_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
