package config

import "geositemap/pkg/logger"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Site     SiteConfig     `mapstructure:"site"`
	Sitemap  SitemapConfig  `mapstructure:"sitemap"`
	Ping     PingConfig     `mapstructure:"ping"`
	Logger   logger.Config  `mapstructure:"logger"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "postgres" or "sqlite"
	DSN    string `mapstructure:"dsn"`
}

type SiteConfig struct {
	Domain           string   `mapstructure:"domain"`
	SiteRoot         string   `mapstructure:"site_root"`
	SubdomainRouting bool     `mapstructure:"subdomain_routing"`
	Keyword          string   `mapstructure:"keyword"`
	StaticPages      []string `mapstructure:"static_pages"`
}

// SitemapConfig exposes the pagination constants. DefaultFileCount is used
// when the city count query fails; it is tuned independently of MaxBatches,
// so a failing count query combined with more rows than
// DefaultFileCount*PageCapacity leaves the tail uncovered by the index.
type SitemapConfig struct {
	PageCapacity     int `mapstructure:"page_capacity"`
	BatchSize        int `mapstructure:"batch_size"`
	MaxBatches       int `mapstructure:"max_batches"`
	DefaultFileCount int `mapstructure:"default_file_count"`
	MinFiles         int `mapstructure:"min_files"`
	MaxFiles         int `mapstructure:"max_files"`
}

type PingConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Endpoints []string `mapstructure:"endpoints"`
	TimeoutMs int      `mapstructure:"timeout_ms"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	GetConfig() *Config
}
