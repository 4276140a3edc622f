package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	m.setupViper(configPath)

	if err := m.viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m.config = &config
	return &config, nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) setupViper(configPath string) {
	m.viper.SetConfigFile(configPath)

	m.viper.SetEnvPrefix("GEOSITEMAP")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()
}

func applyDefaults(config *Config) {
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Database.Driver == "" {
		config.Database.Driver = "postgres"
	}
	if config.Sitemap.PageCapacity == 0 {
		config.Sitemap.PageCapacity = 10000
	}
	if config.Sitemap.BatchSize == 0 {
		config.Sitemap.BatchSize = 1000
	}
	if config.Sitemap.MaxBatches == 0 {
		config.Sitemap.MaxBatches = 50
	}
	if config.Sitemap.DefaultFileCount == 0 {
		config.Sitemap.DefaultFileCount = 4
	}
	if config.Sitemap.MinFiles == 0 {
		config.Sitemap.MinFiles = 1
	}
	if config.Sitemap.MaxFiles == 0 {
		config.Sitemap.MaxFiles = 10
	}
	if len(config.Site.StaticPages) == 0 {
		config.Site.StaticPages = []string{"/", "/about/", "/contact/", "/privacy/", "/terms/"}
	}
	if len(config.Ping.Endpoints) == 0 {
		config.Ping.Endpoints = []string{
			"https://www.google.com/ping",
			"https://www.bing.com/ping",
		}
	}
	if config.Ping.TimeoutMs == 0 {
		config.Ping.TimeoutMs = 10000
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	switch config.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %q", config.Database.Driver)
	}

	if config.Database.DSN == "" {
		return fmt.Errorf("database dsn cannot be empty")
	}

	if config.Sitemap.PageCapacity <= 0 {
		return fmt.Errorf("page_capacity must be positive")
	}

	if config.Sitemap.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}

	if config.Sitemap.MaxBatches <= 0 {
		return fmt.Errorf("max_batches must be positive")
	}

	if config.Sitemap.MinFiles <= 0 || config.Sitemap.MaxFiles < config.Sitemap.MinFiles {
		return fmt.Errorf("file count bounds [%d, %d] are invalid",
			config.Sitemap.MinFiles, config.Sitemap.MaxFiles)
	}

	return nil
}
