package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type VendorConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type VaultConfig struct {
	Path string `mapstructure:"path"`
}

type RateLimitConfig struct {
	Requests      int `mapstructure:"requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Vendor    VendorConfig    `mapstructure:"vendor"`
	Vault     VaultConfig     `mapstructure:"vault"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	DBPath    string          `mapstructure:"db_path"`
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("vault.path", "costguard.vault")
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window_minutes", 60)
	v.SetDefault("db_path", "costguard.db")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Vendor.BaseURL == "" {
		return nil, fmt.Errorf("vendor.base_url is required")
	}
	return &cfg, nil
}
