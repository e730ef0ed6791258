package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
}

type AppConfig struct {
	Mode     string `mapstructure:"mode"`
	Language string `mapstructure:"language"`
	PageSize int    `mapstructure:"page_size"`
}

type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}

type StorageConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	RedisURI string `mapstructure:"redis_uri"`
	Key      string `mapstructure:"key"`
}

type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	APIToken string `mapstructure:"api_token"`
}

// Run modes
const (
	ModeServe = "serve"
	ModeTUI   = "tui"
)

var drivers = map[string]bool{"sqlite": true, "postgres": true, "redis": true, "memory": true}

// Load loads configuration from a YAML file with environment variable
// overrides (WORDTRAINER_APP_PAGE_SIZE etc.). A missing file leaves the
// defaults in place. flags may be nil; a "mode" flag overrides app.mode.
func Load(filename string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.mode", ModeServe)
	v.SetDefault("app.language", "en")
	v.SetDefault("app.page_size", 20)
	v.SetDefault("catalog.path", "data/words.json")
	v.SetDefault("catalog.sheet", "Sheet1")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dsn", "data/progress.db")
	v.SetDefault("storage.redis_uri", "redis://localhost:6379/0")
	v.SetDefault("storage.key", "learned_ids")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.api_token", "")

	if filename != "" {
		v.SetConfigFile(filename)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	if flags != nil {
		if f := flags.Lookup("mode"); f != nil {
			if err := v.BindPFlag("app.mode", f); err != nil {
				return nil, fmt.Errorf("bind mode flag: %w", err)
			}
		}
	}

	v.SetEnvPrefix("WORDTRAINER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values the trainer cannot run with
func (c *Config) Validate() error {
	if c.App.PageSize < 1 {
		return fmt.Errorf("app.page_size must be at least 1, got %d", c.App.PageSize)
	}
	if c.App.Mode != ModeServe && c.App.Mode != ModeTUI {
		return fmt.Errorf("app.mode must be %q or %q, got %q", ModeServe, ModeTUI, c.App.Mode)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}
	if !drivers[c.Storage.Driver] {
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage key is required")
	}
	return nil
}
