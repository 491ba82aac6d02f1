// Package config loads the terminal client's settings.
//
// Values come from, in rising priority: built-in defaults, an optional YAML
// config file, and PAYTRACK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"payment_tracker/internal/client/tokenstore"

	"github.com/spf13/viper"
)

const envPrefix = "PAYTRACK"

// Config holds the client settings.
type Config struct {
	APIURL     string        `mapstructure:"api_url"`
	TokenStore string        `mapstructure:"token_store"`
	TokenPath  string        `mapstructure:"token_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
	LogLevel   string        `mapstructure:"log_level"`
}

// Load reads the configuration. An empty path searches for client.yaml in
// the working directory and in the per-user client directory; a missing
// file is not an error unless path names it explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("client")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := tokenstore.DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "http://localhost:3000")
	v.SetDefault("token_store", tokenstore.KindFile)
	v.SetDefault("token_path", "")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("log_level", "warn")
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_url %q", c.APIURL)
	}
	switch c.TokenStore {
	case tokenstore.KindFile, tokenstore.KindSQLite, tokenstore.KindMemory:
	default:
		return fmt.Errorf("invalid token_store %q", c.TokenStore)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	if c.TokenPath != "" {
		c.TokenPath = expandHome(c.TokenPath)
	}
	return nil
}

func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
