// Package config loads application configuration from file and env.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Log    LogConfig
}

// ServerConfig points at the production-office backend.
type ServerConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout time.Duration
}

// DataConfig holds local storage settings.
type DataConfig struct {
	Dir string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from file and env. Env var overrides use
// prefix SHOTWEAVE_; the config file lives at
// ~/.config/shotweave/config.toml unless SHOTWEAVE_CONFIG points
// elsewhere.
func Load() (Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	v.SetDefault("server.base_url", "http://localhost:5000")
	v.SetDefault("server.timeout", "15s")
	v.SetDefault("data.dir", filepath.Join(home, ".local", "share", "shotweave"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SHOTWEAVE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "shotweave"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SHOTWEAVE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 15 * time.Second
	}
	return c, nil
}
