package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/popcorn/internal/model"
)

// appConfig is read once at start-up and passed down explicitly.
type appConfig struct {
	APIKey         string        `mapstructure:"api-key"`
	BaseURL        string        `mapstructure:"base-url"`
	ImageBaseURL   string        `mapstructure:"image-base-url"`
	Debounce       time.Duration `mapstructure:"debounce"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	Skin           string        `mapstructure:"skin"`
	LogLevel       string        `mapstructure:"log-level"`
	LogFormat      string        `mapstructure:"log-format"`
	LogFile        string        `mapstructure:"log-file"`
	APIAddr        string        `mapstructure:"api-addr"`
}

// configDir returns ~/.config/popcorn, where the config file and skins live.
func configDir(home string) string {
	return filepath.Join(home, ".config", "popcorn")
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("POPCORN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-key", "")
	v.SetDefault("base-url", model.DefaultBaseURL)
	v.SetDefault("image-base-url", model.DefaultImageBaseURL)
	v.SetDefault("debounce", model.DefaultDebounce)
	v.SetDefault("request-timeout", time.Duration(0))
	v.SetDefault("skin", model.DefaultSkin)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "console")
	v.SetDefault("log-file", filepath.Join(home, ".local", "state", "popcorn", "popcorn.log"))
	v.SetDefault("api-addr", model.DefaultAPIAddr)

	// The conventional TMDB variable is honoured next to POPCORN_API_KEY.
	if err := v.BindEnv("api-key", "POPCORN_API_KEY", "TMDB_API_KEY"); err != nil {
		return cfg, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(configDir(home), "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = model.DefaultDebounce
	}

	return cfg, nil
}
