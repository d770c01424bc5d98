// Package config resolves settings for the command line tools from an
// optional scrabble.yaml and SCRABBLE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config carries everything the demo and scan tools need. Defaults
// make every field optional.
type Config struct {
	LogLevel       string   `mapstructure:"log_level"`
	DictionaryPath string   `mapstructure:"dictionary"`
	Language       string   `mapstructure:"language"`
	Players        []string `mapstructure:"players"`
	MinWordLength  int      `mapstructure:"min_word_length"`
	HistoryLimit   int      `mapstructure:"history_limit"`
	ScanRack       string   `mapstructure:"scan_rack"`
	ScanRounds     int      `mapstructure:"scan_rounds"`
}

// Load reads scrabble.yaml from the working directory when present;
// environment variables override file values, so SCRABBLE_LANGUAGE=fr
// wins over the file's language key.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("scrabble")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("dictionary", "")
	v.SetDefault("language", "en")
	v.SetDefault("players", []string{"Alice", "Bob"})
	v.SetDefault("min_word_length", 2)
	v.SetDefault("history_limit", 64)
	v.SetDefault("scan_rack", "AEINRST")
	v.SetDefault("scan_rounds", 25)

	v.SetConfigName("scrabble")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
