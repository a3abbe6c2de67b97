// Package config loads conshell configuration with the usual layering:
// CLI flags (bound into viper by the command layer) override CONSHELL_*
// environment variables, which override an optional conshell.yaml config
// file; a .env file is loaded first so local development settings apply.
package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the resolved console settings.
type Config struct {
	Prompt        string
	HistorySize   int
	QueueCapacity int
	LogLevel      string
	LogFile       string
	TestMode      bool
	Plain         bool
}

// Load resolves configuration from all sources. Flag bindings must already
// be registered on the global viper before calling.
func Load() (*Config, error) {
	// Best effort; a missing .env is the common case.
	_ = godotenv.Load()

	viper.SetEnvPrefix("CONSHELL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("prompt", "> ")
	viper.SetDefault("history-size", 500)
	viper.SetDefault("queue-capacity", 256)

	viper.SetConfigName("conshell")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/conshell")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		Prompt:        viper.GetString("prompt"),
		HistorySize:   viper.GetInt("history-size"),
		QueueCapacity: viper.GetInt("queue-capacity"),
		LogLevel:      viper.GetString("log-level"),
		LogFile:       viper.GetString("log-file"),
		TestMode:      viper.GetBool("test-mode"),
		Plain:         viper.GetBool("plain"),
	}, nil
}
