// Package config loads and persists the user configuration with viper.
// Values are handed to constructors explicitly; no package reads viper at
// import time.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Model          string `mapstructure:"model"`
	APIBase        string `mapstructure:"api_base"`
	APIKey         string `mapstructure:"api_key"`
	GitContext     bool   `mapstructure:"git_context"`
	PromptTemplate string `mapstructure:"prompt_template"`
	IntentsFile    string `mapstructure:"intents_file"`
}

const (
	DefaultModel      = "qwen/qwen3-4b-2507"
	DefaultAPIBase    = "http://localhost:1234/v1"
	DefaultConfigDir  = "gitmate"
	DefaultConfigName = "config"
	EnvPrefix         = "GITMATE"
)

// settableKeys are the keys `gitmate config set` accepts.
var settableKeys = []string{
	"model",
	"api_base",
	"api_key",
	"git_context",
	"prompt_template",
	"intents_file",
}

// InitConfig initializes viper from the given file, or from
// $XDG_CONFIG_HOME/gitmate/config.yaml when empty. A missing config file is
// created with defaults; a corrupt one is an error.
func InitConfig(cfgFile string) error {
	configPath := cfgFile
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to locate config directory: %w", err)
		}
		appDir := filepath.Join(configDir, DefaultConfigDir)
		viper.AddConfigPath(appDir)
		viper.SetConfigName(DefaultConfigName)
		viper.SetConfigType("yaml")
		configPath = filepath.Join(appDir, DefaultConfigName+".yaml")
	}

	viper.SetDefault("model", DefaultModel)
	viper.SetDefault("api_base", DefaultAPIBase)
	viper.SetDefault("api_key", "")
	viper.SetDefault("git_context", true)
	viper.SetDefault("prompt_template", "")
	viper.SetDefault("intents_file", "")

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		// First run: write the defaults so the user has a file to edit.
		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := viper.WriteConfigAs(configPath); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
	}

	return nil
}

// GetConfig returns the current configuration, falling back to defaults if
// the stored values cannot be decoded.
func GetConfig() *Config {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return &Config{
			Model:      DefaultModel,
			APIBase:    DefaultAPIBase,
			GitContext: true,
		}
	}
	return cfg
}

// SetConfigValue sets a single key in the live viper state.
func SetConfigValue(key string, value interface{}) {
	viper.Set(key, value)
}

// SaveConfig persists the current configuration.
func SaveConfig() error {
	return viper.WriteConfig()
}

// IsSettableKey reports whether `config set` accepts the key.
func IsSettableKey(key string) bool {
	for _, k := range settableKeys {
		if k == key {
			return true
		}
	}
	return false
}

// SettableKeys lists the keys `config set` accepts.
func SettableKeys() []string {
	out := make([]string, len(settableKeys))
	copy(out, settableKeys)
	return out
}
