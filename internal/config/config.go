// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var v *viper.Viper

// InitConfig initializes the configuration system
func InitConfig(configPath string) error {
	v = viper.New()

	// Set defaults
	setDefaults()

	// THEMECYCLE_GENERATOR_API_KEY overrides generator.api_key, and so on
	v.SetEnvPrefix("THEMECYCLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set config file path
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Try to read existing config
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, create it with defaults
		if os.IsNotExist(err) {
			if err := v.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	v.SetDefault("server.http_port", "8080")
	v.SetDefault("server.behind_proxy", false)

	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "/var/lib/themecycle/themecycle.db")

	// Generation defaults
	v.SetDefault("generator.endpoint", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("generator.model", "gemini-2.0-flash")
	v.SetDefault("generator.timeout", "60s")
	v.SetDefault("generator.api_key", "")

	// Repository defaults
	v.SetDefault("github.api_base", "https://api.github.com")
	v.SetDefault("github.timeout", "30s")
	v.SetDefault("repository.transport", "rest") // "rest" or "git"
	v.SetDefault("repository.git_base", "https://github.com")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Rate limiting defaults
	v.SetDefault("ratelimit.generate_per_minute", 6)

	// Security defaults
	v.SetDefault("security.blocked_ips", []string{})
	v.SetDefault("security.allowed_ips", []string{})

	// Theme defaults
	v.SetDefault("theme.default", "configs/config1.json")
}

// GetString returns a config value as string
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetInt returns a config value as int
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetBool returns a config value as bool
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetStringSlice returns a config value as []string
func GetStringSlice(key string) []string {
	if v == nil {
		return nil
	}
	return v.GetStringSlice(key)
}

// GetDuration returns a config value as time.Duration
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set sets a config value and saves to file
func Set(key string, value interface{}) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}

	v.Set(key, value)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetAll returns all config values as a map
func GetAll() map[string]interface{} {
	if v == nil {
		return nil
	}
	return v.AllSettings()
}
