// SPDX-License-Identifier: MIT
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitConfig(t *testing.T) {
	// Create temp directory for test config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	// Verify config file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
}

func TestGetConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	InitConfig(configPath)

	if value := GetString("server.http_port"); value != "8080" {
		t.Errorf("Expected default http_port to be 8080, got %s", value)
	}
	if value := GetString("theme.default"); value != "configs/config1.json" {
		t.Errorf("Expected default theme to be configs/config1.json, got %s", value)
	}
	if value := GetDuration("generator.timeout"); value != time.Minute {
		t.Errorf("Expected generator timeout of 1m, got %s", value)
	}
	if value := GetInt("ratelimit.generate_per_minute"); value != 6 {
		t.Errorf("Expected 6 generations per minute, got %d", value)
	}
	if GetBool("log.pretty") {
		t.Error("Expected log.pretty to default to false")
	}
}

func TestSetConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	InitConfig(configPath)

	err := Set("server.http_port", "9090")
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value := GetString("server.http_port")
	if value != "9090" {
		t.Errorf("Expected http_port to be 9090, got %s", value)
	}

	// Re-reading the file keeps the value
	InitConfig(configPath)
	if value := GetString("server.http_port"); value != "9090" {
		t.Errorf("Expected persisted http_port 9090, got %s", value)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("THEMECYCLE_GENERATOR_MODEL", "gemini-test")

	InitConfig(filepath.Join(t.TempDir(), "config.yaml"))

	if value := GetString("generator.model"); value != "gemini-test" {
		t.Errorf("Expected env override, got %s", value)
	}
}

func TestGetAllIncludesSections(t *testing.T) {
	InitConfig(filepath.Join(t.TempDir(), "config.yaml"))

	all := GetAll()
	for _, section := range []string{"server", "database", "generator", "github", "repository", "log", "ratelimit", "theme"} {
		if _, ok := all[section]; !ok {
			t.Errorf("Expected section %q in GetAll", section)
		}
	}
}
