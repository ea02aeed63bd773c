// SPDX-License-Identifier: MIT
package db

import (
	"path/filepath"
	"testing"

	"github.com/thatcatcamp/themecycle/internal/models"
)

func TestInitDBMigratesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themecycle.db")

	if err := InitDB("sqlite", path); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { SetDB(nil) })

	if GetDB() == nil {
		t.Fatal("expected package handle to be set")
	}
	if !GetDB().Migrator().HasTable(&models.Setting{}) {
		t.Fatal("settings table not found")
	}
	if !GetDB().Migrator().HasColumn(&models.Setting{}, "setting_key") {
		t.Fatal("setting_key column not found in settings table")
	}
}

func TestOpenInMemory(t *testing.T) {
	conn, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := conn.Create(&models.Setting{Key: "github.branch", Value: "dev"}).Error; err != nil {
		t.Fatalf("failed to create setting: %v", err)
	}

	var got models.Setting
	if err := conn.Where("setting_key = ?", "github.branch").First(&got).Error; err != nil {
		t.Fatalf("failed to read setting: %v", err)
	}
	if got.Value != "dev" {
		t.Errorf("expected 'dev', got %q", got.Value)
	}
}

func TestUnsupportedDatabaseType(t *testing.T) {
	if _, err := Open("postgres", "x"); err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}
