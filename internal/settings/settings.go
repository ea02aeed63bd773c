// SPDX-License-Identifier: MIT

// Package settings persists the repository settings used by push and pull.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thatcatcamp/themecycle/internal/models"
)

const DefaultBranch = "main"

const (
	keyToken      = "github.token"
	keyRepoURL    = "github.repo_url"
	keyBranch     = "github.branch"
	keyConfigPath = "github.config_path"
)

// GitHub holds the repository settings. Zero values mean "not configured",
// except Branch which always resolves to a value.
type GitHub struct {
	Token      string `json:"-"`
	RepoURL    string `json:"repoUrl"`
	Branch     string `json:"branch"`
	ConfigPath string `json:"configPath"`
}

// MaskedToken shows only the last four characters of the token.
func (g GitHub) MaskedToken() string {
	if g.Token == "" {
		return ""
	}
	if len(g.Token) <= 4 {
		return strings.Repeat("*", len(g.Token))
	}
	return strings.Repeat("*", 8) + g.Token[len(g.Token)-4:]
}

// Update carries the fields to save. Empty Token, RepoURL and Branch are
// ignored; ConfigPath is written whenever it is non-nil, even if empty.
type Update struct {
	Token      string
	RepoURL    string
	Branch     string
	ConfigPath *string
}

// Store reads and writes settings rows.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the saved settings with defaults applied.
func (s *Store) Get(ctx context.Context) (GitHub, error) {
	var rows []models.Setting
	err := s.db.WithContext(ctx).
		Where("setting_key IN ?", []string{keyToken, keyRepoURL, keyBranch, keyConfigPath}).
		Find(&rows).Error
	if err != nil {
		return GitHub{}, fmt.Errorf("load settings: %w", err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	out := GitHub{
		Token:      values[keyToken],
		RepoURL:    values[keyRepoURL],
		Branch:     values[keyBranch],
		ConfigPath: values[keyConfigPath],
	}
	if out.Branch == "" {
		out.Branch = DefaultBranch
	}
	return out, nil
}

// Save writes the fields of u that are set.
func (s *Store) Save(ctx context.Context, u Update) error {
	var rows []models.Setting
	add := func(key, value string) {
		rows = append(rows, models.Setting{Key: key, Value: value})
	}
	if u.Token != "" {
		add(keyToken, u.Token)
	}
	if u.RepoURL != "" {
		add(keyRepoURL, u.RepoURL)
	}
	if u.Branch != "" {
		add(keyBranch, u.Branch)
	}
	if u.ConfigPath != nil {
		add(keyConfigPath, *u.ConfigPath)
	}
	if len(rows) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Reset removes every saved setting.
func (s *Store) Reset(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Where("setting_key IN ?", []string{keyToken, keyRepoURL, keyBranch, keyConfigPath}).
		Delete(&models.Setting{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}
