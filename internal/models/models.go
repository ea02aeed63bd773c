// SPDX-License-Identifier: MIT
package models

import (
	"time"
)

// Setting is one persisted key/value pair, for example the repository
// token or the branch used for push and pull.
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"column:setting_key;uniqueIndex;size:191;not null"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides for consistent naming
func (Setting) TableName() string {
	return "settings"
}
