package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey lets administrators plug dashboards and integrations into the API
// without a browser login. Presented via the X-API-Key header.
type APIKey struct {
	gorm.Model
	UserID     uint       `json:"user_id"`
	User       User       `json:"-"`
	Key        string     `json:"key" gorm:"uniqueIndex"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
