// Package models contains data structures for the application's domain models.
package models

import "time"

// PlatformMessage is an admin broadcast shown to all users until it is
// deactivated or expires.
type PlatformMessage struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Content   string     `gorm:"not null" json:"content"`
	IsActive  bool       `gorm:"default:true;index:idx_platform_messages_active" json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for GORM
func (PlatformMessage) TableName() string {
	return "platform_messages"
}

// VisibleAt reports whether the message should be shown at the given time.
func (m *PlatformMessage) VisibleAt(t time.Time) bool {
	if !m.IsActive {
		return false
	}
	return m.ExpiresAt == nil || m.ExpiresAt.After(t)
}
