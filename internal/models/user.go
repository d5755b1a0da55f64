// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account on the skill exchange.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"unique;not null" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Location     string         `json:"location"`
	Bio          string         `json:"bio"`
	ProfilePhoto string         `json:"profile_photo"`
	Availability string         `json:"availability"`
	IsPublic     bool           `gorm:"default:true" json:"is_public"`
	Role         string         `gorm:"type:varchar(20);default:'user'" json:"role"`
	IsBanned     bool           `gorm:"default:false;index:idx_users_is_banned" json:"is_banned"`
	BannedAt     *time.Time     `json:"banned_at,omitempty"`
	BannedReason string         `json:"banned_reason,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Skills []UserSkill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
