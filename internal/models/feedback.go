// Package models contains data structures for the application's domain models.
package models

import "time"

// Feedback rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a rating one user leaves for another, usually tied to a
// completed swap. SwapRequestID is nullable so free-standing feedback can
// be stored when the policy allows it; when set, a partial unique index
// limits each rater to one entry per swap.
type Feedback struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FromUserID    uint      `gorm:"not null;index:idx_feedback_from_user" json:"from_user_id"`
	ToUserID      uint      `gorm:"not null;index:idx_feedback_to_user" json:"to_user_id"`
	SwapRequestID *uint     `json:"swap_request_id,omitempty"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"not null" json:"comment"`
	IsPublic      bool      `gorm:"default:true" json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	FromUser    User         `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser      User         `gorm:"foreignKey:ToUserID" json:"-"`
	SwapRequest *SwapRequest `gorm:"foreignKey:SwapRequestID" json:"-"`
}

// TableName specifies the table name for GORM
func (Feedback) TableName() string {
	return "feedback"
}

// RatingSummary aggregates the public ratings received by a user.
type RatingSummary struct {
	Average float64 `json:"average_rating"`
	Count   int64   `json:"rating_count"`
}
