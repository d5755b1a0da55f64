// Package models contains data structures for the application's domain models.
package models

import "time"

// Skill is a catalog entry users can offer or want.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Category  string    `gorm:"index:idx_skills_category" json:"category"`
	Approved  bool      `gorm:"default:true" json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}
