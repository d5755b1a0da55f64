// Package models contains data structures for the application's domain models.
package models

import "time"

// SkillType distinguishes skills a user teaches from skills they want to learn.
type SkillType string

const (
	// SkillTypeOffered marks a skill the user can teach.
	SkillTypeOffered SkillType = "offered"
	// SkillTypeWanted marks a skill the user wants to learn.
	SkillTypeWanted SkillType = "wanted"
)

// Proficiency levels for offered skills.
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
)

// Urgency levels for wanted skills.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// UserSkill links a user to a catalog skill as either offered or wanted.
// A user holds at most one row per (skill, type); writes upsert on conflict.
type UserSkill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_skill_type" json:"user_id"`
	SkillID     uint      `gorm:"not null;uniqueIndex:idx_user_skill_type" json:"skill_id"`
	SkillType   SkillType `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_skill_type" json:"skill_type"`
	Proficiency string    `gorm:"type:varchar(20)" json:"proficiency,omitempty"`
	Urgency     string    `gorm:"type:varchar(10)" json:"urgency,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Skill Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}

// TableName specifies the table name for GORM
func (UserSkill) TableName() string {
	return "user_skills"
}
