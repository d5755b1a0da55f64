// Package models contains data structures for the application's domain models.
package models

import "time"

// SwapStatus represents the status of a swap request.
type SwapStatus string

const (
	// SwapStatusPending indicates a swap request awaiting the provider's answer.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the provider agreed to the swap.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected indicates the provider declined the swap.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCancelled indicates the requester withdrew the swap.
	SwapStatusCancelled SwapStatus = "cancelled"
	// SwapStatusCompleted indicates both parties finished the exchange.
	SwapStatusCompleted SwapStatus = "completed"
)

// IsTerminal reports whether no further transitions are allowed from the status.
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusRejected || s == SwapStatusCancelled || s == SwapStatusCompleted
}

// SwapRequest represents a proposed skill exchange between two users.
// The requester asks the provider to teach RequestedSkill and offers
// OfferedSkill in return. At most one pending request may exist per
// (requester, provider) pair; a partial unique index enforces this in storage.
type SwapRequest struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	RequesterID      uint       `gorm:"not null;index:idx_swap_requests_requester" json:"requester_id"`
	ProviderID       uint       `gorm:"not null;index:idx_swap_requests_provider" json:"provider_id"`
	RequestedSkillID uint       `gorm:"not null" json:"requested_skill_id"`
	OfferedSkillID   uint       `gorm:"not null" json:"offered_skill_id"`
	Message          string     `json:"message"`
	Status           SwapStatus `gorm:"type:varchar(20);default:'pending';index:idx_swap_requests_status" json:"status"`
	CancelledReason  string     `json:"cancelled_reason,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Relationships
	Requester      User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Provider       User  `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	RequestedSkill Skill `gorm:"foreignKey:RequestedSkillID" json:"requested_skill,omitempty"`
	OfferedSkill   Skill `gorm:"foreignKey:OfferedSkillID" json:"offered_skill,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}
