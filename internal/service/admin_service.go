package service

import (
	"context"
	"strings"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
)

// AdminService provides moderation and platform administration logic.
type AdminService struct {
	adminRepo   repository.AdminRepository
	userRepo    repository.UserRepository
	swapRepo    repository.SwapRepository
	messageRepo repository.PlatformMessageRepository
}

// NewAdminService returns a new AdminService.
func NewAdminService(adminRepo repository.AdminRepository, userRepo repository.UserRepository, swapRepo repository.SwapRepository, messageRepo repository.PlatformMessageRepository) *AdminService {
	return &AdminService{
		adminRepo:   adminRepo,
		userRepo:    userRepo,
		swapRepo:    swapRepo,
		messageRepo: messageRepo,
	}
}

// GetStats returns the platform statistics snapshot.
func (s *AdminService) GetStats(ctx context.Context) (*repository.PlatformStats, error) {
	span, ctx := observability.NewSpan(ctx, "admin.stats")
	defer span.End()

	stats, err := s.adminRepo.Stats(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return stats, nil
}

// ListUsers returns all users annotated with activity counts.
func (s *AdminService) ListUsers(ctx context.Context, search string, limit, offset int) ([]repository.AdminUserRow, int64, error) {
	return s.adminRepo.ListUsers(ctx, search, limit, offset)
}

// BanUser bans a user with a reason. Admin accounts cannot be banned.
func (s *AdminService) BanUser(ctx context.Context, userID uint, reason string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, models.NewForbiddenError("Cannot ban an admin")
	}
	if user.IsBanned {
		return nil, models.NewConflictError("User is already banned")
	}

	now := time.Now().UTC()
	user.IsBanned = true
	user.BannedAt = &now
	user.BannedReason = strings.TrimSpace(reason)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	cache.InvalidateAdminStats(ctx)
	observability.UsersBanned.WithLabelValues("ban").Inc()
	return user, nil
}

// UnbanUser lifts a ban.
func (s *AdminService) UnbanUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsBanned {
		return nil, models.NewConflictError("User is not banned")
	}

	user.IsBanned = false
	user.BannedAt = nil
	user.BannedReason = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	cache.InvalidateAdminStats(ctx)
	observability.UsersBanned.WithLabelValues("unban").Inc()
	return user, nil
}

// ListSwaps returns swaps across all users for moderation.
func (s *AdminService) ListSwaps(ctx context.Context, status string, limit, offset int) ([]models.SwapRequest, int64, error) {
	var swapStatus models.SwapStatus
	if status != "" {
		swapStatus = models.SwapStatus(status)
		switch swapStatus {
		case models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusRejected,
			models.SwapStatusCancelled, models.SwapStatusCompleted:
		default:
			return nil, 0, models.NewValidationError("Invalid swap status")
		}
	}
	return s.swapRepo.ListAll(ctx, swapStatus, limit, offset)
}

// UserActivity returns the engagement report for a single user.
func (s *AdminService) UserActivity(ctx context.Context, userID uint) (*repository.UserActivity, error) {
	return s.adminRepo.UserActivity(ctx, userID)
}

// MessageInput carries the fields for creating or updating an announcement.
type MessageInput struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	IsActive  *bool      `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// CreateMessage publishes a platform announcement.
func (s *AdminService) CreateMessage(ctx context.Context, input MessageInput) (*models.PlatformMessage, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	msg := &models.PlatformMessage{
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		IsActive:  true,
		ExpiresAt: input.ExpiresAt,
	}
	if input.IsActive != nil {
		msg.IsActive = *input.IsActive
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// UpdateMessage edits an existing announcement.
func (s *AdminService) UpdateMessage(ctx context.Context, id uint, input MessageInput) (*models.PlatformMessage, error) {
	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) != "" {
		msg.Title = strings.TrimSpace(input.Title)
	}
	if strings.TrimSpace(input.Content) != "" {
		msg.Content = input.Content
	}
	if input.IsActive != nil {
		msg.IsActive = *input.IsActive
	}
	if input.ExpiresAt != nil {
		msg.ExpiresAt = input.ExpiresAt
	}

	if err := s.messageRepo.Update(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// DeleteMessage removes an announcement.
func (s *AdminService) DeleteMessage(ctx context.Context, id uint) error {
	return s.messageRepo.Delete(ctx, id)
}

// ListAllMessages returns every announcement, including inactive ones.
func (s *AdminService) ListAllMessages(ctx context.Context) ([]models.PlatformMessage, error) {
	return s.messageRepo.ListAll(ctx)
}

// ActiveMessages returns the announcements currently visible to users.
func (s *AdminService) ActiveMessages(ctx context.Context) ([]models.PlatformMessage, error) {
	return s.messageRepo.ListActive(ctx, time.Now().UTC())
}
