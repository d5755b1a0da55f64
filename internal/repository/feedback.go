package repository

import (
	"context"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// FeedbackRepository defines persistence operations for feedback entries.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	ListPublicForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Feedback, error)
	RatingSummary(ctx context.Context, userID uint) (*models.RatingSummary, error)
	ExistsForSwapAndRater(ctx context.Context, swapID, raterID uint) (bool, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository returns a new FeedbackRepository implementation.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if err := r.db.WithContext(ctx).Create(fb).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Feedback for this swap already exists")
		}
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.UserRatingKey(fb.ToUserID))
	return nil
}

func (r *feedbackRepository) ListPublicForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Feedback, error) {
	var entries []models.Feedback
	if err := readDB(r.db).WithContext(ctx).
		Preload("FromUser").
		Where("to_user_id = ? AND is_public = ?", userID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

// RatingSummary aggregates public ratings for a user. The result is cached
// briefly since it is recomputed on every profile view.
func (r *feedbackRepository) RatingSummary(ctx context.Context, userID uint) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	key := cache.UserRatingKey(userID)

	err := cache.Aside(ctx, key, &summary, cache.UserRatingTTL, func() error {
		row := readDB(r.db).WithContext(ctx).
			Model(&models.Feedback{}).
			Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
			Where("to_user_id = ? AND is_public = ?", userID, true).
			Row()
		if err := row.Scan(&summary.Average, &summary.Count); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *feedbackRepository) ExistsForSwapAndRater(ctx context.Context, swapID, raterID uint) (bool, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Feedback{}).
		Where("swap_request_id = ? AND from_user_id = ?", swapID, raterID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
