package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// PlatformMessageRepository defines persistence operations for announcements.
type PlatformMessageRepository interface {
	Create(ctx context.Context, msg *models.PlatformMessage) error
	Update(ctx context.Context, msg *models.PlatformMessage) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.PlatformMessage, error)
	ListAll(ctx context.Context) ([]models.PlatformMessage, error)
	ListActive(ctx context.Context, now time.Time) ([]models.PlatformMessage, error)
}

type platformMessageRepository struct {
	db *gorm.DB
}

// NewPlatformMessageRepository returns a new PlatformMessageRepository implementation.
func NewPlatformMessageRepository(db *gorm.DB) PlatformMessageRepository {
	return &platformMessageRepository{db: db}
}

func (r *platformMessageRepository) Create(ctx context.Context, msg *models.PlatformMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePlatformMessages(ctx)
	return nil
}

func (r *platformMessageRepository) Update(ctx context.Context, msg *models.PlatformMessage) error {
	if err := r.db.WithContext(ctx).Save(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePlatformMessages(ctx)
	return nil
}

func (r *platformMessageRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PlatformMessage{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("PlatformMessage", id)
	}
	cache.InvalidatePlatformMessages(ctx)
	return nil
}

func (r *platformMessageRepository) GetByID(ctx context.Context, id uint) (*models.PlatformMessage, error) {
	var msg models.PlatformMessage
	if err := readDB(r.db).WithContext(ctx).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("PlatformMessage", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

func (r *platformMessageRepository) ListAll(ctx context.Context) ([]models.PlatformMessage, error) {
	var messages []models.PlatformMessage
	if err := readDB(r.db).WithContext(ctx).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// ListActive returns messages visible to users at the given time. Expiry is
// filtered in memory after the cached fetch so the cache entry stays valid
// across its short TTL.
func (r *platformMessageRepository) ListActive(ctx context.Context, now time.Time) ([]models.PlatformMessage, error) {
	var messages []models.PlatformMessage
	err := cache.Aside(ctx, cache.PlatformMessagesKey, &messages, cache.PlatformMessageTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Where("is_active = ?", true).
			Order("created_at DESC").
			Find(&messages).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	visible := make([]models.PlatformMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.VisibleAt(now) {
			visible = append(visible, msg)
		}
	}
	return visible, nil
}
