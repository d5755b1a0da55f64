package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"
	"skillswap/internal/observability"

	"gorm.io/gorm"
)

// SwapBox selects which side of a user's swap requests to list.
type SwapBox string

const (
	// SwapBoxSent lists requests the user initiated.
	SwapBoxSent SwapBox = "sent"
	// SwapBoxReceived lists requests addressed to the user.
	SwapBoxReceived SwapBox = "received"
	// SwapBoxAll lists both sides.
	SwapBoxAll SwapBox = "all"
)

// SwapRepository defines persistence operations for swap requests.
type SwapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	PendingExists(ctx context.Context, requesterID, providerID uint) (bool, error)
	UpdateStatus(ctx context.Context, swap *models.SwapRequest) error
	DeletePending(ctx context.Context, id, requesterID uint) (bool, error)
	ListForUser(ctx context.Context, userID uint, box SwapBox, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, error)
	ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, int64, error)
	CompletedBetween(ctx context.Context, userA, userB uint) (bool, error)
}

type swapRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewSwapRepository returns a new SwapRepository implementation.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "Create", "swap_requests")
	defer span.End()
	defer r.metrics.TrackQuery("insert", "swap_requests")()

	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A pending request to this user already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "GetByID", "swap_requests")
	defer span.End()
	defer r.metrics.TrackQuery("select", "swap_requests")()

	var swap models.SwapRequest
	if err := readDB(r.db).WithContext(ctx).
		Preload("Requester").
		Preload("Provider").
		Preload("RequestedSkill").
		Preload("OfferedSkill").
		First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("SwapRequest", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

// PendingExists reports whether the requester already has a pending request
// addressed to the provider. The partial unique index backs this as the
// authoritative guard; the pre-check keeps the common path on a clean 409.
func (r *swapRepository) PendingExists(ctx context.Context, requesterID, providerID uint) (bool, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("requester_id = ? AND provider_id = ? AND status = ?", requesterID, providerID, models.SwapStatusPending).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *swapRepository) UpdateStatus(ctx context.Context, swap *models.SwapRequest) error {
	updates := map[string]interface{}{
		"status":           swap.Status,
		"cancelled_reason": swap.CancelledReason,
		"completed_at":     swap.CompletedAt,
	}
	if err := r.db.WithContext(ctx).Model(swap).Updates(updates).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeletePending removes the swap only while it is still pending and owned by
// the requester. The conditional delete makes the check and the removal a
// single statement, so a concurrent accept cannot race past it. Returns
// whether a row was deleted.
func (r *swapRepository) DeletePending(ctx context.Context, id, requesterID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND requester_id = ? AND status = ?", id, requesterID, models.SwapStatusPending).
		Delete(&models.SwapRequest{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *swapRepository) ListForUser(ctx context.Context, userID uint, box SwapBox, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, error) {
	query := readDB(r.db).WithContext(ctx).Model(&models.SwapRequest{})

	switch box {
	case SwapBoxSent:
		query = query.Where("requester_id = ?", userID)
	case SwapBoxReceived:
		query = query.Where("provider_id = ?", userID)
	default:
		query = query.Where("requester_id = ? OR provider_id = ?", userID, userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var swaps []models.SwapRequest
	if err := query.
		Preload("Requester").
		Preload("Provider").
		Preload("RequestedSkill").
		Preload("OfferedSkill").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

// ListAll returns swaps across all users with a total count, for moderation.
func (r *swapRepository) ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, int64, error) {
	query := readDB(r.db).WithContext(ctx).Model(&models.SwapRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var swaps []models.SwapRequest
	if err := query.
		Preload("Requester").
		Preload("Provider").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return swaps, total, nil
}

// CompletedBetween reports whether the two users share a completed swap in
// either direction.
func (r *swapRepository) CompletedBetween(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("status = ?", models.SwapStatusCompleted).
		Where("(requester_id = ? AND provider_id = ?) OR (requester_id = ? AND provider_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
