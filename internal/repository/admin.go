package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// PlatformStats is the aggregate snapshot shown on the moderation dashboard.
type PlatformStats struct {
	TotalUsers    int64            `json:"total_users"`
	BannedUsers   int64            `json:"banned_users"`
	TotalSkills   int64            `json:"total_skills"`
	TotalSwaps    int64            `json:"total_swaps"`
	SwapsByStatus map[string]int64 `json:"swaps_by_status"`
	TotalFeedback int64            `json:"total_feedback"`
}

// AdminUserRow is a user annotated with activity counts for the admin list.
type AdminUserRow struct {
	models.User
	SwapCount     int64   `json:"swap_count"`
	AverageRating float64 `json:"average_rating"`
}

// UserActivity summarizes one user's engagement for the activity report.
type UserActivity struct {
	UserID           uint  `json:"user_id"`
	SwapsSent        int64 `json:"swaps_sent"`
	SwapsReceived    int64 `json:"swaps_received"`
	SwapsCompleted   int64 `json:"swaps_completed"`
	FeedbackGiven    int64 `json:"feedback_given"`
	FeedbackReceived int64 `json:"feedback_received"`
}

// AdminRepository defines the aggregate queries behind the moderation surface.
type AdminRepository interface {
	Stats(ctx context.Context) (*PlatformStats, error)
	ListUsers(ctx context.Context, search string, limit, offset int) ([]AdminUserRow, int64, error)
	UserActivity(ctx context.Context, userID uint) (*UserActivity, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository returns a new AdminRepository implementation.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// Stats computes the platform snapshot, cached for a minute so dashboard
// refreshes do not hammer the aggregate queries.
func (r *adminRepository) Stats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	err := cache.Aside(ctx, cache.AdminStatsKey, &stats, cache.AdminStatsTTL, func() error {
		db := readDB(r.db).WithContext(ctx)

		if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := db.Model(&models.User{}).Where("is_banned = ?", true).Count(&stats.BannedUsers).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := db.Model(&models.Skill{}).Count(&stats.TotalSkills).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := db.Model(&models.SwapRequest{}).Count(&stats.TotalSwaps).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := db.Model(&models.Feedback{}).Count(&stats.TotalFeedback).Error; err != nil {
			return models.NewInternalError(err)
		}

		var rows []struct {
			Status string
			Count  int64
		}
		if err := db.Model(&models.SwapRequest{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&rows).Error; err != nil {
			return models.NewInternalError(err)
		}
		stats.SwapsByStatus = make(map[string]int64, len(rows))
		for _, row := range rows {
			stats.SwapsByStatus[row.Status] = row.Count
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListUsers returns all users, including banned and private ones, annotated
// with their swap count and average public rating.
func (r *adminRepository) ListUsers(ctx context.Context, search string, limit, offset int) ([]AdminUserRow, int64, error) {
	query := readDB(r.db).WithContext(ctx).Model(&models.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	rows := make([]AdminUserRow, 0, len(users))
	for _, user := range users {
		row := AdminUserRow{User: user}
		db := readDB(r.db).WithContext(ctx)

		if err := db.Model(&models.SwapRequest{}).
			Where("requester_id = ? OR provider_id = ?", user.ID, user.ID).
			Count(&row.SwapCount).Error; err != nil {
			return nil, 0, models.NewInternalError(err)
		}
		if err := db.Model(&models.Feedback{}).
			Where("to_user_id = ? AND is_public = ?", user.ID, true).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&row.AverageRating).Error; err != nil {
			return nil, 0, models.NewInternalError(err)
		}
		rows = append(rows, row)
	}
	return rows, total, nil
}

func (r *adminRepository) UserActivity(ctx context.Context, userID uint) (*UserActivity, error) {
	db := readDB(r.db).WithContext(ctx)

	var user models.User
	if err := db.Select("id").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, models.NewInternalError(err)
	}

	activity := &UserActivity{UserID: userID}

	counts := []struct {
		dest  *int64
		model interface{}
		where string
		args  []interface{}
	}{
		{&activity.SwapsSent, &models.SwapRequest{}, "requester_id = ?", []interface{}{userID}},
		{&activity.SwapsReceived, &models.SwapRequest{}, "provider_id = ?", []interface{}{userID}},
		{&activity.SwapsCompleted, &models.SwapRequest{},
			"(requester_id = ? OR provider_id = ?) AND status = ?",
			[]interface{}{userID, userID, models.SwapStatusCompleted}},
		{&activity.FeedbackGiven, &models.Feedback{}, "from_user_id = ?", []interface{}{userID}},
		{&activity.FeedbackReceived, &models.Feedback{}, "to_user_id = ?", []interface{}{userID}},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, c.args...).Count(c.dest).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	return activity, nil
}
