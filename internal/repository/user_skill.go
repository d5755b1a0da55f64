package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserSkillRepository defines persistence operations for a user's skill links.
type UserSkillRepository interface {
	Upsert(ctx context.Context, us *models.UserSkill) error
	Remove(ctx context.Context, userID, skillID uint, skillType models.SkillType) error
	ListForUser(ctx context.Context, userID uint) ([]models.UserSkill, error)
	ListForUserByType(ctx context.Context, userID uint, skillType models.SkillType) ([]models.UserSkill, error)
	Offers(ctx context.Context, userID, skillID uint) (bool, error)
}

type userSkillRepository struct {
	db *gorm.DB
}

// NewUserSkillRepository returns a new UserSkillRepository implementation.
func NewUserSkillRepository(db *gorm.DB) UserSkillRepository {
	return &userSkillRepository{db: db}
}

// Upsert inserts the link or refreshes its attributes when the user already
// holds the same (skill, type) row.
func (r *userSkillRepository) Upsert(ctx context.Context, us *models.UserSkill) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "skill_id"}, {Name: "skill_type"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"proficiency", "urgency", "description", "updated_at"}),
	}).Create(us).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, us.UserID)
	return nil
}

func (r *userSkillRepository) Remove(ctx context.Context, userID, skillID uint, skillType models.SkillType) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ? AND skill_type = ?", userID, skillID, skillType).
		Delete(&models.UserSkill{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("UserSkill", skillID)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

func (r *userSkillRepository) ListForUser(ctx context.Context, userID uint) ([]models.UserSkill, error) {
	var skills []models.UserSkill
	if err := readDB(r.db).WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Order("skill_type ASC, created_at ASC").
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *userSkillRepository) ListForUserByType(ctx context.Context, userID uint, skillType models.SkillType) ([]models.UserSkill, error) {
	var skills []models.UserSkill
	if err := readDB(r.db).WithContext(ctx).
		Preload("Skill").
		Where("user_id = ? AND skill_type = ?", userID, skillType).
		Order("created_at ASC").
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

// Offers reports whether the user lists the skill as offered.
func (r *userSkillRepository) Offers(ctx context.Context, userID, skillID uint) (bool, error) {
	var link models.UserSkill
	err := readDB(r.db).WithContext(ctx).
		Select("id").
		Where("user_id = ? AND skill_id = ? AND skill_type = ?", userID, skillID, models.SkillTypeOffered).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}
