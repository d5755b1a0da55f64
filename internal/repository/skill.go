package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SkillRepository defines persistence operations for the skill catalog.
type SkillRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	GetByName(ctx context.Context, name string) (*models.Skill, error)
	Create(ctx context.Context, skill *models.Skill) error
	List(ctx context.Context, category, search string) ([]models.Skill, error)
	Categories(ctx context.Context) ([]string, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository returns a new SkillRepository implementation.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := readDB(r.db).WithContext(ctx).First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	var skill models.Skill
	if err := readDB(r.db).WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Skill already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateSkillList(ctx)
	return nil
}

// List returns approved skills, optionally narrowed by category or a name search.
// The unfiltered list is cached since the catalog changes rarely.
func (r *skillRepository) List(ctx context.Context, category, search string) ([]models.Skill, error) {
	fetch := func(dest *[]models.Skill) error {
		query := readDB(r.db).WithContext(ctx).Where("approved = ?", true)
		if category != "" {
			query = query.Where("category = ?", category)
		}
		if search != "" {
			query = query.Where("name LIKE ?", "%"+search+"%")
		}
		if err := query.Order("name ASC").Find(dest).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	var skills []models.Skill
	if category == "" && search == "" {
		err := cache.Aside(ctx, cache.SkillListKey, &skills, cache.SkillListTTL, func() error {
			return fetch(&skills)
		})
		if err != nil {
			return nil, err
		}
		return skills, nil
	}

	if err := fetch(&skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Skill{}).
		Where("approved = ? AND category <> ''", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}
