package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// SkillService provides catalog and user-skill business logic.
type SkillService struct {
	skillRepo     repository.SkillRepository
	userSkillRepo repository.UserSkillRepository
}

// NewSkillService returns a new SkillService.
func NewSkillService(skillRepo repository.SkillRepository, userSkillRepo repository.UserSkillRepository) *SkillService {
	return &SkillService{
		skillRepo:     skillRepo,
		userSkillRepo: userSkillRepo,
	}
}

// ListSkills returns approved catalog skills, optionally filtered by category
// or a name search.
func (s *SkillService) ListSkills(ctx context.Context, category, search string) ([]models.Skill, error) {
	return s.skillRepo.List(ctx, category, search)
}

// ListCategories returns the distinct categories in the catalog.
func (s *SkillService) ListCategories(ctx context.Context) ([]string, error) {
	return s.skillRepo.Categories(ctx)
}

// CreateSkill adds a new skill to the catalog. Names are deduplicated
// case-insensitively.
func (s *SkillService) CreateSkill(ctx context.Context, name, category string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateSkillName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.skillRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Skill already exists")
	}

	skill := &models.Skill{
		Name:     name,
		Category: strings.TrimSpace(strings.ToLower(category)),
		Approved: true,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// AddUserSkillInput carries the fields for attaching a skill to a user.
type AddUserSkillInput struct {
	SkillID     uint             `json:"skill_id"`
	SkillType   models.SkillType `json:"skill_type"`
	Proficiency string           `json:"proficiency"`
	Urgency     string           `json:"urgency"`
	Description string           `json:"description"`
}

// AddUserSkill attaches a catalog skill to the user as offered or wanted.
// Re-adding an existing (skill, type) pair updates its attributes.
func (s *SkillService) AddUserSkill(ctx context.Context, userID uint, input AddUserSkillInput) (*models.UserSkill, error) {
	if input.SkillType != models.SkillTypeOffered && input.SkillType != models.SkillTypeWanted {
		return nil, models.NewValidationError("skill_type must be offered or wanted")
	}
	if err := validation.ValidateProficiency(input.Proficiency); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUrgency(input.Urgency); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.skillRepo.GetByID(ctx, input.SkillID); err != nil {
		return nil, err
	}

	us := &models.UserSkill{
		UserID:      userID,
		SkillID:     input.SkillID,
		SkillType:   input.SkillType,
		Proficiency: input.Proficiency,
		Urgency:     input.Urgency,
		Description: input.Description,
	}
	if err := s.userSkillRepo.Upsert(ctx, us); err != nil {
		return nil, err
	}

	listed, err := s.userSkillRepo.ListForUserByType(ctx, userID, input.SkillType)
	if err != nil {
		return nil, err
	}
	for i := range listed {
		if listed[i].SkillID == input.SkillID {
			return &listed[i], nil
		}
	}
	return us, nil
}

// RemoveUserSkill detaches a skill from the user.
func (s *SkillService) RemoveUserSkill(ctx context.Context, userID, skillID uint, skillType models.SkillType) error {
	if skillType != models.SkillTypeOffered && skillType != models.SkillTypeWanted {
		return models.NewValidationError("skill_type must be offered or wanted")
	}
	return s.userSkillRepo.Remove(ctx, userID, skillID, skillType)
}

// ListUserSkills returns the user's offered and wanted skills.
func (s *SkillService) ListUserSkills(ctx context.Context, userID uint) ([]models.UserSkill, error) {
	return s.userSkillRepo.ListForUser(ctx, userID)
}
