package service

import (
	"context"
	"testing"

	"skillswap/internal/models"
)

type skillRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.Skill, error)
	getByNameFn  func(context.Context, string) (*models.Skill, error)
	createFn     func(context.Context, *models.Skill) error
	listFn       func(context.Context, string, string) ([]models.Skill, error)
	categoriesFn func(context.Context) ([]string, error)
}

func (s *skillRepoStub) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return s.getByIDFn(ctx, id)
}
func (s *skillRepoStub) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	return s.getByNameFn(ctx, name)
}
func (s *skillRepoStub) Create(ctx context.Context, skill *models.Skill) error {
	return s.createFn(ctx, skill)
}
func (s *skillRepoStub) List(ctx context.Context, category, search string) ([]models.Skill, error) {
	return s.listFn(ctx, category, search)
}
func (s *skillRepoStub) Categories(ctx context.Context) ([]string, error) {
	return s.categoriesFn(ctx)
}

func noopSkillRepo() *skillRepoStub {
	return &skillRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Skill, error) {
			return &models.Skill{ID: id, Name: "Guitar", Approved: true}, nil
		},
		getByNameFn:  func(context.Context, string) (*models.Skill, error) { return nil, nil },
		createFn:     func(context.Context, *models.Skill) error { return nil },
		listFn:       func(context.Context, string, string) ([]models.Skill, error) { return nil, nil },
		categoriesFn: func(context.Context) ([]string, error) { return nil, nil },
	}
}

func TestSkillServiceCreateSkill(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes category", func(t *testing.T) {
		var created *models.Skill
		skills := noopSkillRepo()
		skills.createFn = func(_ context.Context, skill *models.Skill) error {
			created = skill
			return nil
		}

		svc := NewSkillService(skills, noopUserSkillRepo())
		_, err := svc.CreateSkill(ctx, "  Guitar ", " Music ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Name != "Guitar" || created.Category != "music" || !created.Approved {
			t.Fatalf("unexpected skill: %#v", created)
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		skills := noopSkillRepo()
		skills.getByNameFn = func(_ context.Context, name string) (*models.Skill, error) {
			return &models.Skill{ID: 1, Name: name}, nil
		}

		svc := NewSkillService(skills, noopUserSkillRepo())
		_, err := svc.CreateSkill(ctx, "Guitar", "music")
		assertAppErrorCode(t, err, "CONFLICT")
	})

	t.Run("invalid name rejected", func(t *testing.T) {
		svc := NewSkillService(noopSkillRepo(), noopUserSkillRepo())
		_, err := svc.CreateSkill(ctx, "", "music")
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestSkillServiceAddUserSkill(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown type", func(t *testing.T) {
		svc := NewSkillService(noopSkillRepo(), noopUserSkillRepo())
		_, err := svc.AddUserSkill(ctx, 1, AddUserSkillInput{SkillID: 2, SkillType: "taught"})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("rejects unknown proficiency", func(t *testing.T) {
		svc := NewSkillService(noopSkillRepo(), noopUserSkillRepo())
		_, err := svc.AddUserSkill(ctx, 1, AddUserSkillInput{
			SkillID: 2, SkillType: models.SkillTypeOffered, Proficiency: "wizard",
		})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("missing catalog skill", func(t *testing.T) {
		skills := noopSkillRepo()
		skills.getByIDFn = func(_ context.Context, id uint) (*models.Skill, error) {
			return nil, models.NewNotFoundError("Skill", id)
		}

		svc := NewSkillService(skills, noopUserSkillRepo())
		_, err := svc.AddUserSkill(ctx, 1, AddUserSkillInput{SkillID: 2, SkillType: models.SkillTypeWanted})
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("upserts valid link", func(t *testing.T) {
		var upserted *models.UserSkill
		links := noopUserSkillRepo()
		links.upsertFn = func(_ context.Context, us *models.UserSkill) error {
			upserted = us
			return nil
		}

		svc := NewSkillService(noopSkillRepo(), links)
		_, err := svc.AddUserSkill(ctx, 1, AddUserSkillInput{
			SkillID: 2, SkillType: models.SkillTypeOffered, Proficiency: models.ProficiencyAdvanced,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if upserted.UserID != 1 || upserted.SkillID != 2 || upserted.Proficiency != models.ProficiencyAdvanced {
			t.Fatalf("unexpected link: %#v", upserted)
		}
	})
}

func TestSkillServiceRemoveUserSkill(t *testing.T) {
	svc := NewSkillService(noopSkillRepo(), noopUserSkillRepo())
	err := svc.RemoveUserSkill(context.Background(), 1, 2, "bogus")
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}
