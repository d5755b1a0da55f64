package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByIDWithSkillsFn func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	createFn            func(context.Context, *models.User) error
	updateFn            func(context.Context, *models.User) error
	deleteFn            func(context.Context, uint) error
	listFn              func(context.Context, repository.ProfileFilter, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDUncached(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithSkills(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDWithSkillsFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, filter repository.ProfileFilter, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, filter, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByIDWithSkillsFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsPublic: true}, nil
		},
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		listFn: func(context.Context, repository.ProfileFilter, int, int) ([]models.User, error) {
			return nil, nil
		},
	}
}

type swapRepoStub struct {
	createFn           func(context.Context, *models.SwapRequest) error
	getByIDFn          func(context.Context, uint) (*models.SwapRequest, error)
	pendingExistsFn    func(context.Context, uint, uint) (bool, error)
	updateStatusFn     func(context.Context, *models.SwapRequest) error
	deletePendingFn    func(context.Context, uint, uint) (bool, error)
	listForUserFn      func(context.Context, uint, repository.SwapBox, models.SwapStatus, int, int) ([]models.SwapRequest, error)
	listAllFn          func(context.Context, models.SwapStatus, int, int) ([]models.SwapRequest, int64, error)
	completedBetweenFn func(context.Context, uint, uint) (bool, error)
}

func (s *swapRepoStub) Create(ctx context.Context, swap *models.SwapRequest) error {
	return s.createFn(ctx, swap)
}
func (s *swapRepoStub) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *swapRepoStub) PendingExists(ctx context.Context, requesterID, providerID uint) (bool, error) {
	return s.pendingExistsFn(ctx, requesterID, providerID)
}
func (s *swapRepoStub) UpdateStatus(ctx context.Context, swap *models.SwapRequest) error {
	return s.updateStatusFn(ctx, swap)
}
func (s *swapRepoStub) DeletePending(ctx context.Context, id, requesterID uint) (bool, error) {
	return s.deletePendingFn(ctx, id, requesterID)
}
func (s *swapRepoStub) ListForUser(ctx context.Context, userID uint, box repository.SwapBox, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, error) {
	return s.listForUserFn(ctx, userID, box, status, limit, offset)
}
func (s *swapRepoStub) ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, int64, error) {
	return s.listAllFn(ctx, status, limit, offset)
}
func (s *swapRepoStub) CompletedBetween(ctx context.Context, userA, userB uint) (bool, error) {
	return s.completedBetweenFn(ctx, userA, userB)
}

func noopSwapRepo() *swapRepoStub {
	return &swapRepoStub{
		createFn: func(context.Context, *models.SwapRequest) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.SwapRequest, error) {
			return &models.SwapRequest{ID: id, Status: models.SwapStatusPending}, nil
		},
		pendingExistsFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		updateStatusFn:  func(context.Context, *models.SwapRequest) error { return nil },
		deletePendingFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
		listForUserFn: func(context.Context, uint, repository.SwapBox, models.SwapStatus, int, int) ([]models.SwapRequest, error) {
			return nil, nil
		},
		listAllFn: func(context.Context, models.SwapStatus, int, int) ([]models.SwapRequest, int64, error) {
			return nil, 0, nil
		},
		completedBetweenFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type userSkillRepoStub struct {
	upsertFn            func(context.Context, *models.UserSkill) error
	removeFn            func(context.Context, uint, uint, models.SkillType) error
	listForUserFn       func(context.Context, uint) ([]models.UserSkill, error)
	listForUserByTypeFn func(context.Context, uint, models.SkillType) ([]models.UserSkill, error)
	offersFn            func(context.Context, uint, uint) (bool, error)
}

func (s *userSkillRepoStub) Upsert(ctx context.Context, us *models.UserSkill) error {
	return s.upsertFn(ctx, us)
}
func (s *userSkillRepoStub) Remove(ctx context.Context, userID, skillID uint, skillType models.SkillType) error {
	return s.removeFn(ctx, userID, skillID, skillType)
}
func (s *userSkillRepoStub) ListForUser(ctx context.Context, userID uint) ([]models.UserSkill, error) {
	return s.listForUserFn(ctx, userID)
}
func (s *userSkillRepoStub) ListForUserByType(ctx context.Context, userID uint, skillType models.SkillType) ([]models.UserSkill, error) {
	return s.listForUserByTypeFn(ctx, userID, skillType)
}
func (s *userSkillRepoStub) Offers(ctx context.Context, userID, skillID uint) (bool, error) {
	return s.offersFn(ctx, userID, skillID)
}

func noopUserSkillRepo() *userSkillRepoStub {
	return &userSkillRepoStub{
		upsertFn: func(context.Context, *models.UserSkill) error { return nil },
		removeFn: func(context.Context, uint, uint, models.SkillType) error { return nil },
		listForUserFn: func(context.Context, uint) ([]models.UserSkill, error) {
			return nil, nil
		},
		listForUserByTypeFn: func(context.Context, uint, models.SkillType) ([]models.UserSkill, error) {
			return nil, nil
		},
		offersFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
	}
}

type feedbackRepoStub struct {
	createFn                func(context.Context, *models.Feedback) error
	listPublicForUserFn     func(context.Context, uint, int, int) ([]models.Feedback, error)
	ratingSummaryFn         func(context.Context, uint) (*models.RatingSummary, error)
	existsForSwapAndRaterFn func(context.Context, uint, uint) (bool, error)
}

func (s *feedbackRepoStub) Create(ctx context.Context, fb *models.Feedback) error {
	return s.createFn(ctx, fb)
}
func (s *feedbackRepoStub) ListPublicForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Feedback, error) {
	return s.listPublicForUserFn(ctx, userID, limit, offset)
}
func (s *feedbackRepoStub) RatingSummary(ctx context.Context, userID uint) (*models.RatingSummary, error) {
	return s.ratingSummaryFn(ctx, userID)
}
func (s *feedbackRepoStub) ExistsForSwapAndRater(ctx context.Context, swapID, raterID uint) (bool, error) {
	return s.existsForSwapAndRaterFn(ctx, swapID, raterID)
}

func noopFeedbackRepo() *feedbackRepoStub {
	return &feedbackRepoStub{
		createFn: func(context.Context, *models.Feedback) error { return nil },
		listPublicForUserFn: func(context.Context, uint, int, int) ([]models.Feedback, error) {
			return nil, nil
		},
		ratingSummaryFn: func(context.Context, uint) (*models.RatingSummary, error) {
			return &models.RatingSummary{}, nil
		},
		existsForSwapAndRaterFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}
