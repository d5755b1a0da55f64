package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// UserService provides profile and account business logic.
type UserService struct {
	userRepo     repository.UserRepository
	feedbackRepo repository.FeedbackRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, feedbackRepo repository.FeedbackRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
	}
}

// Profile is a user's public view together with their rating aggregate.
type Profile struct {
	User   *models.User          `json:"user"`
	Rating *models.RatingSummary `json:"rating"`
}

// GetProfile returns the profile of the given user as seen by the viewer.
// Private profiles are visible only to their owner, and banned users read
// as not found.
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByIDWithSkills(ctx, userID)
	if err != nil {
		return nil, err
	}

	if (user.IsBanned || !user.IsPublic) && viewerID != userID {
		return nil, models.NewNotFoundError("User", userID)
	}

	rating, err := s.feedbackRepo.RatingSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Rating: rating}, nil
}

// UpdateProfileInput carries the updatable profile fields. Pointer fields
// distinguish "not sent" from "clear this value".
type UpdateProfileInput struct {
	Name         *string `json:"name"`
	Location     *string `json:"location"`
	Bio          *string `json:"bio"`
	ProfilePhoto *string `json:"profile_photo"`
	Availability *string `json:"availability"`
	IsPublic     *bool   `json:"is_public"`
}

// UpdateProfile applies the given changes to the user's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validation.ValidateName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = name
	}
	if input.Location != nil {
		user.Location = strings.TrimSpace(*input.Location)
	}
	if input.Bio != nil {
		if len(*input.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio is too long")
		}
		user.Bio = *input.Bio
	}
	if input.ProfilePhoto != nil {
		user.ProfilePhoto = *input.ProfilePhoto
	}
	if input.Availability != nil {
		user.Availability = strings.TrimSpace(*input.Availability)
	}
	if input.IsPublic != nil {
		user.IsPublic = *input.IsPublic
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BrowseProfiles returns public profiles matching the filter.
func (s *UserService) BrowseProfiles(ctx context.Context, filter repository.ProfileFilter, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, filter, limit, offset)
}
