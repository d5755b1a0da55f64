package service

import (
	"context"
	"strconv"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
)

// FeedbackService provides rating and feedback business logic.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	swapRepo     repository.SwapRepository
	userRepo     repository.UserRepository

	// requireSwap gates feedback on a completed swap between the two users.
	requireSwap bool
}

// NewFeedbackService returns a new FeedbackService.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, swapRepo repository.SwapRepository, userRepo repository.UserRepository, requireSwap bool) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		swapRepo:     swapRepo,
		userRepo:     userRepo,
		requireSwap:  requireSwap,
	}
}

// CreateFeedbackInput carries the fields for a new feedback entry.
type CreateFeedbackInput struct {
	ToUserID      uint   `json:"to_user_id"`
	SwapRequestID *uint  `json:"swap_request_id"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	IsPublic      *bool  `json:"is_public"`
}

// CreateFeedback validates and stores a feedback entry. When a swap is
// referenced it must be a completed swap between the two users, and each
// rater gets one entry per swap. Without a swap reference the service
// policy decides whether a completed swap between the pair is still
// required.
func (s *FeedbackService) CreateFeedback(ctx context.Context, fromUserID uint, input CreateFeedbackInput) (*models.Feedback, error) {
	if input.ToUserID == fromUserID {
		return nil, models.NewValidationError("Cannot leave feedback for yourself")
	}
	if input.Rating < models.MinRating || input.Rating > models.MaxRating {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, models.NewValidationError("Comment is required")
	}

	if _, err := s.userRepo.GetByID(ctx, input.ToUserID); err != nil {
		return nil, err
	}

	if input.SwapRequestID != nil {
		swap, err := s.swapRepo.GetByID(ctx, *input.SwapRequestID)
		if err != nil {
			return nil, err
		}
		if swap.Status != models.SwapStatusCompleted {
			return nil, models.NewValidationError("Feedback requires a completed swap")
		}
		isPair := (swap.RequesterID == fromUserID && swap.ProviderID == input.ToUserID) ||
			(swap.RequesterID == input.ToUserID && swap.ProviderID == fromUserID)
		if !isPair {
			return nil, models.NewForbiddenError("You are not a party to this swap")
		}

		exists, err := s.feedbackRepo.ExistsForSwapAndRater(ctx, *input.SwapRequestID, fromUserID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, models.NewConflictError("Feedback for this swap already exists")
		}
	} else if s.requireSwap {
		completed, err := s.swapRepo.CompletedBetween(ctx, fromUserID, input.ToUserID)
		if err != nil {
			return nil, err
		}
		if !completed {
			return nil, models.NewValidationError("Feedback requires a completed swap with this user")
		}
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	fb := &models.Feedback{
		FromUserID:    fromUserID,
		ToUserID:      input.ToUserID,
		SwapRequestID: input.SwapRequestID,
		Rating:        input.Rating,
		Comment:       input.Comment,
		IsPublic:      isPublic,
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return nil, err
	}

	observability.RecordFeedback(strconv.Itoa(input.Rating))
	return fb, nil
}

// ListFeedbackForUser returns the public feedback a user has received.
func (s *FeedbackService) ListFeedbackForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Feedback, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListPublicForUser(ctx, userID, limit, offset)
}

// RatingForUser returns the public rating aggregate for a user.
func (s *FeedbackService) RatingForUser(ctx context.Context, userID uint) (*models.RatingSummary, error) {
	return s.feedbackRepo.RatingSummary(ctx, userID)
}
