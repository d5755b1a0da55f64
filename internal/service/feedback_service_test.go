package service

import (
	"context"
	"testing"

	"skillswap/internal/models"
)

func TestFeedbackServiceValidation(t *testing.T) {
	svc := NewFeedbackService(noopFeedbackRepo(), noopSwapRepo(), noopUserRepo(), false)
	ctx := context.Background()

	t.Run("self feedback", func(t *testing.T) {
		_, err := svc.CreateFeedback(ctx, 1, CreateFeedbackInput{ToUserID: 1, Rating: 5, Comment: "nice"})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("rating out of range", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := svc.CreateFeedback(ctx, 1, CreateFeedbackInput{ToUserID: 2, Rating: rating, Comment: "nice"})
			assertAppErrorCode(t, err, "VALIDATION_ERROR")
		}
	})

	t.Run("empty comment", func(t *testing.T) {
		_, err := svc.CreateFeedback(ctx, 1, CreateFeedbackInput{ToUserID: 2, Rating: 3, Comment: "   "})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestFeedbackServiceSwapChecks(t *testing.T) {
	ctx := context.Background()
	swapID := uint(7)

	completedSwap := func(_ context.Context, id uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{
			ID: id, RequesterID: 1, ProviderID: 2, Status: models.SwapStatusCompleted,
		}, nil
	}

	t.Run("swap not completed", func(t *testing.T) {
		swaps := noopSwapRepo()
		swaps.getByIDFn = func(_ context.Context, id uint) (*models.SwapRequest, error) {
			return &models.SwapRequest{ID: id, RequesterID: 1, ProviderID: 2, Status: models.SwapStatusAccepted}, nil
		}
		svc := NewFeedbackService(noopFeedbackRepo(), swaps, noopUserRepo(), true)
		_, err := svc.CreateFeedback(ctx, 1, CreateFeedbackInput{
			ToUserID: 2, SwapRequestID: &swapID, Rating: 5, Comment: "great",
		})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("outsider rates swap", func(t *testing.T) {
		swaps := noopSwapRepo()
		swaps.getByIDFn = completedSwap
		svc := NewFeedbackService(noopFeedbackRepo(), swaps, noopUserRepo(), true)
		_, err := svc.CreateFeedback(ctx, 9, CreateFeedbackInput{
			ToUserID: 2, SwapRequestID: &swapID, Rating: 5, Comment: "great",
		})
		assertAppErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("duplicate feedback for swap", func(t *testing.T) {
		swaps := noopSwapRepo()
		swaps.getByIDFn = completedSwap
		feedback := noopFeedbackRepo()
		feedback.existsForSwapAndRaterFn = func(context.Context, uint, uint) (bool, error) { return true, nil }

		svc := NewFeedbackService(feedback, swaps, noopUserRepo(), true)
		_, err := svc.CreateFeedback(ctx, 1, CreateFeedbackInput{
			ToUserID: 2, SwapRequestID: &swapID, Rating: 5, Comment: "great",
		})
		assertAppErrorCode(t, err, "CONFLICT")
	})

	t.Run("valid swap feedback", func(t *testing.T) {
		swaps := noopSwapRepo()
		swaps.getByIDFn = completedSwap
		svc := NewFeedbackService(noopFeedbackRepo(), swaps, noopUserRepo(), true)
		fb, err := svc.CreateFeedback(ctx, 2, CreateFeedbackInput{
			ToUserID: 1, SwapRequestID: &swapID, Rating: 4, Comment: "learned a lot",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fb.Rating != 4 || !fb.IsPublic {
			t.Fatalf("unexpected feedback: %#v", fb)
		}
	})
}

func TestFeedbackServiceRequireSwapPolicy(t *testing.T) {
	ctx := context.Background()
	input := CreateFeedbackInput{ToUserID: 2, Rating: 5, Comment: "helped me move"}

	t.Run("policy on blocks strangers", func(t *testing.T) {
		svc := NewFeedbackService(noopFeedbackRepo(), noopSwapRepo(), noopUserRepo(), true)
		_, err := svc.CreateFeedback(ctx, 1, input)
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("policy on allows completed pair", func(t *testing.T) {
		swaps := noopSwapRepo()
		swaps.completedBetweenFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
		svc := NewFeedbackService(noopFeedbackRepo(), swaps, noopUserRepo(), true)
		if _, err := svc.CreateFeedback(ctx, 1, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("policy off allows strangers", func(t *testing.T) {
		svc := NewFeedbackService(noopFeedbackRepo(), noopSwapRepo(), noopUserRepo(), false)
		if _, err := svc.CreateFeedback(ctx, 1, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestFeedbackServicePrivateFlag(t *testing.T) {
	private := false
	svc := NewFeedbackService(noopFeedbackRepo(), noopSwapRepo(), noopUserRepo(), false)
	fb, err := svc.CreateFeedback(context.Background(), 1, CreateFeedbackInput{
		ToUserID: 2, Rating: 3, Comment: "between us", IsPublic: &private,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.IsPublic {
		t.Fatal("expected private feedback")
	}
}
