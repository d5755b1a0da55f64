package service

import (
	"context"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
)

// SwapService provides swap-request business logic: creation checks and the
// status state machine.
type SwapService struct {
	swapRepo      repository.SwapRepository
	userRepo      repository.UserRepository
	userSkillRepo repository.UserSkillRepository
}

// NewSwapService returns a new SwapService.
func NewSwapService(swapRepo repository.SwapRepository, userRepo repository.UserRepository, userSkillRepo repository.UserSkillRepository) *SwapService {
	return &SwapService{
		swapRepo:      swapRepo,
		userRepo:      userRepo,
		userSkillRepo: userSkillRepo,
	}
}

// CreateSwapInput carries the fields for a new swap request.
type CreateSwapInput struct {
	ProviderID       uint   `json:"provider_id"`
	RequestedSkillID uint   `json:"requested_skill_id"`
	OfferedSkillID   uint   `json:"offered_skill_id"`
	Message          string `json:"message"`
}

// CreateSwap validates and stores a new pending swap request. The requester
// must offer the skill they put up, the provider must offer the skill being
// asked for, and only one pending request per (requester, provider) pair may
// exist at a time.
func (s *SwapService) CreateSwap(ctx context.Context, requesterID uint, input CreateSwapInput) (*models.SwapRequest, error) {
	if input.ProviderID == requesterID {
		return nil, models.NewValidationError("Cannot send a swap request to yourself")
	}

	provider, err := s.userRepo.GetByID(ctx, input.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider.IsBanned {
		return nil, models.NewNotFoundError("User", input.ProviderID)
	}

	offersRequested, err := s.userSkillRepo.Offers(ctx, input.ProviderID, input.RequestedSkillID)
	if err != nil {
		return nil, err
	}
	if !offersRequested {
		return nil, models.NewValidationError("The provider does not offer the requested skill")
	}

	offersOwn, err := s.userSkillRepo.Offers(ctx, requesterID, input.OfferedSkillID)
	if err != nil {
		return nil, err
	}
	if !offersOwn {
		return nil, models.NewValidationError("You do not offer the skill you are proposing")
	}

	pending, err := s.swapRepo.PendingExists(ctx, requesterID, input.ProviderID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, models.NewConflictError("A pending request to this user already exists")
	}

	swap := &models.SwapRequest{
		RequesterID:      requesterID,
		ProviderID:       input.ProviderID,
		RequestedSkillID: input.RequestedSkillID,
		OfferedSkillID:   input.OfferedSkillID,
		Message:          input.Message,
		Status:           models.SwapStatusPending,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}

	observability.RecordSwapTransition(string(models.SwapStatusPending))
	return s.swapRepo.GetByID(ctx, swap.ID)
}

// GetSwap returns a swap visible to the given user. Only the two parties may
// view a swap.
func (s *SwapService) GetSwap(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.RequesterID != userID && swap.ProviderID != userID {
		return nil, models.NewForbiddenError("You are not a party to this swap")
	}
	return swap, nil
}

// ListSwaps returns the user's swaps for the chosen box, optionally filtered
// by status.
func (s *SwapService) ListSwaps(ctx context.Context, userID uint, box repository.SwapBox, status string, limit, offset int) ([]models.SwapRequest, error) {
	switch box {
	case repository.SwapBoxSent, repository.SwapBoxReceived, repository.SwapBoxAll:
	case "":
		box = repository.SwapBoxAll
	default:
		return nil, models.NewValidationError("box must be sent, received, or all")
	}

	var swapStatus models.SwapStatus
	if status != "" {
		swapStatus = models.SwapStatus(status)
		switch swapStatus {
		case models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusRejected,
			models.SwapStatusCancelled, models.SwapStatusCompleted:
		default:
			return nil, models.NewValidationError("Invalid swap status")
		}
	}

	return s.swapRepo.ListForUser(ctx, userID, box, swapStatus, limit, offset)
}

// TransitionInput carries the fields for a status change.
type TransitionInput struct {
	Status models.SwapStatus `json:"status"`
	Reason string            `json:"reason,omitempty"`
}

// Transition applies one step of the swap state machine on behalf of the
// acting user. Allowed steps:
//
//	pending  -> accepted, rejected  (provider only)
//	pending  -> cancelled           (requester only)
//	accepted -> completed           (either party)
//
// A disallowed actor yields FORBIDDEN; a disallowed step yields CONFLICT.
func (s *SwapService) Transition(ctx context.Context, userID, swapID uint, input TransitionInput) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.RequesterID != userID && swap.ProviderID != userID {
		return nil, models.NewForbiddenError("You are not a party to this swap")
	}

	from := swap.Status

	switch input.Status {
	case models.SwapStatusAccepted, models.SwapStatusRejected:
		if from != models.SwapStatusPending {
			return nil, models.NewConflictError("Only pending swaps can be answered")
		}
		if swap.ProviderID != userID {
			return nil, models.NewForbiddenError("Only the provider can answer a swap request")
		}
	case models.SwapStatusCancelled:
		if from != models.SwapStatusPending {
			return nil, models.NewConflictError("Only pending swaps can be cancelled")
		}
		if swap.RequesterID != userID {
			return nil, models.NewForbiddenError("Only the requester can cancel a swap request")
		}
		swap.CancelledReason = input.Reason
	case models.SwapStatusCompleted:
		if from != models.SwapStatusAccepted {
			return nil, models.NewConflictError("Only accepted swaps can be completed")
		}
		now := time.Now().UTC()
		swap.CompletedAt = &now
	default:
		return nil, models.NewValidationError("Invalid target status")
	}

	swap.Status = input.Status
	if err := s.swapRepo.UpdateStatus(ctx, swap); err != nil {
		return nil, err
	}

	observability.RecordSwapTransition(string(input.Status))
	return s.swapRepo.GetByID(ctx, swap.ID)
}

// DeleteSwap removes a pending swap the user created. Anything past pending
// stays on record.
func (s *SwapService) DeleteSwap(ctx context.Context, userID, swapID uint) error {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return err
	}
	if swap.RequesterID != userID {
		return models.NewForbiddenError("Only the requester can delete a swap request")
	}
	if swap.Status != models.SwapStatusPending {
		return models.NewConflictError("Only pending swaps can be deleted")
	}

	deleted, err := s.swapRepo.DeletePending(ctx, swapID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		// The swap moved on between the read and the delete
		return models.NewConflictError("Only pending swaps can be deleted")
	}
	return nil
}
