package server

import (
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	var input service.CreateSwapInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	swap, err := s.swapService.CreateSwap(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetMySwaps handles GET /api/swaps. The "box" query parameter selects
// sent, received, or all; "status" narrows by swap status.
func (s *Server) GetMySwaps(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	swaps, err := s.swapService.ListSwaps(
		c.UserContext(),
		currentUserID(c),
		repository.SwapBox(c.Query("box", string(repository.SwapBoxAll))),
		c.Query("status"),
		page.Limit,
		page.Offset,
	)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"swaps":  swaps,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

// GetSwap handles GET /api/swaps/:id
func (s *Server) GetSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.GetSwap(c.UserContext(), currentUserID(c), swapID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(swap)
}

// TransitionSwap handles PATCH /api/swaps/:id/status
func (s *Server) TransitionSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.TransitionInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	swap, err := s.swapService.Transition(c.UserContext(), currentUserID(c), swapID, input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(swap)
}

// DeleteSwap handles DELETE /api/swaps/:id
func (s *Server) DeleteSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.swapService.DeleteSwap(c.UserContext(), currentUserID(c), swapID); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
