package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateFeedback handles POST /api/feedback
func (s *Server) CreateFeedback(c *fiber.Ctx) error {
	var input service.CreateFeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	fb, err := s.feedbackService.CreateFeedback(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fb)
}

// GetUserFeedback handles GET /api/profiles/:id/feedback
func (s *Server) GetUserFeedback(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	entries, err := s.feedbackService.ListFeedbackForUser(c.UserContext(), userID, page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	rating, err := s.feedbackService.RatingForUser(c.UserContext(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"feedback": entries,
		"rating":   rating,
		"limit":    page.Limit,
		"offset":   page.Offset,
	})
}
