package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAdminStats handles GET /api/admin/stats
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	stats, err := s.adminService.GetStats(c.UserContext())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(stats)
}

// GetAdminUsers handles GET /api/admin/users
func (s *Server) GetAdminUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	users, total, err := s.adminService.ListUsers(c.UserContext(), c.Query("search"), page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

// GetUserActivity handles GET /api/admin/users/:id/activity
func (s *Server) GetUserActivity(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	activity, err := s.adminService.UserActivity(c.UserContext(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(activity)
}

// BanUser handles POST /api/admin/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.adminService.BanUser(c.UserContext(), userID, req.Reason)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.adminService.UnbanUser(c.UserContext(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// GetAdminSwaps handles GET /api/admin/swaps
func (s *Server) GetAdminSwaps(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	swaps, total, err := s.adminService.ListSwaps(c.UserContext(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"swaps":  swaps,
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

// GetAdminMessages handles GET /api/admin/messages
func (s *Server) GetAdminMessages(c *fiber.Ctx) error {
	messages, err := s.adminService.ListAllMessages(c.UserContext())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"messages": messages,
	})
}

// CreateMessage handles POST /api/admin/messages
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	var input service.MessageInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.adminService.CreateMessage(c.UserContext(), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// UpdateMessage handles PUT /api/admin/messages/:id
func (s *Server) UpdateMessage(c *fiber.Ctx) error {
	msgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.MessageInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.adminService.UpdateMessage(c.UserContext(), msgID, input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(msg)
}

// DeleteMessage handles DELETE /api/admin/messages/:id
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	msgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeleteMessage(c.UserContext(), msgID); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetActiveMessages handles GET /api/messages, the public announcement feed.
func (s *Server) GetActiveMessages(c *fiber.Ctx) error {
	messages, err := s.adminService.ActiveMessages(c.UserContext())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"messages": messages,
	})
}
