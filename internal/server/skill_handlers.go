package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSkills handles GET /api/skills
func (s *Server) GetSkills(c *fiber.Ctx) error {
	skills, err := s.skillService.ListSkills(c.UserContext(), c.Query("category"), c.Query("search"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"skills": skills,
	})
}

// GetSkillCategories handles GET /api/skills/categories
func (s *Server) GetSkillCategories(c *fiber.Ctx) error {
	categories, err := s.skillService.ListCategories(c.UserContext())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"categories": categories,
	})
}

// CreateSkill handles POST /api/skills
func (s *Server) CreateSkill(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillService.CreateSkill(c.UserContext(), req.Name, req.Category)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}
