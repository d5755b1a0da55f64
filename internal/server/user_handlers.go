package server

import (
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByIDWithSkills(c.UserContext(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	rating, err := s.feedbackRepo.RatingSummary(c.UserContext(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":   user,
		"rating": rating,
	})
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var input service.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// GetProfile handles GET /api/profiles/:id. The viewer may be anonymous;
// owners can still see their own private profile.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	profile, err := s.userService.GetProfile(c.UserContext(), viewerID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// BrowseProfiles handles GET /api/profiles
func (s *Server) BrowseProfiles(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	filter := repository.ProfileFilter{
		Search:       c.Query("search"),
		Availability: c.Query("availability"),
		SkillID:      uint(c.QueryInt("skill_id", 0)),
		Category:     c.Query("category"),
	}

	users, err := s.userService.BrowseProfiles(c.UserContext(), filter, page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	response := fiber.Map{
		"users":  users,
		"limit":  page.Limit,
		"offset": page.Offset,
	}

	// Inline rating summaries are behind a rollout flag.
	viewerID, _ := s.optionalUserID(c)
	if s.flags.Enabled("browse_ratings", viewerID) {
		ratings := make(map[uint]*models.RatingSummary, len(users))
		for _, user := range users {
			summary, err := s.feedbackService.RatingForUser(c.UserContext(), user.ID)
			if err != nil {
				return mapServiceError(c, err)
			}
			ratings[user.ID] = summary
		}
		response["ratings"] = ratings
	}

	return c.JSON(response)
}

// GetMySkills handles GET /api/users/me/skills
func (s *Server) GetMySkills(c *fiber.Ctx) error {
	skills, err := s.skillService.ListUserSkills(c.UserContext(), currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"skills": skills,
	})
}

// AddMySkill handles POST /api/users/me/skills
func (s *Server) AddMySkill(c *fiber.Ctx) error {
	var input service.AddUserSkillInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	link, err := s.skillService.AddUserSkill(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

// RemoveMySkill handles DELETE /api/users/me/skills/:skillId.
// The "type" query parameter picks the offered or wanted link.
func (s *Server) RemoveMySkill(c *fiber.Ctx) error {
	skillID, err := s.parseID(c, "skillId")
	if err != nil {
		return nil
	}

	skillType := models.SkillType(c.Query("type", string(models.SkillTypeOffered)))
	if err := s.skillService.RemoveUserSkill(c.UserContext(), currentUserID(c), skillID, skillType); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
