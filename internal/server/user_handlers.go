package server

import (
	"circle/internal/models"
	"circle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the authenticated user's own profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile updates the authenticated user's profile fields
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// GetAllUsers returns a paginated user directory, optionally filtered by
// name, with each entry annotated with its friendship state relative to
// the viewer.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pq := parsePage(c)
	name := c.Query("name")

	page, err := s.userService.ListUsers(c.UserContext(), userID, name, pq.Page, pq.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// GetUserProfile returns another user's profile annotated with the
// friendship state between the viewer and that user.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetProfile(c.UserContext(), userID, targetID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}
