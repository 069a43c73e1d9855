package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags returns the configured flags and their evaluated state
// for the authenticated user.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	return c.JSON(fiber.Map{
		"flags":     s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(userID),
	})
}
