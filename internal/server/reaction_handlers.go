package server

import (
	"circle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// React toggles the authenticated user's reaction on a post or comment.
// Reacting with the emoji already present removes it; reacting with the
// other emoji switches it. The response reports the outcome and the
// target's refreshed tally.
func (s *Server) React(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		TargetType string `json:"target_type"`
		TargetID   uint   `json:"target_id"`
		Emoji      string `json:"emoji"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TargetID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Target ID is required"))
	}

	result, err := s.reactionService.React(c.UserContext(), userID,
		models.ReactionTargetKind(req.TargetType), req.TargetID, models.ReactionEmoji(req.Emoji))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"outcome": result.Outcome,
		"tally":   result.Tally,
	})
}
