package server

import (
	"circle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest creates (or resurrects) a pending friend request
// from the authenticated user to the target user.
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		To uint `json:"to"`
	}
	if err := c.BodyParser(&req); err != nil || req.To == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Target user ID is required"))
	}

	friendship, err := s.friendService.SendFriendRequest(c.UserContext(), userID, req.To)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// GetIncomingRequests lists the users with a pending request addressed to
// the authenticated user, optionally filtered by name.
func (s *Server) GetIncomingRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pq := parsePage(c)
	name := c.Query("name")

	page, err := s.friendService.ListIncomingRequests(c.UserContext(), userID, name, pq.Page, pq.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// GetOutgoingRequests lists the users the authenticated user has a pending
// request out to, optionally filtered by name.
func (s *Server) GetOutgoingRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pq := parsePage(c)
	name := c.Query("name")

	page, err := s.friendService.ListOutgoingRequests(c.UserContext(), userID, name, pq.Page, pq.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// RespondToFriendRequest accepts or declines the pending request sent by
// the user identified in the route.
func (s *Server) RespondToFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	initiatorID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	friendship, err := s.friendService.RespondToRequest(
		c.UserContext(), userID, initiatorID, models.FriendshipStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(friendship)
}

// CancelFriendRequest withdraws a pending request the authenticated user
// sent to the user identified in the route.
func (s *Server) CancelFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.friendService.CancelRequest(c.UserContext(), userID, targetID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Friend request cancelled",
	})
}

// Unfriend removes an accepted friendship between the authenticated user
// and the user identified in the route.
func (s *Server) Unfriend(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.friendService.Unfriend(c.UserContext(), userID, targetID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Friend removed",
	})
}

// GetFriends lists the authenticated user's accepted friends, optionally
// filtered by name.
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pq := parsePage(c)
	name := c.Query("name")

	page, err := s.friendService.ListFriends(c.UserContext(), userID, name, pq.Page, pq.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}
