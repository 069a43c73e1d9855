package server

import (
	"circle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost creates a new post authored by the authenticated user
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Content  string `json:"content"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), userID, req.Content, req.ImageURL)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost returns a single post by ID
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost edits a post's content. Only the author may edit.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), userID, postID, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost soft-deletes a post. Only the author may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), userID, postID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// GetUserFeed returns the feed for the user in the route: that user's own
// posts plus posts from their accepted friends, newest first. The feed is
// keyed off the target user's friend graph, not the viewer's.
func (s *Server) GetUserFeed(c *fiber.Ctx) error {
	feedUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	pq := parsePage(c)

	page, err := s.feedService.GetFeed(c.UserContext(), feedUserID, pq.Page, pq.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}
