package server

import (
	"circle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateComment adds a comment to the post named in the body
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		PostID  uint   `json:"post_id"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), userID, req.PostID, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment fetches a single comment by ID
func (s *Server) GetComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.UserContext(), commentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(comment)
}

// GetComments lists a post's comments, oldest first
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pq := parsePage(c)

	page, err := s.commentService.ListComments(c.UserContext(), postID, pq.Page, pq.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// UpdateComment edits a comment's content. Only the author may edit.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
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

	comment, err := s.commentService.UpdateComment(c.UserContext(), userID, commentID, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment removes a comment. The comment author or the post author
// may delete.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), userID, commentID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
