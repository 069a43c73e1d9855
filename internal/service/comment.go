package service

import (
	"context"
	"strings"

	"circle/internal/middleware"
	"circle/internal/models"
	"circle/internal/repository"
)

const maxCommentLen = 2000

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	counters    *CounterService
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, counters *CounterService) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		counters:    counters,
	}
}

// CreateComment adds a comment to a post and refreshes the post's comment
// count.
func (s *CommentService) CreateComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment content too long (max 2000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  userID,
		PostID:  postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.recomputeCommentCount(ctx, postID)

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// GetComment returns a comment by ID.
func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListComments returns one page of a post's comments, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, page, limit int) (*models.CommentPage, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	limit, offset := normalizePage(page, limit)
	count, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &models.CommentPage{
		Comments:   comments,
		TotalPages: totalPages(count, limit),
		Count:      count,
	}, nil
}

// UpdateComment edits a comment. Only the author may edit.
func (s *CommentService) UpdateComment(ctx context.Context, userID, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment content too long (max 2000 characters)")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment soft-deletes a comment and refreshes the post's comment
// count. The comment author or the post author may delete.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		post, err := s.postRepo.GetByID(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post.UserID != userID {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	s.recomputeCommentCount(ctx, comment.PostID)
	return nil
}

func (s *CommentService) recomputeCommentCount(ctx context.Context, postID uint) {
	if err := s.counters.RecomputeCommentCount(ctx, postID); err != nil {
		middleware.Logger.WarnContext(ctx, "comment count recompute failed",
			"post_id", postID, "error", err)
	}
}
