package service

import (
	"context"
	"strings"

	"circle/internal/middleware"
	"circle/internal/models"
	"circle/internal/repository"
)

const maxPostLen = 5000

// PostService provides post business logic.
type PostService struct {
	postRepo repository.PostRepository
	counters *CounterService
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, counters *CounterService) *PostService {
	return &PostService{postRepo: postRepo, counters: counters}
}

// CreatePost creates a post and refreshes the author's post count.
func (s *PostService) CreatePost(ctx context.Context, userID uint, content, imageURL string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Post content is required")
	}
	if len(content) > maxPostLen {
		return nil, models.NewValidationError("Post content too long (max 5000 characters)")
	}

	post := &models.Post{
		Content:  content,
		ImageURL: imageURL,
		UserID:   userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.recomputePostCount(ctx, userID)

	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a single post by id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost edits a post's content. Only the author may edit.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID uint, content string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Post content is required")
	}
	if len(content) > maxPostLen {
		return nil, models.NewValidationError("Post content too long (max 5000 characters)")
	}

	post.Content = content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost soft-deletes a post and refreshes the author's post count.
// Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	s.recomputePostCount(ctx, userID)
	return nil
}

func (s *PostService) recomputePostCount(ctx context.Context, userID uint) {
	if err := s.counters.RecomputePostCount(ctx, userID); err != nil {
		middleware.Logger.WarnContext(ctx, "post count recompute failed",
			"user_id", userID, "error", err)
	}
}
