package repository

import (
	"context"
	"errors"

	"circle/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
	UpdateReactionTally(ctx context.Context, id uint, tally models.ReactionTally) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewStorageError(err)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

// ListByPost returns one page of a post's comments, oldest first.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Preload("User").
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return comments, nil
}

// CountByPost counts a post's live comments. Soft-deleted comments are
// excluded, which is what the comment-count recompute relies on.
func (r *commentRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}

func (r *commentRepository) UpdateReactionTally(ctx context.Context, id uint, tally models.ReactionTally) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"like_count":    tally.Like,
			"dislike_count": tally.Dislike,
		}).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}
