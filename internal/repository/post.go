package repository

import (
	"context"
	"errors"

	"circle/internal/cache"
	"circle/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error)
	CountByAuthors(ctx context.Context, authorIDs []uint) (int64, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	UpdateCommentCount(ctx context.Context, id uint, count int) error
	UpdateReactionTally(ctx context.Context, id uint, tally models.ReactionTally) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidateFeed(ctx, post.UserID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.CacheAside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewStorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidateFeed(ctx, post.UserID)
	return nil
}

// Delete soft-deletes a post. The row survives for the audit trail but no
// feed or counter query sees it afterwards.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// ListByAuthors returns one page of posts by any of the given authors,
// newest first. Soft-deleted posts are excluded by gorm's default scope.
func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return []*models.Post{}, nil
	}
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", authorIDs).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

func (r *postRepository) CountByAuthors(ctx context.Context, authorIDs []uint) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id IN ?", authorIDs).
		Count(&count).Error; err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}

func (r *postRepository) UpdateCommentCount(ctx context.Context, id uint, count int) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("comment_count", count).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// UpdateReactionTally overwrites the denormalized like/dislike counters.
func (r *postRepository) UpdateReactionTally(ctx context.Context, id uint, tally models.ReactionTally) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"like_count":    tally.Like,
			"dislike_count": tally.Dislike,
		}).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
