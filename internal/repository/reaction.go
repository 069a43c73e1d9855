package repository

import (
	"context"
	"errors"

	"circle/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines persistence operations for reactions. The
// (target_type, target_id, author_id) unique index caps each author at one
// reaction per target; Create leans on it instead of find-then-create.
type ReactionRepository interface {
	Create(ctx context.Context, reaction *models.Reaction) (bool, error)
	GetByTargetAndAuthor(ctx context.Context, kind models.ReactionTargetKind, targetID, authorID uint) (*models.Reaction, error)
	UpdateEmoji(ctx context.Context, id uint, emoji models.ReactionEmoji) error
	Delete(ctx context.Context, id uint) error
	Tally(ctx context.Context, kind models.ReactionTargetKind, targetID uint) (models.ReactionTally, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository returns a new ReactionRepository implementation.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Create inserts the reaction unless the author already reacted to the
// target. Returns false without error when an existing row won; callers
// re-read and toggle against it.
func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "target_type"},
				{Name: "target_id"},
				{Name: "author_id"},
			},
			DoNothing: true,
		}).
		Create(reaction)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, models.NewStorageError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *reactionRepository) GetByTargetAndAuthor(ctx context.Context, kind models.ReactionTargetKind, targetID, authorID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ? AND author_id = ?", kind, targetID, authorID).
		First(&reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStorageError(err)
	}
	return &reaction, nil
}

func (r *reactionRepository) UpdateEmoji(ctx context.Context, id uint, emoji models.ReactionEmoji) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("id = ?", id).
		Update("emoji", emoji).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

// Delete removes the row outright. Reactions are never soft-deleted; the
// unique index slot has to free up for the next toggle.
func (r *reactionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Reaction{}, id).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

// Tally recounts a target's reactions grouped by emoji.
func (r *reactionRepository) Tally(ctx context.Context, kind models.ReactionTargetKind, targetID uint) (models.ReactionTally, error) {
	var rows []struct {
		Emoji models.ReactionEmoji
		Count int
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("emoji, COUNT(*) as count").
		Where("target_type = ? AND target_id = ?", kind, targetID).
		Group("emoji").
		Scan(&rows).Error; err != nil {
		return models.ReactionTally{}, models.NewStorageError(err)
	}

	var tally models.ReactionTally
	for _, row := range rows {
		switch row.Emoji {
		case models.ReactionEmojiLike:
			tally.Like = row.Count
		case models.ReactionEmojiDislike:
			tally.Dislike = row.Count
		}
	}
	return tally, nil
}
