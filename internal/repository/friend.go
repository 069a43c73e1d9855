package repository

import (
	"context"
	"errors"

	"circle/internal/cache"
	"circle/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines persistence operations for friendship edges.
// At most one edge exists per unordered user pair; the pair_key unique
// index is the guarantee and Create leans on it for atomicity.
type FriendRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.Friendship, error)
	GetByPair(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
	Save(ctx context.Context, friendship *models.Friendship) error
	Delete(ctx context.Context, id uint) error
	IncomingRequesterIDs(ctx context.Context, userID uint) ([]uint, error)
	OutgoingRecipientIDs(ctx context.Context, userID uint) ([]uint, error)
	ListInvolving(ctx context.Context, userID uint) ([]models.Friendship, error)
	AcceptedUserIDs(ctx context.Context, userID uint) ([]uint, error)
	CountAccepted(ctx context.Context, userID uint) (int64, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository returns a new FriendRepository implementation.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// Create inserts the edge if no edge exists for the pair. Returns false
// without error when another edge won the race; callers re-read the pair
// and resolve against the surviving row.
func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_key"}},
			DoNothing: true,
		}).
		Create(friendship)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, models.NewStorageError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *friendRepository) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		First(&friendship, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friendship", id)
		}
		return nil, models.NewStorageError(err)
	}
	return &friendship, nil
}

// GetByPair returns the edge between two users regardless of direction,
// or nil when no edge exists.
func (r *friendRepository) GetByPair(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.WithContext(ctx).
		Where("pair_key = ?", models.FriendshipPairKey(userID1, userID2)).
		Preload("FromUser").
		Preload("ToUser").
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStorageError(err)
	}
	return &friendship, nil
}

// Save persists a transitioned edge. Status and endpoint reassignment go
// through here; BeforeSave keeps pair_key in step with the endpoints.
func (r *friendRepository) Save(ctx context.Context, friendship *models.Friendship) error {
	if err := r.db.WithContext(ctx).Save(friendship).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidateUser(ctx, friendship.FromUserID)
	cache.InvalidateUser(ctx, friendship.ToUserID)
	return nil
}

func (r *friendRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Friendship{}, id).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

// IncomingRequesterIDs returns the ids of users with a pending request
// addressed to the given user.
func (r *friendRepository) IncomingRequesterIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("to_user_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Pluck("from_user_id", &ids).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return ids, nil
}

// OutgoingRecipientIDs returns the ids of users the given user has a
// pending request out to.
func (r *friendRepository) OutgoingRecipientIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("from_user_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Pluck("to_user_id", &ids).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return ids, nil
}

// ListInvolving returns every edge the user is an endpoint of, in any
// status. Used to annotate user lists with the viewer's relationship.
func (r *friendRepository) ListInvolving(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	if err := r.db.WithContext(ctx).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Find(&friendships).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return friendships, nil
}

// AcceptedUserIDs returns the ids of the user's accepted friends.
func (r *friendRepository) AcceptedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	var friendships []models.Friendship
	if err := r.db.WithContext(ctx).
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?",
			userID, userID, models.FriendshipStatusAccepted).
		Find(&friendships).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	ids := make([]uint, 0, len(friendships))
	for i := range friendships {
		ids = append(ids, friendships[i].OtherUserID(userID))
	}
	return ids, nil
}

func (r *friendRepository) CountAccepted(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?",
			userID, userID, models.FriendshipStatusAccepted).
		Count(&count).Error; err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}
