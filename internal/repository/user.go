package repository

import (
	"context"
	"errors"

	"circle/internal/cache"
	"circle/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, name string, limit, offset int) ([]models.User, error)
	Count(ctx context.Context, name string) (int64, error)
	ListByIDs(ctx context.Context, ids []uint, name string, limit, offset int) ([]models.User, error)
	CountByIDs(ctx context.Context, ids []uint, name string) (int64, error)
	UpdateFriendCount(ctx context.Context, id uint, count int) error
	UpdatePostCount(ctx context.Context, id uint, count int) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("Email already registered")
		}
		return models.NewStorageError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.CacheAside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewStorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStorageError(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("Email already registered")
		}
		return models.NewStorageError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// nameFilter narrows a user query by case-insensitive name substring.
// LOWER/LIKE is used instead of ILIKE so the same query runs on sqlite.
func nameFilter(q *gorm.DB, name string) *gorm.DB {
	if name == "" {
		return q
	}
	return q.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
}

func (r *userRepository) List(ctx context.Context, name string, limit, offset int) ([]models.User, error) {
	var users []models.User
	q := nameFilter(r.db.WithContext(ctx).Model(&models.User{}), name)
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, name string) (int64, error) {
	var count int64
	q := nameFilter(r.db.WithContext(ctx).Model(&models.User{}), name)
	if err := q.Count(&count).Error; err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []uint, name string, limit, offset int) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	q := nameFilter(r.db.WithContext(ctx).Model(&models.User{}).Where("id IN ?", ids), name)
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return users, nil
}

func (r *userRepository) CountByIDs(ctx context.Context, ids []uint, name string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	q := nameFilter(r.db.WithContext(ctx).Model(&models.User{}).Where("id IN ?", ids), name)
	if err := q.Count(&count).Error; err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}

// UpdateFriendCount overwrites the denormalized friend counter. UpdateColumn
// skips the updated_at bump; counter maintenance is not a profile edit.
func (r *userRepository) UpdateFriendCount(ctx context.Context, id uint, count int) error {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("friend_count", count).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) UpdatePostCount(ctx context.Context, id uint, count int) error {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("post_count", count).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}
