package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"circle/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedName  string
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "email"}).
					AddRow(1, "Test User", "test@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedName: "Test User",
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, models.CodeNotFound, appErr.Code)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedName, user.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(1, 1).
		WillReturnError(errors.New("connection timeout"))

	user, err := repo.GetByID(ctx, 1)
	assert.Error(t, err)
	assert.Nil(t, user)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeStorage, appErr.Code)
	// Storage detail stays out of the client-facing message.
	assert.NotContains(t, appErr.Message, "connection timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "First", Email: "dup@example.com", Password: "x"}))

	err := repo.Create(ctx, &models.User{Name: "Second", Email: "dup@example.com", Password: "x"})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepository_ListFiltersByName(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "Alice Smith", "alice@example.com")
	createTestUser(t, db, "Bob Jones", "bob@example.com")
	createTestUser(t, db, "alicia keys", "alicia@example.com")

	users, err := repo.List(ctx, "ali", 10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	count, err := repo.Count(ctx, "ali")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	users, err = repo.List(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	count, err = repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUserRepository_ListByIDs(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u1 := createTestUser(t, db, "Alice", "alice@example.com")
	u2 := createTestUser(t, db, "Bob", "bob@example.com")
	createTestUser(t, db, "Carol", "carol@example.com")

	users, err := repo.ListByIDs(ctx, []uint{u1.ID, u2.ID}, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.ListByIDs(ctx, []uint{u1.ID, u2.ID}, "ali", 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)

	// Empty id set short-circuits without touching the DB.
	users, err = repo.ListByIDs(ctx, nil, "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, users)

	count, err := repo.CountByIDs(ctx, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUserRepository_CounterUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Counted", "counted@example.com")

	require.NoError(t, repo.UpdateFriendCount(ctx, user.ID, 7))
	require.NoError(t, repo.UpdatePostCount(ctx, user.ID, 3))

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, 7, got.FriendCount)
	assert.Equal(t, 3, got.PostCount)

	// Recomputes overwrite, they never accumulate.
	require.NoError(t, repo.UpdateFriendCount(ctx, user.ID, 0))
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, 0, got.FriendCount)
}
