package repository

import (
	"context"
	"testing"

	"circle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionRepository_CreateOnePerAuthorPerTarget(t *testing.T) {
	db := openTestDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	post := &models.Post{Content: "target", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)

	created, err := repo.Create(ctx, &models.Reaction{
		TargetType: models.ReactionTargetPost,
		TargetID:   post.ID,
		AuthorID:   author.ID,
		Emoji:      models.ReactionEmojiLike,
	})
	require.NoError(t, err)
	assert.True(t, created)

	// Second insert for the same (target, author) loses to the index.
	created, err = repo.Create(ctx, &models.Reaction{
		TargetType: models.ReactionTargetPost,
		TargetID:   post.ID,
		AuthorID:   author.ID,
		Emoji:      models.ReactionEmojiDislike,
	})
	require.NoError(t, err)
	assert.False(t, created)

	// Same author, different target kind, same numeric id is distinct.
	created, err = repo.Create(ctx, &models.Reaction{
		TargetType: models.ReactionTargetComment,
		TargetID:   post.ID,
		AuthorID:   author.ID,
		Emoji:      models.ReactionEmojiLike,
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestReactionRepository_ToggleLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")

	reaction := &models.Reaction{
		TargetType: models.ReactionTargetPost,
		TargetID:   1,
		AuthorID:   author.ID,
		Emoji:      models.ReactionEmojiLike,
	}
	_, err := repo.Create(ctx, reaction)
	require.NoError(t, err)

	got, err := repo.GetByTargetAndAuthor(ctx, models.ReactionTargetPost, 1, author.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.ReactionEmojiLike, got.Emoji)

	require.NoError(t, repo.UpdateEmoji(ctx, got.ID, models.ReactionEmojiDislike))
	got, err = repo.GetByTargetAndAuthor(ctx, models.ReactionTargetPost, 1, author.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionEmojiDislike, got.Emoji)

	// Hard delete frees the index slot for a fresh reaction.
	require.NoError(t, repo.Delete(ctx, got.ID))
	got, err = repo.GetByTargetAndAuthor(ctx, models.ReactionTargetPost, 1, author.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	created, err := repo.Create(ctx, &models.Reaction{
		TargetType: models.ReactionTargetPost,
		TargetID:   1,
		AuthorID:   author.ID,
		Emoji:      models.ReactionEmojiLike,
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestReactionRepository_Tally(t *testing.T) {
	db := openTestDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	users := make([]*models.User, 0, 4)
	for _, e := range []string{"a", "b", "c", "d"} {
		users = append(users, createTestUser(t, db, "User "+e, e+"@example.com"))
	}

	for i, emoji := range []models.ReactionEmoji{
		models.ReactionEmojiLike,
		models.ReactionEmojiLike,
		models.ReactionEmojiLike,
		models.ReactionEmojiDislike,
	} {
		_, err := repo.Create(ctx, &models.Reaction{
			TargetType: models.ReactionTargetPost,
			TargetID:   42,
			AuthorID:   users[i].ID,
			Emoji:      emoji,
		})
		require.NoError(t, err)
	}

	tally, err := repo.Tally(ctx, models.ReactionTargetPost, 42)
	require.NoError(t, err)
	assert.Equal(t, 3, tally.Like)
	assert.Equal(t, 1, tally.Dislike)

	// Unreacted target tallies to zero, not an error.
	tally, err = repo.Tally(ctx, models.ReactionTargetPost, 999)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionTally{}, tally)
}
