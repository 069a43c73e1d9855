package service

import (
	"context"
	"testing"

	"circle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputesHealDriftedCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")

	_, err := env.friendService.SendFriendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.friendService.RespondToRequest(ctx, bob.ID, alice.ID, models.FriendshipStatusAccepted)
	require.NoError(t, err)
	env.createPost(t, alice.ID, "post")

	// Fake drift of the denormalized columns.
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", alice.ID).
		UpdateColumn("friend_count", 40).Error)
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", alice.ID).
		UpdateColumn("post_count", 12).Error)

	require.NoError(t, env.counterService.RecomputeFriendCount(ctx, alice.ID))
	require.NoError(t, env.counterService.RecomputePostCount(ctx, alice.ID))

	got := env.userByID(t, alice.ID)
	assert.Equal(t, 1, got.FriendCount)
	assert.Equal(t, 1, got.PostCount)
}

func TestRecomputeReactionTally_UnknownKind(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.counterService.RecomputeReactionTally(context.Background(), "Story", 1)
	env.assertCode(t, err, models.CodeValidation)
}

func TestRecomputeCommentCountIgnoresDeleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "Author", "author@example.com")
	post := env.createPost(t, author.ID, "post")

	c1, err := env.commentService.CreateComment(ctx, author.ID, post.ID, "one")
	require.NoError(t, err)
	_, err = env.commentService.CreateComment(ctx, author.ID, post.ID, "two")
	require.NoError(t, err)

	require.NoError(t, env.commentService.DeleteComment(ctx, author.ID, c1.ID))

	var got models.Post
	require.NoError(t, env.db.First(&got, post.ID).Error)
	assert.Equal(t, 1, got.CommentCount)
}
