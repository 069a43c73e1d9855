package service

import (
	"context"
	"strings"
	"testing"

	"circle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "Author", "author@example.com")

	t.Run("empty content fails", func(t *testing.T) {
		_, err := env.postService.CreatePost(ctx, author.ID, "   ", "")
		env.assertCode(t, err, models.CodeValidation)
	})

	t.Run("oversized content fails", func(t *testing.T) {
		_, err := env.postService.CreatePost(ctx, author.ID, strings.Repeat("a", maxPostLen+1), "")
		env.assertCode(t, err, models.CodeValidation)
	})

	t.Run("creates and bumps post count", func(t *testing.T) {
		post, err := env.postService.CreatePost(ctx, author.ID, "hello world", "https://img.example/1.png")
		require.NoError(t, err)
		assert.Equal(t, "hello world", post.Content)
		assert.Equal(t, "Author", post.User.Name)
		assert.Equal(t, 1, env.userByID(t, author.ID).PostCount)
	})
}

func TestUpdatePost_OwnershipAndValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "Author", "author@example.com")
	other := env.createUser(t, "Other", "other@example.com")
	post := env.createPost(t, author.ID, "original")

	_, err := env.postService.UpdatePost(ctx, other.ID, post.ID, "hijacked")
	env.assertCode(t, err, models.CodeForbidden)

	_, err = env.postService.UpdatePost(ctx, author.ID, post.ID, "")
	env.assertCode(t, err, models.CodeValidation)

	updated, err := env.postService.UpdatePost(ctx, author.ID, post.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "Author", "author@example.com")
	other := env.createUser(t, "Other", "other@example.com")

	post, err := env.postService.CreatePost(ctx, author.ID, "to delete", "")
	require.NoError(t, err)
	require.Equal(t, 1, env.userByID(t, author.ID).PostCount)

	err = env.postService.DeletePost(ctx, other.ID, post.ID)
	env.assertCode(t, err, models.CodeForbidden)

	require.NoError(t, env.postService.DeletePost(ctx, author.ID, post.ID))
	assert.Zero(t, env.userByID(t, author.ID).PostCount)

	_, err = env.postService.GetPost(ctx, post.ID)
	env.assertCode(t, err, models.CodeNotFound)
}
