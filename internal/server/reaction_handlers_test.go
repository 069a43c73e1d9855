package server

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionEndpoint(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)

	alice := createServerTestUser(t, s, "Alice", "alice@example.com")
	bob := createServerTestUser(t, s, "Bob", "bob@example.com")

	status, body := doJSON(t, app, "POST", "/api/posts/", alice.ID, fiber.Map{
		"content": "React to me",
	})
	require.Equal(t, fiber.StatusCreated, status)
	postID := body["id"].(float64)

	react := func(userID uint, emoji string) (int, map[string]any) {
		return doJSON(t, app, "POST", "/api/reactions", userID, fiber.Map{
			"target_type": "Post",
			"target_id":   postID,
			"emoji":       emoji,
		})
	}

	t.Run("first reaction is created", func(t *testing.T) {
		status, body := react(bob.ID, "like")
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "created", body["outcome"])
		tally := body["tally"].(map[string]any)
		assert.Equal(t, float64(1), tally["like"])
	})

	t.Run("other emoji switches", func(t *testing.T) {
		status, body := react(bob.ID, "dislike")
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "switched", body["outcome"])
		tally := body["tally"].(map[string]any)
		assert.Equal(t, float64(0), tally["like"])
		assert.Equal(t, float64(1), tally["dislike"])
	})

	t.Run("same emoji removes", func(t *testing.T) {
		status, body := react(bob.ID, "dislike")
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "removed", body["outcome"])
		tally := body["tally"].(map[string]any)
		assert.Equal(t, float64(0), tally["dislike"])
	})

	t.Run("unknown emoji rejected", func(t *testing.T) {
		status, _ := react(bob.ID, "heart")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("unknown target type rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/reactions", bob.ID, fiber.Map{
			"target_type": "profile",
			"target_id":   postID,
			"emoji":       "like",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("missing target is not found", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/reactions", bob.ID, fiber.Map{
			"target_type": "Post",
			"target_id":   99999,
			"emoji":       "like",
		})
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("missing target ID rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/reactions", bob.ID, fiber.Map{
			"target_type": "Post",
			"emoji":       "like",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}
