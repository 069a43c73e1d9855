package server

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRequestEndpoints(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)

	alice := createServerTestUser(t, s, "Alice", "alice@example.com")
	bob := createServerTestUser(t, s, "Bob", "bob@example.com")

	t.Run("send creates a pending request", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", "/api/friends/requests", alice.ID, fiber.Map{
			"to": bob.ID,
		})
		require.Equal(t, fiber.StatusCreated, status)
		assert.Equal(t, "pending", body["status"])
	})

	t.Run("duplicate send conflicts", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", "/api/friends/requests", alice.ID, fiber.Map{
			"to": bob.ID,
		})
		assert.Equal(t, fiber.StatusConflict, status)
		assert.Equal(t, "Friend request already sent", body["error"])
	})

	t.Run("reciprocal send conflicts", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/friends/requests", bob.ID, fiber.Map{
			"to": alice.ID,
		})
		assert.Equal(t, fiber.StatusConflict, status)
	})

	t.Run("self request rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/friends/requests", alice.ID, fiber.Map{
			"to": alice.ID,
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("missing body rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/friends/requests", alice.ID, fiber.Map{})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("request shows in recipient's incoming list", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/api/friends/requests", bob.ID, nil)
		require.Equal(t, fiber.StatusOK, status)
		users, ok := body["users"].([]any)
		require.True(t, ok)
		require.Len(t, users, 1)
		sender := users[0].(map[string]any)
		assert.Equal(t, "Alice", sender["name"])
	})

	t.Run("request shows in sender's outgoing list", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/api/friends/requests/outgoing", alice.ID, nil)
		require.Equal(t, fiber.StatusOK, status)
		users, ok := body["users"].([]any)
		require.True(t, ok)
		require.Len(t, users, 1)
		recipient := users[0].(map[string]any)
		assert.Equal(t, "Bob", recipient["name"])
	})

	t.Run("initiator cannot accept their own request", func(t *testing.T) {
		status, _ := doJSON(t, app, "PUT",
			fmt.Sprintf("/api/friends/requests/%d", bob.ID), alice.ID,
			fiber.Map{"status": "accepted"})
		// Alice sent the request, so from Alice's side there is no
		// incoming request from Bob to respond to.
		assert.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run("invalid decision rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, "PUT",
			fmt.Sprintf("/api/friends/requests/%d", alice.ID), bob.ID,
			fiber.Map{"status": "maybe"})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("recipient accepts", func(t *testing.T) {
		status, body := doJSON(t, app, "PUT",
			fmt.Sprintf("/api/friends/requests/%d", alice.ID), bob.ID,
			fiber.Map{"status": "accepted"})
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "accepted", body["status"])
	})

	t.Run("accepting again is not found", func(t *testing.T) {
		status, _ := doJSON(t, app, "PUT",
			fmt.Sprintf("/api/friends/requests/%d", alice.ID), bob.ID,
			fiber.Map{"status": "accepted"})
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("friends list includes the new friend", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/api/friends/", alice.ID, nil)
		require.Equal(t, fiber.StatusOK, status)
		users, ok := body["users"].([]any)
		require.True(t, ok)
		require.Len(t, users, 1)
		friend := users[0].(map[string]any)
		assert.Equal(t, "Bob", friend["name"])
	})

	t.Run("unfriend removes the edge", func(t *testing.T) {
		status, _ := doJSON(t, app, "DELETE",
			fmt.Sprintf("/api/friends/%d", bob.ID), alice.ID, nil)
		require.Equal(t, fiber.StatusOK, status)

		status, body := doJSON(t, app, "GET", "/api/friends/", alice.ID, nil)
		require.Equal(t, fiber.StatusOK, status)
		users, ok := body["users"].([]any)
		require.True(t, ok)
		assert.Empty(t, users)
	})
}

func TestCancelFriendRequestEndpoint(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)

	alice := createServerTestUser(t, s, "Alice", "alice@example.com")
	bob := createServerTestUser(t, s, "Bob", "bob@example.com")

	status, _ := doJSON(t, app, "POST", "/api/friends/requests", alice.ID, fiber.Map{
		"to": bob.ID,
	})
	require.Equal(t, fiber.StatusCreated, status)

	t.Run("recipient has nothing to cancel", func(t *testing.T) {
		status, _ := doJSON(t, app, "DELETE",
			fmt.Sprintf("/api/friends/requests/%d", alice.ID), bob.ID, nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("sender cancels", func(t *testing.T) {
		status, _ := doJSON(t, app, "DELETE",
			fmt.Sprintf("/api/friends/requests/%d", bob.ID), alice.ID, nil)
		assert.Equal(t, fiber.StatusOK, status)
	})

	t.Run("cancel again is not found", func(t *testing.T) {
		status, _ := doJSON(t, app, "DELETE",
			fmt.Sprintf("/api/friends/requests/%d", bob.ID), alice.ID, nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}
