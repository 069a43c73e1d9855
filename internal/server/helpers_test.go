package server

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	cases := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"commentId", "comment ID"},
		{"someLongThingId", "some long thing ID"},
		{"weird", "weird"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, humanizeParam(tc.param), tc.param)
	}
}

func TestParsePage(t *testing.T) {
	app := fiber.New()

	var got PageQuery
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePage(c)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		name  string
		query string
		want  PageQuery
	}{
		{"defaults", "", PageQuery{Page: 1, Limit: 10}},
		{"explicit", "?page=3&limit=25", PageQuery{Page: 3, Limit: 25}},
		{"zero page clamped", "?page=0", PageQuery{Page: 1, Limit: 10}},
		{"negative limit defaulted", "?limit=-5", PageQuery{Page: 1, Limit: 10}},
		{"limit capped", "?limit=5000", PageQuery{Page: 1, Limit: 100}},
		{"garbage ignored", "?page=abc&limit=xyz", PageQuery{Page: 1, Limit: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/"+tc.query, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tc.want, got)
		})
	}
}
