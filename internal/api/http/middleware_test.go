package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/task-tracker/internal/observability"
)

func TestRequestTimeoutBoundsHandlerContext(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 250*time.Millisecond)

	var hasDeadline bool
	var remaining time.Duration
	app.Get("/ping", func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		hasDeadline = ok
		if ok {
			remaining = time.Until(deadline)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, hasDeadline)
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, 250*time.Millisecond)
}

func TestRequestTimeoutDisabledLeavesContextUnbounded(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	var hasDeadline bool
	app.Get("/ping", func(c *fiber.Ctx) error {
		_, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, hasDeadline)
}

func TestErrorMiddlewareMapsDeadlineToServiceUnavailable(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 250*time.Millisecond)

	app.Get("/slow", func(c *fiber.Ctx) error {
		// a store call that ran out of request budget surfaces this error
		return context.DeadlineExceeded
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/slow", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
}
