package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuencos-cuarzo/boletos/internal/observability"
	"github.com/cuencos-cuarzo/boletos/internal/persistence"
)

func readyApp(rdb *persistence.Redis) *fiber.App {
	h := NewHealthHandler("boletos", "test", &persistence.Postgres{}, rdb, observability.NewMetrics())
	app := fiber.New()
	app.Get("/health/ready", h.Ready)
	return app
}

func getReady(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/health/ready", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return resp.StatusCode, body
}

func TestReadyWithoutDependencies(t *testing.T) {
	status, body := getReady(t, readyApp(&persistence.Redis{}))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
	assert.Empty(t, body["dependencies"])
}

func TestReadyReportsRedisOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	app := readyApp(&persistence.Redis{Client: client})

	status, body := getReady(t, app)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]any{"redis": "ok"}, body["dependencies"])

	mr.Close()

	status, body = getReady(t, app)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", errBody["code"])
	assert.Equal(t, map[string]any{"redis": "unavailable"}, errBody["details"])
}
