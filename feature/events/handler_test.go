package events_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/storage"
	"mpu-janitor/core/storage/memory"
	"mpu-janitor/feature/events"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, client storage.Client, opts reconcile.Options, obs reconcile.Observer) *fiber.App {
	t.Helper()
	app := fiber.New()
	feature := events.NewFeature(reconcile.New(client, zap.NewNop()), opts, obs, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/events/bucket-created", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestHandleBucketCreated(t *testing.T) {
	t.Run("CreatesRuleForNamedBucketOnly", func(t *testing.T) {
		client := memory.New().AddBucket("new-bucket", nil).AddBucket("other", nil)
		var outcomes []reconcile.BucketOutcome
		app := setupApp(t, client, reconcile.Options{}, func(o reconcile.BucketOutcome) { outcomes = append(outcomes, o) })

		status, body := post(t, app, createBucketEvent)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "create", body["action"])
		assert.Equal(t, "new-bucket", body["bucket"])

		assert.Equal(t, 1, client.Writes("new-bucket"))
		assert.Zero(t, client.Writes("other"))
		require.Len(t, outcomes, 1)
		assert.Equal(t, reconcile.TriggerEvent, outcomes[0].Trigger)
	})

	t.Run("DryRun", func(t *testing.T) {
		client := memory.New().AddBucket("new-bucket", nil)
		app := setupApp(t, client, reconcile.Options{DryRun: true}, nil)

		status, body := post(t, app, createBucketEvent)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "would-create", body["action"])
		assert.Zero(t, client.TotalWrites())
	})

	t.Run("MalformedEvent", func(t *testing.T) {
		app := setupApp(t, memory.New(), reconcile.Options{}, nil)
		status, body := post(t, app, `{"detail":{"requestParameters":{}}}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body["error"], "does not name a bucket")
	})

	t.Run("BucketNotFound", func(t *testing.T) {
		app := setupApp(t, memory.New(), reconcile.Options{}, nil)
		status, body := post(t, app, createBucketEvent)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "new-bucket", body["bucket"])
	})

	t.Run("TransientFailure", func(t *testing.T) {
		client := memory.New().AddBucket("new-bucket", nil)
		client.FailPut("new-bucket", errors.New("SlowDown"))
		app := setupApp(t, client, reconcile.Options{}, nil)

		status, _ := post(t, app, createBucketEvent)
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
	})
}
