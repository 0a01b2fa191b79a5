package interactive_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/storage"
	"mpu-janitor/core/storage/memory"
	"mpu-janitor/feature/interactive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() *memory.Client {
	return memory.New().
		AddBucket("alpha", nil).
		AddBucket("beta", &storage.Configuration{Rules: []storage.Rule{{
			ID:                             "existing",
			Status:                         storage.StatusEnabled,
			AbortIncompleteMultipartUpload: &storage.AbortIncompleteMultipartUpload{DaysAfterInitiation: 3},
		}}}).
		AddBucket("gamma", nil)
}

func run(t *testing.T, client storage.Client, opts reconcile.BatchOptions, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	s := interactive.NewSession(client, reconcile.New(client, nil), opts, strings.NewReader(input), &out, nil)
	err := s.Run(context.Background())
	return out.String(), err
}

func TestSession_SingleSelection(t *testing.T) {
	client := fixture()
	var triggers []string
	opts := reconcile.BatchOptions{Observer: func(o reconcile.BucketOutcome) { triggers = append(triggers, o.Trigger) }}

	out, err := run(t, client, opts, "0\nexit\n")
	require.NoError(t, err)

	assert.Contains(t, out, "[0] alpha")
	assert.Contains(t, out, "[2] gamma")
	assert.Contains(t, out, "delete-incomplete-mpu-7days")
	assert.Equal(t, 1, client.Writes("alpha"))
	assert.Zero(t, client.Writes("gamma"))
	assert.Equal(t, []string{reconcile.TriggerInteractive}, triggers)
}

func TestSession_AllInDryRun(t *testing.T) {
	client := fixture()

	out, err := run(t, client, reconcile.BatchOptions{Options: reconcile.Options{DryRun: true}}, "a\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Buckets (dry run):")
	assert.Contains(t, out, "3 buckets: 0 created, 2 would create, 1 already configured")
	assert.Zero(t, client.TotalWrites())
}

func TestSession_InvalidInputReprompts(t *testing.T) {
	client := fixture()

	out, err := run(t, client, reconcile.BatchOptions{}, "bogus\n9\n2\nexit\n")
	require.NoError(t, err)

	assert.Contains(t, out, "invalid selection")
	assert.Contains(t, out, "index 9 out of range 0-2")
	assert.Equal(t, 4, strings.Count(out, "Select a bucket index"))
	assert.Equal(t, 1, client.Writes("gamma"))
}

func TestSession_BucketFailureDoesNotEndSession(t *testing.T) {
	client := fixture()
	client.FailPut("alpha", errors.New("SlowDown"))

	out, err := run(t, client, reconcile.BatchOptions{}, "0\n2\n")
	require.NoError(t, err)
	assert.Contains(t, out, "transient")
	assert.Equal(t, 1, client.Writes("gamma"))
}

func TestSession_ListFailure(t *testing.T) {
	client := fixture()
	client.FailList(errors.New("expired token"))

	_, err := run(t, client, reconcile.BatchOptions{}, "exit\n")
	assert.ErrorContains(t, err, "failed to list buckets")
}

func TestSession_NoBuckets(t *testing.T) {
	out, err := run(t, memory.New(), reconcile.BatchOptions{}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "No buckets found.")
}
