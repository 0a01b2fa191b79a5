package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"mpu-janitor/core/audit"
	"mpu-janitor/core/config"
	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/storage"
	"mpu-janitor/core/storage/memory"
	"mpu-janitor/feature/buckets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		profileFlag, providerFlag, regionFlag = "", "", ""
		yesConfirm, jsonOutput = false, false
	})
}

func TestApplyStorageFlags(t *testing.T) {
	resetFlags(t)

	cfg := storage.Config{Provider: storage.ProviderAWS, Profile: "env-profile", Region: "us-east-1"}
	applyStorageFlags(&cfg)
	assert.Equal(t, "env-profile", cfg.Profile, "unset flags keep config values")

	profileFlag, providerFlag, regionFlag = "ops", storage.ProviderMinio, "eu-west-1"
	applyStorageFlags(&cfg)
	assert.Equal(t, storage.Config{Provider: storage.ProviderMinio, Profile: "ops", Region: "eu-west-1"}, cfg)
}

func TestValidateStorage(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr error
	}{
		{"AWSWithProfile", storage.Config{Provider: storage.ProviderAWS, Profile: "ops"}, nil},
		{"AWSWithStaticKeys", storage.Config{Provider: storage.ProviderAWS, AccessKey: "AKIA"}, nil},
		{"AWSWithEndpoint", storage.Config{Provider: storage.ProviderAWS, Endpoint: "localhost:9000"}, nil},
		{"AWSWithoutProfile", storage.Config{Provider: storage.ProviderAWS}, errMissingProfile},
		{"Minio", storage.Config{Provider: storage.ProviderMinio, Endpoint: "localhost:9000"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStorage(tt.cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("UnsupportedProvider", func(t *testing.T) {
		assert.ErrorContains(t, validateStorage(storage.Config{Provider: "gcs"}), "unsupported storage provider")
	})
}

func TestTargetBuckets(t *testing.T) {
	ctx := context.Background()
	client := memory.New().AddBucket("b", nil).AddBucket("a", nil)

	names, err := targetBuckets(ctx, client, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	names, err = targetBuckets(ctx, client, []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, names)

	client.FailList(errors.New("AccessDenied"))
	_, err = targetBuckets(ctx, client, nil)
	assert.ErrorContains(t, err, "failed to list buckets")
}

func TestConfirmWrites(t *testing.T) {
	resetFlags(t)
	var out bytes.Buffer

	assert.True(t, confirmWrites(strings.NewReader("yes\n"), &out, 2))
	assert.Contains(t, out.String(), "add the rule to 2 bucket(s)")
	assert.True(t, confirmWrites(strings.NewReader("yes"), &out, 1), "missing newline")
	assert.False(t, confirmWrites(strings.NewReader("y\n"), &out, 1))
	assert.False(t, confirmWrites(strings.NewReader(""), &out, 1))

	yesConfirm = true
	assert.True(t, confirmWrites(strings.NewReader(""), &out, 1))
}

func TestPrintReport(t *testing.T) {
	resetFlags(t)

	client := memory.New().AddBucket("fresh", nil)
	r := reconcile.New(client, nil)
	rep := reconcile.PlanBatch(context.Background(), r, []string{"fresh", "gone"}, reconcile.BatchOptions{Trigger: reconcile.TriggerBatch})

	t.Run("Table", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printReport(&out, rep))
		assert.Contains(t, out.String(), "would-create")
		assert.Contains(t, out.String(), "2 buckets: 0 created, 1 would create")
	})

	t.Run("JSON", func(t *testing.T) {
		jsonOutput = true
		var out bytes.Buffer
		require.NoError(t, printReport(&out, rep))

		var decoded struct {
			Outcomes []struct {
				Bucket    string `json:"bucket"`
				ErrorKind string `json:"error_kind"`
				Result    *struct {
					Action string `json:"action"`
				} `json:"result"`
			} `json:"outcomes"`
			Summary reconcile.Summary `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded.Outcomes, 2)
		assert.Equal(t, "would-create", decoded.Outcomes[0].Result.Action)
		assert.Equal(t, "not_found", decoded.Outcomes[1].ErrorKind)
		assert.Equal(t, 1, decoded.Summary.NotFound)
	})
}

func TestPrintStatuses(t *testing.T) {
	var out bytes.Buffer
	printStatuses(&out, []buckets.Status{
		{Name: "with-rule", State: buckets.StatePresent, RuleID: "abort-7", DaysAfterInitiation: 7},
		{Name: "without", State: buckets.StateMissing},
		{Name: "broken", State: buckets.StateError, Error: "transient"},
	})

	s := out.String()
	assert.Contains(t, s, "abort-7")
	assert.Contains(t, s, "missing")
	assert.Contains(t, s, "transient")
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	printHistory(&out, []audit.Record{
		{Bucket: "b1", Action: "create", RuleID: "delete-incomplete-mpu-7days", Trigger: "batch", CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{Bucket: "b2", ErrorKind: "not_found", Error: "bucket not found", Trigger: "event"},
	})

	s := out.String()
	assert.Contains(t, s, "2024-03-01T12:00:00Z")
	assert.Contains(t, s, "delete-incomplete-mpu-7days")
	assert.Contains(t, s, "not_found")
}

func TestReconcileOptions(t *testing.T) {
	a := &app{cfg: &config.Config{Reconcile: reconcile.Config{RetentionDays: 7, Workers: 4}}}

	opts, err := a.reconcileOptions(false, 0)
	require.NoError(t, err)
	assert.Equal(t, reconcile.Options{RetentionDays: 7}, opts)

	opts, err = a.reconcileOptions(true, 3)
	require.NoError(t, err)
	assert.Equal(t, reconcile.Options{RetentionDays: 3, DryRun: true}, opts)

	_, err = a.reconcileOptions(false, -1)
	assert.ErrorIs(t, err, reconcile.ErrInvalidRetention)

	_, err = a.reconcileOptions(false, 4294967303)
	assert.ErrorIs(t, err, reconcile.ErrInvalidRetention)
	assert.ErrorContains(t, err, "--retention-days")

	a.cfg.Reconcile.RetentionDays = 4294967303
	_, err = a.reconcileOptions(false, 0)
	assert.ErrorIs(t, err, reconcile.ErrInvalidRetention)
	assert.ErrorContains(t, err, "RECONCILE_RETENTION_DAYS")
}
