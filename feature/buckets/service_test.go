package buckets_test

import (
	"context"
	"errors"
	"testing"

	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/storage"
	"mpu-janitor/core/storage/memory"
	"mpu-janitor/core/storage/mocks"
	"mpu-janitor/feature/buckets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mpuRule(id string, days int32) storage.Rule {
	return storage.Rule{
		ID:                             id,
		Status:                         storage.StatusEnabled,
		AbortIncompleteMultipartUpload: &storage.AbortIncompleteMultipartUpload{DaysAfterInitiation: days},
	}
}

func fixture() *memory.Client {
	client := memory.New().
		AddBucket("b1", nil).
		AddBucket("b2", &storage.Configuration{Rules: []storage.Rule{mpuRule("existing", 3)}}).
		AddBucket("b3", &storage.Configuration{Rules: []storage.Rule{mpuRule("a", 1), mpuRule("b", 2)}}).
		AddBucket("b4", nil)
	client.FailGet("b4", errors.New("throttled"))
	return client
}

func newService(client storage.Client, opts reconcile.Options) *buckets.Service {
	return buckets.NewService(client, reconcile.New(client, nil), opts, nil, nil)
}

func TestService_ListStatuses(t *testing.T) {
	svc := newService(fixture(), reconcile.Options{})

	statuses, err := svc.ListStatuses(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 4)

	assert.Equal(t, buckets.Status{Name: "b1", State: buckets.StateMissing}, statuses[0])
	assert.Equal(t, buckets.Status{Name: "b2", State: buckets.StatePresent, RuleID: "existing", DaysAfterInitiation: 3}, statuses[1])
	assert.Equal(t, buckets.StateAmbiguous, statuses[2].State)
	assert.Equal(t, "a", statuses[2].RuleID)
	assert.Equal(t, buckets.StateError, statuses[3].State)
	assert.Contains(t, statuses[3].Error, "throttled")
}

func TestService_ListStatusesListError(t *testing.T) {
	m := new(mocks.Client)
	m.On("ListBuckets", mock.Anything).Return(nil, errors.New("access denied"))

	_, err := newService(m, reconcile.Options{}).ListStatuses(context.Background())
	assert.Error(t, err)
	m.AssertExpectations(t)
}

func TestService_Lifecycle(t *testing.T) {
	svc := newService(fixture(), reconcile.Options{})

	cfg, err := svc.Lifecycle(context.Background(), "b1")
	require.NoError(t, err)
	assert.NotNil(t, cfg.Rules)
	assert.Empty(t, cfg.Rules)

	_, err = svc.Lifecycle(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrBucketNotFound)
}

func TestService_ReconcileDefaults(t *testing.T) {
	client := fixture()
	svc := newService(client, reconcile.Options{RetentionDays: 5, DryRun: true})

	out := svc.Reconcile(context.Background(), "b1", reconcile.Options{})
	require.NoError(t, out.Err)
	assert.Equal(t, reconcile.ActionWouldCreate, out.Result.Action)
	assert.Equal(t, "delete-incomplete-mpu-5days", out.Result.ProposedRule.ID)
	assert.Equal(t, reconcile.TriggerAPI, out.Trigger)
	assert.Zero(t, client.TotalWrites())
}
