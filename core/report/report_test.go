package report_test

import (
	"bytes"
	"errors"
	"testing"

	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/report"

	"github.com/stretchr/testify/assert"
)

func TestOutcomes(t *testing.T) {
	rule := reconcile.NewAbortRule(7)
	var buf bytes.Buffer

	report.Outcomes(&buf, []reconcile.BucketOutcome{
		{Bucket: "b1", Result: &reconcile.Result{Action: reconcile.ActionCreate, ProposedRule: &rule, RetentionDays: 7}},
		{Bucket: "b2", Result: &reconcile.Result{Action: reconcile.ActionNoop, ExistingRuleID: "existing-mpu"}},
		{Bucket: "b3", Err: &reconcile.TransientError{Bucket: "b3", Op: "get", Err: errors.New("throttled")}},
	})

	out := buf.String()
	assert.Contains(t, out, "BUCKET")
	assert.Contains(t, out, "delete-incomplete-mpu-7days")
	assert.Contains(t, out, "existing-mpu")
	assert.Contains(t, out, "transient: get lifecycle configuration")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	report.Summary(&buf, reconcile.Summary{Total: 3, Created: 1, Noop: 1, Transient: 1, Ambiguous: 1})
	assert.Equal(t, "3 buckets: 1 created, 0 would create, 1 already configured, 0 not found, 1 transient, 0 failed, 1 ambiguous\n", buf.String())
}
