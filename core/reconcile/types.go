package reconcile

import (
	"time"

	"mpu-janitor/core/storage"
)

// DefaultRetentionDays is used when Options.RetentionDays is zero.
const DefaultRetentionDays int32 = 7

// Action is the decision taken for a bucket.
type Action string

const (
	// ActionNoop means the bucket already has an MPU abort rule.
	ActionNoop Action = "noop"
	// ActionCreate means the rule was appended and written.
	ActionCreate Action = "create"
	// ActionWouldCreate means a dry run found the rule missing.
	ActionWouldCreate Action = "would-create"
)

// Triggers identify which driver started a reconciliation.
const (
	TriggerBatch       = "batch"
	TriggerInteractive = "interactive"
	TriggerEvent       = "event"
	TriggerAPI         = "api"
)

// WarningConfigurationAmbiguity is reported when a bucket carries more than
// one MPU abort rule.
const WarningConfigurationAmbiguity = "configuration_ambiguity"

// Options tunes a single reconciliation.
type Options struct {
	// RetentionDays is the DaysAfterInitiation of a created rule.
	// Zero selects DefaultRetentionDays.
	RetentionDays int32

	// DryRun reports the decision without writing.
	DryRun bool
}

func (o Options) retentionDays() int32 {
	if o.RetentionDays == 0 {
		return DefaultRetentionDays
	}
	return o.RetentionDays
}

// Warning is a non-fatal observation about a bucket's configuration.
type Warning struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	RuleIDs []string `json:"rule_ids,omitempty"`
}

// Result reports the outcome of reconciling one bucket.
type Result struct {
	// Bucket is the reconciled bucket.
	Bucket string `json:"bucket"`

	// Action is the decision taken.
	Action Action `json:"action"`

	// ExistingRuleID is set when Action is ActionNoop.
	ExistingRuleID string `json:"existing_rule_id,omitempty"`

	// ProposedRule is the rule created or, on a dry run, the one that would be.
	ProposedRule *storage.Rule `json:"proposed_rule,omitempty"`

	// Rules is the bucket's rule set after the decision. On a dry run it is
	// the document that would have been written.
	Rules []storage.Rule `json:"rules"`

	// Warnings lists non-fatal findings such as configuration ambiguity.
	Warnings []Warning `json:"warnings,omitempty"`

	// RetentionDays is the retention used for a proposed rule.
	RetentionDays int32 `json:"retention_days"`

	// DryRun echoes Options.DryRun.
	DryRun bool `json:"dry_run"`
}

// BucketOutcome is the per-bucket record produced by Run and RunBatch.
type BucketOutcome struct {
	Bucket   string        `json:"bucket"`
	Trigger  string        `json:"trigger"`
	Result   *Result       `json:"result,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// ErrorMessage returns the outcome's error text, or "" on success.
func (o BucketOutcome) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Observer is notified once per reconciled bucket. Observers passed to
// RunBatch are called from worker goroutines and must be safe for concurrent use.
type Observer func(BucketOutcome)

// Observers fans an outcome out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	return func(o BucketOutcome) {
		for _, fn := range obs {
			if fn != nil {
				fn(o)
			}
		}
	}
}
