package audit

import (
	"time"

	"mpu-janitor/core/reconcile"
)

// Record is one reconciliation attempt on one bucket.
type Record struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Bucket        string    `gorm:"size:255;index" json:"bucket"`
	Action        string    `gorm:"size:32" json:"action,omitempty"`
	RuleID        string    `gorm:"size:255" json:"rule_id,omitempty"`
	RetentionDays int32     `json:"retention_days"`
	DryRun        bool      `json:"dry_run"`
	Trigger       string    `gorm:"size:32" json:"trigger"`
	ErrorKind     string    `gorm:"size:32" json:"error_kind,omitempty"`
	Error         string    `gorm:"type:text" json:"error,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the default table name.
func (Record) TableName() string {
	return "reconcile_audit"
}

// FromOutcome converts a reconcile outcome into a record.
func FromOutcome(o reconcile.BucketOutcome) *Record {
	rec := &Record{
		Bucket:     o.Bucket,
		Trigger:    o.Trigger,
		ErrorKind:  reconcile.ErrorKind(o.Err),
		Error:      o.ErrorMessage(),
		DurationMs: o.Duration.Milliseconds(),
	}

	if res := o.Result; res != nil {
		rec.Action = string(res.Action)
		rec.RetentionDays = res.RetentionDays
		rec.DryRun = res.DryRun
		switch {
		case res.ExistingRuleID != "":
			rec.RuleID = res.ExistingRuleID
		case res.ProposedRule != nil:
			rec.RuleID = res.ProposedRule.ID
		}
	}

	return rec
}
