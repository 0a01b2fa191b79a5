package storage

import "time"

// RuleStatus is the enablement state of a lifecycle rule.
type RuleStatus string

const (
	// StatusEnabled marks a rule the storage service applies.
	StatusEnabled RuleStatus = "Enabled"
	// StatusDisabled marks a rule the storage service ignores.
	StatusDisabled RuleStatus = "Disabled"
)

// BucketInfo describes a bucket returned by ListBuckets.
type BucketInfo struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date"`
}

// Configuration is the whole lifecycle document attached to a bucket.
// Writes always replace the full document.
type Configuration struct {
	Rules []Rule `json:"rules"`
}

// Rule is one entry of a lifecycle configuration.
type Rule struct {
	// ID identifies the rule within its configuration.
	ID string `json:"id"`

	// Status tells whether the rule is applied.
	Status RuleStatus `json:"status"`

	// Filter scopes the rule. The zero value applies to every object.
	Filter Filter `json:"filter"`

	// AbortIncompleteMultipartUpload marks the rule as an MPU abort rule.
	AbortIncompleteMultipartUpload *AbortIncompleteMultipartUpload `json:"abort_incomplete_multipart_upload,omitempty"`

	// Expiration, Transitions and NoncurrentVersionExpiration are read-only
	// views of the other rule kinds. They are informational.
	Expiration                  *Expiration                  `json:"expiration,omitempty"`
	Transitions                 []Transition                 `json:"transitions,omitempty"`
	NoncurrentVersionExpiration *NoncurrentVersionExpiration `json:"noncurrent_version_expiration,omitempty"`

	// Native holds the provider's own representation of a rule read from a
	// bucket. Providers write it back untouched, so fields this model does
	// not name survive a whole-document replace.
	Native any `json:"-"`
}

// Filter is the scope predicate of a rule.
type Filter struct {
	Prefix string `json:"prefix,omitempty"`
	Tags   []Tag  `json:"tags,omitempty"`
}

// IsEmpty reports whether the filter matches every object.
func (f Filter) IsEmpty() bool {
	return f.Prefix == "" && len(f.Tags) == 0
}

// Tag is a key/value object tag used by filters.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AbortIncompleteMultipartUpload aborts uploads left incomplete for a number of days.
type AbortIncompleteMultipartUpload struct {
	DaysAfterInitiation int32 `json:"days_after_initiation"`
}

// Expiration expires current object versions.
type Expiration struct {
	Days                      int32      `json:"days,omitempty"`
	Date                      *time.Time `json:"date,omitempty"`
	ExpiredObjectDeleteMarker bool       `json:"expired_object_delete_marker,omitempty"`
}

// Transition moves objects to another storage class.
type Transition struct {
	Days         int32      `json:"days,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	StorageClass string     `json:"storage_class"`
}

// NoncurrentVersionExpiration expires noncurrent object versions.
type NoncurrentVersionExpiration struct {
	NoncurrentDays int32 `json:"noncurrent_days"`
}

// IsMPUAbort reports whether the rule carries an abort-incomplete-multipart-upload action.
func (r Rule) IsMPUAbort() bool {
	return r.AbortIncompleteMultipartUpload != nil
}

// Clone returns a copy that shares no mutable state with r, except Native
// which providers treat as read-only.
func (r Rule) Clone() Rule {
	out := r
	if r.Filter.Tags != nil {
		out.Filter.Tags = append([]Tag(nil), r.Filter.Tags...)
	}
	if r.AbortIncompleteMultipartUpload != nil {
		v := *r.AbortIncompleteMultipartUpload
		out.AbortIncompleteMultipartUpload = &v
	}
	if r.Expiration != nil {
		v := *r.Expiration
		out.Expiration = &v
	}
	if r.Transitions != nil {
		out.Transitions = append([]Transition(nil), r.Transitions...)
	}
	if r.NoncurrentVersionExpiration != nil {
		v := *r.NoncurrentVersionExpiration
		out.NoncurrentVersionExpiration = &v
	}
	return out
}

// Clone deep-copies the configuration.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	out := &Configuration{}
	if c.Rules != nil {
		out.Rules = make([]Rule, len(c.Rules))
		for i, r := range c.Rules {
			out.Rules[i] = r.Clone()
		}
	}
	return out
}

// MPUAbortRules returns the MPU abort rules of the configuration in order.
func (c *Configuration) MPUAbortRules() []Rule {
	if c == nil {
		return nil
	}
	var out []Rule
	for _, r := range c.Rules {
		if r.IsMPUAbort() {
			out = append(out, r)
		}
	}
	return out
}
