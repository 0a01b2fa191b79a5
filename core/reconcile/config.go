package reconcile

import (
	"fmt"
	"math"
)

// Config holds defaults for reconciliation runs. CLI flags override it.
type Config struct {
	// RetentionDays is the DaysAfterInitiation of created rules.
	RetentionDays int `mapstructure:"retention_days" default:"7"`
	// DryRun reports decisions without writing.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// Workers bounds concurrent bucket reconciliations in a batch.
	Workers int `mapstructure:"workers" default:"4"`
}

// Options converts the config into per-call options.
func (c Config) Options() (Options, error) {
	days, err := RetentionDays(c.RetentionDays)
	if err != nil {
		return Options{}, err
	}
	return Options{RetentionDays: days, DryRun: c.DryRun}, nil
}

// RetentionDays narrows a configured or user supplied day count to the
// rule's int32, rejecting values that would wrap.
func RetentionDays(days int) (int32, error) {
	if days < 0 || days > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRetention, days)
	}
	return int32(days), nil
}
