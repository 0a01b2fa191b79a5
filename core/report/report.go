// Package report renders reconcile outcomes as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"mpu-janitor/core/reconcile"

	"github.com/olekukonko/tablewriter"
)

// Outcomes writes one row per bucket.
func Outcomes(dest io.Writer, outcomes []reconcile.BucketOutcome) {
	table := tablewriter.NewWriter(dest)
	table.SetHeader([]string{"Bucket", "Action", "Rule", "Days", "Notes"})
	table.SetAutoWrapText(false)

	for _, o := range outcomes {
		table.Append(row(o))
	}

	table.Render()
}

func row(o reconcile.BucketOutcome) []string {
	if o.Err != nil {
		return []string{o.Bucket, "error", "", "", reconcile.ErrorKind(o.Err) + ": " + o.Err.Error()}
	}

	res := o.Result
	rule, days := "", ""
	switch {
	case res.ExistingRuleID != "":
		rule = res.ExistingRuleID
	case res.ProposedRule != nil:
		rule = res.ProposedRule.ID
		days = strconv.Itoa(int(res.RetentionDays))
	}

	var notes []string
	for _, w := range res.Warnings {
		notes = append(notes, w.Message)
	}

	return []string{o.Bucket, string(res.Action), rule, days, strings.Join(notes, "; ")}
}

// Summary writes a one-line summary of a batch.
func Summary(dest io.Writer, s reconcile.Summary) {
	fmt.Fprintf(dest, "%d buckets: %d created, %d would create, %d already configured, %d not found, %d transient, %d failed",
		s.Total, s.Created, s.WouldCreate, s.Noop, s.NotFound, s.Transient, s.Failed)
	if s.Ambiguous > 0 {
		fmt.Fprintf(dest, ", %d ambiguous", s.Ambiguous)
	}
	fmt.Fprintln(dest)
}
