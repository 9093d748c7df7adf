package rules

import (
	"sort"
	"time"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/resolver"
)

// Report is the result of one gate run. It is built once by Engine.Run
// and not modified afterwards.
type Report struct {
	RunID          string              `json:"run_id"`
	Mode           Mode                `json:"mode"`
	RowCount       int                 `json:"row_count"`
	ViolationCount int                 `json:"violation_count"`
	ErrorCount     int                 `json:"error_count"`
	WarnCount      int                 `json:"warn_count"`
	Violations     []*errors.Violation `json:"violations"`
	StartedAt      time.Time           `json:"started_at"`
	DurationMS     int64               `json:"duration_ms"`

	// ResolverStats describes memo usage of the run; it is exported as
	// metrics rather than in the report body.
	ResolverStats resolver.Stats `json:"-"`
}

func newReport(runID string, mode Mode, rows int, vl *errors.ViolationList, started time.Time) *Report {
	violations := vl.Violations
	if violations == nil {
		violations = []*errors.Violation{}
	}
	errs, warns := vl.ErrorCount(), vl.WarnCount()
	return &Report{
		RunID:          runID,
		Mode:           mode,
		RowCount:       rows,
		ViolationCount: errs + warns,
		ErrorCount:     errs,
		WarnCount:      warns,
		Violations:     violations,
		StartedAt:      started.UTC(),
		DurationMS:     time.Since(started).Milliseconds(),
	}
}

// Passed reports whether the gate let the batch through. Warnings fail
// the gate only when failOnWarn is set.
func (r *Report) Passed(failOnWarn bool) bool {
	if r.ErrorCount > 0 {
		return false
	}
	return !failOnWarn || r.WarnCount == 0
}

// RuleCount is the number of violations of one rule ID.
type RuleCount struct {
	RuleID   errors.RuleID   `json:"rule_id"`
	Severity errors.Severity `json:"severity"`
	Count    int             `json:"count"`
}

// CountByRule summarizes the violations per rule ID and severity, most
// frequent first.
func (r *Report) CountByRule() []RuleCount {
	type key struct {
		id  errors.RuleID
		sev errors.Severity
	}
	counts := make(map[key]int)
	for _, v := range r.Violations {
		counts[key{v.RuleID, v.Severity}]++
	}

	out := make([]RuleCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, RuleCount{RuleID: k.id, Severity: k.sev, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].RuleID != out[j].RuleID {
			return out[i].RuleID < out[j].RuleID
		}
		return out[i].Severity < out[j].Severity
	})
	return out
}
