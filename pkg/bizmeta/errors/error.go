package errors

import (
	"fmt"
	"sort"
	"strings"

	"finsem-hq/bizgate/pkg/bizmeta/record"
)

// Severity is the weight of a violation.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
)

// IsValid reports whether s is error or warn.
func (s Severity) IsValid() bool {
	return s == SeverityError || s == SeverityWarn
}

// Violation is one gate finding against a record. Violations are plain
// data: rules append them to a ViolationList and never return them as
// Go errors.
type Violation struct {
	RuleID     RuleID        `json:"rule_id"`
	Severity   Severity      `json:"severity"`
	Message    string        `json:"message"`
	TenantID   string        `json:"tenant_id"`
	Code       string        `json:"code"`
	Field      string        `json:"field"`
	Value      string        `json:"value"`
	Suggestion string        `json:"suggestion,omitempty"`
	Origin     record.Origin `json:"-"`
}

// String formats the violation for terminal output.
func (v *Violation) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s %s/%s: %s\n", v.Severity, v.RuleID, v.TenantID, v.Code, v.Message))

	if v.Field != "" {
		sb.WriteString(fmt.Sprintf("  field: %s = %q\n", v.Field, v.Value))
	}

	if v.Origin.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s\n", v.Origin.String()))
	}

	if v.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", v.Suggestion))
	}

	return sb.String()
}

// New builds an error-severity violation for r.
func New(rule RuleID, r *record.Record, field, value, message string) *Violation {
	return &Violation{
		RuleID:   rule,
		Severity: SeverityError,
		Message:  message,
		TenantID: r.TenantID,
		Code:     r.Code,
		Field:    field,
		Value:    value,
		Origin:   r.Origin,
	}
}

// ViolationList accumulates violations. The zero value is not usable;
// call NewViolationList.
type ViolationList struct {
	Violations []*Violation
}

// NewViolationList creates a new empty list.
func NewViolationList() *ViolationList {
	return &ViolationList{
		Violations: make([]*Violation, 0),
	}
}

// Add appends a violation to the list.
func (vl *ViolationList) Add(v *Violation) {
	vl.Violations = append(vl.Violations, v)
}

// AddViolation creates and adds an error-severity violation.
func (vl *ViolationList) AddViolation(rule RuleID, r *record.Record, field, value, message string) {
	vl.Add(New(rule, r, field, value, message))
}

// AddViolationWithSuggestion creates and adds a violation with a suggestion.
func (vl *ViolationList) AddViolationWithSuggestion(rule RuleID, r *record.Record, field, value, message, suggestion string) {
	v := New(rule, r, field, value, message)
	v.Suggestion = suggestion
	vl.Add(v)
}

// Extend appends every violation of other.
func (vl *ViolationList) Extend(other *ViolationList) {
	if other == nil {
		return
	}
	vl.Violations = append(vl.Violations, other.Violations...)
}

// Count returns the number of violations in the list.
func (vl *ViolationList) Count() int {
	return len(vl.Violations)
}

// ErrorCount returns the number of error-severity violations.
func (vl *ViolationList) ErrorCount() int {
	return vl.countSeverity(SeverityError)
}

// WarnCount returns the number of warn-severity violations.
func (vl *ViolationList) WarnCount() int {
	return vl.countSeverity(SeverityWarn)
}

// HasErrors returns true if the list contains any error-severity violation.
func (vl *ViolationList) HasErrors() bool {
	return vl.ErrorCount() > 0
}

func (vl *ViolationList) countSeverity(s Severity) int {
	n := 0
	for _, v := range vl.Violations {
		if v.Severity == s {
			n++
		}
	}
	return n
}

// ByRule returns all violations with the given rule ID.
func (vl *ViolationList) ByRule(rule RuleID) []*Violation {
	var result []*Violation
	for _, v := range vl.Violations {
		if v.RuleID == rule {
			result = append(result, v)
		}
	}
	return result
}

// HasRule returns true if the list contains at least one violation of rule.
func (vl *ViolationList) HasRule(rule RuleID) bool {
	for _, v := range vl.Violations {
		if v.RuleID == rule {
			return true
		}
	}
	return false
}

// RuleIDs returns the distinct rule IDs in the list, sorted.
func (vl *ViolationList) RuleIDs() []RuleID {
	seen := make(map[RuleID]bool)
	var ids []RuleID
	for _, v := range vl.Violations {
		if !seen[v.RuleID] {
			seen[v.RuleID] = true
			ids = append(ids, v.RuleID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// String formats every violation, one block each.
func (vl *ViolationList) String() string {
	if vl.Count() == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violation(s):\n\n", vl.Count()))

	for i, v := range vl.Violations {
		sb.WriteString(fmt.Sprintf("Violation %d:\n", i+1))
		sb.WriteString(v.String())
		sb.WriteString("\n")
	}

	return sb.String()
}
