package resolver

import (
	"fmt"
	"strings"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
)

// Failure describes why a reference could not be expanded. It is
// reported by the typeref rules as a violation, never raised.
type Failure struct {
	Rule   errors.RuleID
	Target string   // Code at which resolution stopped
	Chain  []string // Codes walked, starting at the first reference
	Detail string   // Offending value, e.g. the target's object_type
}

// Error implements the error interface so a Failure can be wrapped by
// callers that want one; the gate itself does not.
func (f *Failure) Error() string {
	return f.Message()
}

// Message renders the human readable text of the failure.
func (f *Failure) Message() string {
	chain := strings.Join(f.Chain, " -> ")
	switch f.Rule {
	case errors.RuleTypeRefNotFound:
		return fmt.Sprintf("type_ref target not found: %s (chain: %s)", f.Target, chain)
	case errors.RuleTypeRefCycle:
		return fmt.Sprintf("type_ref cycle detected: %s", chain)
	case errors.RuleTypeRefTooDeep:
		return fmt.Sprintf("type_ref depth exceeded (>%s): %s", f.Detail, chain)
	case errors.RuleTypeRefTargetNotFeature:
		return fmt.Sprintf("type_ref target must be object_type=feature: %s (%s)", f.Target, f.Detail)
	case errors.RuleTypeRefTargetNotActive:
		return fmt.Sprintf("type_ref target must be status=active: %s (%s)", f.Target, f.Detail)
	case errors.RuleTypeRefTargetNoType:
		return fmt.Sprintf("type_ref target has empty value_type: %s", f.Target)
	case errors.RuleTypeRefResolvedInvalid:
		return fmt.Sprintf("type_ref resolved type is invalid at %s: %s", f.Target, f.Detail)
	default:
		return fmt.Sprintf("%s: %s", f.Rule, chain)
	}
}

// IsTargetShape reports whether the failure is about the kind of record
// a reference points at rather than about the reference graph.
func (f *Failure) IsTargetShape() bool {
	switch f.Rule {
	case errors.RuleTypeRefTargetNotFeature, errors.RuleTypeRefTargetNotActive, errors.RuleTypeRefTargetNoType:
		return true
	}
	return false
}

// prefixed returns a copy of f whose chain starts with code.
func (f *Failure) prefixed(code string) *Failure {
	if f.Rule == errors.RuleTypeRefCycle {
		return f
	}
	cp := *f
	cp.Chain = append([]string{code}, f.Chain...)
	return &cp
}

// canonicalCycle rotates the cycle so that its smallest code comes first
// and closes it, e.g. [b c a] becomes [a b c a].
func canonicalCycle(nodes []string) []string {
	start := 0
	for i, c := range nodes {
		if c < nodes[start] {
			start = i
		}
	}
	out := make([]string, 0, len(nodes)+1)
	out = append(out, nodes[start:]...)
	out = append(out, nodes[:start]...)
	return append(out, out[0])
}
