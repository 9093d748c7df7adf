package rules

import (
	"finsem-hq/bizgate/pkg/bizmeta/batch"
	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/record"
	"finsem-hq/bizgate/pkg/bizmeta/resolver"
	"finsem-hq/bizgate/pkg/bizmeta/typeexpr"
)

// Rule checks one record in the context of its batch. A rule only reads
// the subject and appends to out; it never stops other rules.
type Rule interface {
	// Name is the short rule group name, e.g. "typeref".
	Name() string
	// IDs lists the rule IDs the rule can emit.
	IDs() []errors.RuleID
	// Check appends the violations of s to out.
	Check(s *Subject, out *errors.ViolationList)
}

// Subject is one record under evaluation.
type Subject struct {
	Index  int
	Record *record.Record
	Batch  *batch.Batch
	Type   *TypeInfo
}

// TypeInfo is the type analysis of a feature's value_type, shared by the
// type-syntax, typeref, identifier and completeness rules so that each
// record is parsed and resolved once.
type TypeInfo struct {
	// Parsed is nil when the record has no value_type or it fails to parse.
	Parsed typeexpr.Expr
	// ParseErr holds the syntax error, if any.
	ParseErr error
	// Resolution is the outcome of reference expansion; for an
	// expression without references it holds Parsed unchanged.
	Resolution resolver.Resolution
}

// Resolved returns the fully expanded type, or false when the value_type
// is missing, malformed or failed to resolve.
func (ti *TypeInfo) Resolved() (typeexpr.Expr, bool) {
	if ti == nil || ti.Parsed == nil || !ti.Resolution.OK() {
		return nil, false
	}
	return ti.Resolution.Expr, true
}

// analyze parses and resolves the value_type of a feature.
func analyze(r *record.Record, res *resolver.Resolver) *TypeInfo {
	if !r.IsFeature() || r.ValueType == "" {
		return &TypeInfo{}
	}
	parsed, err := typeexpr.Parse(r.ValueType)
	if err != nil {
		return &TypeInfo{ParseErr: err}
	}
	return &TypeInfo{
		Parsed:     parsed,
		Resolution: res.Resolve(r.TenantID, parsed),
	}
}

// ImportRules returns the import gate rules in evaluation order.
func ImportRules() []Rule {
	return []Rule{
		BasicRule{},
		EnumRule{},
		CodeFormatRule{},
		UniquenessRule{},
		ScopeRule{},
		TypeSyntaxRule{},
		TypeRefRule{},
		TypeRefTargetRule{},
		UnitRule{},
		IdentifierRule{},
		HierarchyRule{},
	}
}

// PublishRules returns the import rules followed by completeness.
func PublishRules() []Rule {
	return append(ImportRules(), CompletenessRule{})
}

// ForMode returns the rule set of a gate.
func ForMode(m Mode) []Rule {
	if m == ModePublish {
		return PublishRules()
	}
	return ImportRules()
}

// RuleIDs returns every rule ID a gate can emit, in evaluation order.
func RuleIDs(m Mode) []errors.RuleID {
	var ids []errors.RuleID
	for _, r := range ForMode(m) {
		ids = append(ids, r.IDs()...)
	}
	return ids
}
