package rules

import (
	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/record"
	"finsem-hq/bizgate/pkg/bizmeta/resolver"
)

// TypeRefRule reports reference-graph failures: missing targets, cycles,
// chains over the depth limit and types that are invalid once expanded.
type TypeRefRule struct{}

func (TypeRefRule) Name() string { return "typeref" }

func (TypeRefRule) IDs() []errors.RuleID {
	return []errors.RuleID{
		errors.RuleTypeRefNotFound, errors.RuleTypeRefCycle,
		errors.RuleTypeRefTooDeep, errors.RuleTypeRefResolvedInvalid,
	}
}

func (TypeRefRule) Check(s *Subject, out *errors.ViolationList) {
	if f := failure(s); f != nil && !f.IsTargetShape() {
		addFailure(s.Record, f, out)
	}
}

// TypeRefTargetRule reports references to records that cannot define a
// type: non-features, inactive entries and entries without value_type.
type TypeRefTargetRule struct{}

func (TypeRefTargetRule) Name() string { return "typeref-target" }

func (TypeRefTargetRule) IDs() []errors.RuleID {
	return []errors.RuleID{
		errors.RuleTypeRefTargetNotFeature, errors.RuleTypeRefTargetNotActive, errors.RuleTypeRefTargetNoType,
	}
}

func (TypeRefTargetRule) Check(s *Subject, out *errors.ViolationList) {
	if f := failure(s); f != nil && f.IsTargetShape() {
		addFailure(s.Record, f, out)
	}
}

func failure(s *Subject) *resolver.Failure {
	if s.Type == nil || s.Type.Parsed == nil {
		return nil
	}
	return s.Type.Resolution.Failure
}

func addFailure(r *record.Record, f *resolver.Failure, out *errors.ViolationList) {
	out.AddViolation(f.Rule, r, record.ColumnValueType, r.ValueType, f.Message())
}
