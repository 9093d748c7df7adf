package rules

import (
	"strings"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/record"
)

// ScopeRule ties data_class, value_type and unit to object_type=feature.
type ScopeRule struct{}

func (ScopeRule) Name() string { return "scope" }

func (ScopeRule) IDs() []errors.RuleID {
	return []errors.RuleID{errors.RuleScopeNonFeatureHasType, errors.RuleScopeFeatureMissingType}
}

func (ScopeRule) Check(s *Subject, out *errors.ViolationList) {
	r := s.Record
	if !r.IsFeature() {
		if !r.HasTypeFields() {
			return
		}
		var fields, values []string
		for _, col := range []string{record.ColumnDataClass, record.ColumnValueType, record.ColumnUnit} {
			if v, _ := r.Field(col); v != "" {
				fields = append(fields, col)
				values = append(values, v)
			}
		}
		out.AddViolation(errors.RuleScopeNonFeatureHasType, r,
			strings.Join(fields, "/"), strings.Join(values, "|"),
			"object_type != feature must keep data_class/value_type/unit empty")
		return
	}

	for _, col := range []string{record.ColumnDataClass, record.ColumnValueType} {
		if v, _ := r.Field(col); v == "" {
			out.AddViolation(errors.RuleScopeFeatureMissingType, r, col, "",
				"object_type=feature must have non-empty "+col)
		}
	}
}

// TypeSyntaxRule reports a value_type that does not parse.
type TypeSyntaxRule struct{}

func (TypeSyntaxRule) Name() string { return "type-syntax" }

func (TypeSyntaxRule) IDs() []errors.RuleID { return []errors.RuleID{errors.RuleTypeSyntaxInvalid} }

func (TypeSyntaxRule) Check(s *Subject, out *errors.ViolationList) {
	if s.Type == nil || s.Type.ParseErr == nil {
		return
	}
	r := s.Record
	out.AddViolation(errors.RuleTypeSyntaxInvalid, r, record.ColumnValueType, r.ValueType, s.Type.ParseErr.Error())
}
