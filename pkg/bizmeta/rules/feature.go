package rules

import (
	"fmt"
	"regexp"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/record"
	"finsem-hq/bizgate/pkg/bizmeta/typeexpr"
)

// identifierCodePattern is "*.id.<id_type>".
var identifierCodePattern = regexp.MustCompile(`^.+\.id\.[a-z][a-z0-9_]*$`)

// UnitRule allows a unit only on metrics. Identifiers are left to
// IdentifierRule so that they get a single, specific violation.
type UnitRule struct{}

func (UnitRule) Name() string { return "unit" }

func (UnitRule) IDs() []errors.RuleID { return []errors.RuleID{errors.RuleUnitNotAllowed} }

func (UnitRule) Check(s *Subject, out *errors.ViolationList) {
	r := s.Record
	if !r.IsFeature() || r.Unit == "" {
		return
	}
	if r.DataClass == record.DataClassMetric || r.DataClass == record.DataClassIdentifier {
		return
	}
	out.AddViolation(errors.RuleUnitNotAllowed, r, record.ColumnUnit, r.Unit,
		fmt.Sprintf("unit can be filled only when data_class=metric (data_class=%s)", r.DataClass))
}

// IdentifierRule constrains features with data_class=identifier.
type IdentifierRule struct{}

func (IdentifierRule) Name() string { return "identifier" }

func (IdentifierRule) IDs() []errors.RuleID {
	return []errors.RuleID{
		errors.RuleIdentifierValueType, errors.RuleIdentifierUnitNotEmpty, errors.RuleIdentifierCodePattern,
	}
}

func (IdentifierRule) Check(s *Subject, out *errors.ViolationList) {
	r := s.Record
	if !r.IsFeature() || r.DataClass != record.DataClassIdentifier {
		return
	}

	// A type that failed to parse or resolve has already been reported.
	if resolved, ok := s.Type.Resolved(); ok && !isIdentifierType(resolved) {
		out.AddViolation(errors.RuleIdentifierValueType, r, record.ColumnValueType, r.ValueType,
			fmt.Sprintf("identifier value_type must be string, int or int|string after ref resolution, got %s", resolved))
	}
	if r.Unit != "" {
		out.AddViolation(errors.RuleIdentifierUnitNotEmpty, r, record.ColumnUnit, r.Unit,
			"identifier unit must be empty")
	}
	if r.Code != "" && !identifierCodePattern.MatchString(r.Code) {
		out.AddViolation(errors.RuleIdentifierCodePattern, r, record.ColumnCode, r.Code,
			"identifier code must match *.id.<id_type>")
	}
}

// isIdentifierType accepts string, int, and a union of exactly int and
// string in either order.
func isIdentifierType(e typeexpr.Expr) bool {
	switch v := e.(type) {
	case typeexpr.Scalar:
		return v.Name == typeexpr.ScalarString || v.Name == typeexpr.ScalarInt
	case typeexpr.Union:
		if len(v.Members) != 2 {
			return false
		}
		var hasInt, hasString bool
		for _, m := range v.Members {
			sc, ok := m.(typeexpr.Scalar)
			if !ok {
				return false
			}
			switch sc.Name {
			case typeexpr.ScalarInt:
				hasInt = true
			case typeexpr.ScalarString:
				hasString = true
			}
		}
		return hasInt && hasString
	}
	return false
}
