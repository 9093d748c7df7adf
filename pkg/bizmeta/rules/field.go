package rules

import (
	"fmt"
	"regexp"
	"strconv"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/record"
)

var (
	// codePattern is a dot-separated snake_case path, e.g. "company.base.name".
	codePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)*$`)

	// requiredExamples are shown in the suggestion of a missing column.
	requiredExamples = map[string]string{
		record.ColumnTenantID:   `"t1"`,
		record.ColumnCode:       `"company.base.name"`,
		record.ColumnName:       `"Company name"`,
		record.ColumnObjectType: `"feature"`,
		record.ColumnStatus:     `"active"`,
		record.ColumnSource:     `"manual"`,
	}
)

// BasicRule checks required columns and the version.
type BasicRule struct{}

func (BasicRule) Name() string { return "basic" }

func (BasicRule) IDs() []errors.RuleID {
	return []errors.RuleID{errors.RuleBasicRequiredMissing, errors.RuleBasicVersionInvalid}
}

func (BasicRule) Check(s *Subject, out *errors.ViolationList) {
	r := s.Record
	for _, col := range record.RequiredColumns {
		if v, _ := r.Field(col); v == "" {
			out.AddViolationWithSuggestion(
				errors.RuleBasicRequiredMissing, r, col, "",
				fmt.Sprintf("missing required field: %s", col),
				errors.SuggestMissingField(col, requiredExamples[col]),
			)
		}
	}
	if r.Version <= 0 {
		out.AddViolation(errors.RuleBasicVersionInvalid, r, record.ColumnVersion, strconv.Itoa(r.Version),
			"version must be a positive integer")
	}
}

// EnumRule checks the closed-set columns. Empty values are left to the
// basic and scope rules.
type EnumRule struct{}

func (EnumRule) Name() string { return "enums" }

func (EnumRule) IDs() []errors.RuleID {
	return []errors.RuleID{
		errors.RuleEnumObjectType, errors.RuleEnumStatus, errors.RuleEnumSource, errors.RuleEnumDataClass,
	}
}

func (EnumRule) Check(s *Subject, out *errors.ViolationList) {
	r := s.Record
	if r.ObjectType != "" && !r.ObjectType.IsValid() {
		addEnum(out, errors.RuleEnumObjectType, r, record.ColumnObjectType, string(r.ObjectType), record.Strings(record.ObjectTypes))
	}
	if r.Status != "" && !r.Status.IsValid() {
		addEnum(out, errors.RuleEnumStatus, r, record.ColumnStatus, string(r.Status), record.Strings(record.Statuses))
	}
	if r.Source != "" && !r.Source.IsValid() {
		addEnum(out, errors.RuleEnumSource, r, record.ColumnSource, string(r.Source), record.Strings(record.Sources))
	}
	if r.IsFeature() && r.DataClass != "" && !r.DataClass.IsValid() {
		addEnum(out, errors.RuleEnumDataClass, r, record.ColumnDataClass, string(r.DataClass), record.Strings(record.DataClasses))
	}
}

func addEnum(out *errors.ViolationList, rule errors.RuleID, r *record.Record, col, value string, valid []string) {
	out.AddViolationWithSuggestion(rule, r, col, value,
		fmt.Sprintf("invalid %s: %s", col, value),
		errors.SuggestValue(value, valid),
	)
}

// CodeFormatRule checks the shape of code.
type CodeFormatRule struct{}

func (CodeFormatRule) Name() string { return "code-format" }

func (CodeFormatRule) IDs() []errors.RuleID { return []errors.RuleID{errors.RuleCodeFormat} }

func (CodeFormatRule) Check(s *Subject, out *errors.ViolationList) {
	r := s.Record
	if r.Code != "" && !codePattern.MatchString(r.Code) {
		out.AddViolation(errors.RuleCodeFormat, r, record.ColumnCode, r.Code,
			"code must be dot-separated snake_case")
	}
}

// UniquenessRule flags every occurrence of a (tenant_id, code) key after
// the first.
type UniquenessRule struct{}

func (UniquenessRule) Name() string { return "uniqueness" }

func (UniquenessRule) IDs() []errors.RuleID { return []errors.RuleID{errors.RuleUniqueTenantCode} }

func (UniquenessRule) Check(s *Subject, out *errors.ViolationList) {
	if !s.Batch.IsDuplicate(s.Index) {
		return
	}
	r := s.Record
	first := s.Batch.At(s.Batch.FirstOccurrence(s.Index))
	msg := "duplicate (tenant_id, code) in input batch"
	if first.Origin.IsValid() {
		msg += "; first defined at " + first.Origin.String()
	}
	out.AddViolation(errors.RuleUniqueTenantCode, r, record.ColumnCode, r.Code, msg)
}
