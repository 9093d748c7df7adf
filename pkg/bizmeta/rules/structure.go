package rules

import (
	"fmt"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/record"
	"finsem-hq/bizgate/pkg/bizmeta/typeexpr"
)

// HierarchyRule checks parent_code against the batch.
type HierarchyRule struct{}

func (HierarchyRule) Name() string { return "hierarchy" }

func (HierarchyRule) IDs() []errors.RuleID {
	return []errors.RuleID{errors.RuleHierarchyParentMissing, errors.RuleHierarchyParentPrefix}
}

func (HierarchyRule) Check(s *Subject, out *errors.ViolationList) {
	r := s.Record
	if r.ParentCode == "" {
		return
	}
	if !s.Batch.Contains(r.TenantID, r.ParentCode) {
		out.AddViolation(errors.RuleHierarchyParentMissing, r, record.ColumnParentCode, r.ParentCode,
			fmt.Sprintf("parent_code not found in same tenant: %s", r.ParentCode))
	}
	if r.Code != "" && !isProperPrefix(r.ParentCode, r.Code) {
		out.AddViolation(errors.RuleHierarchyParentPrefix, r, record.ColumnParentCode, r.ParentCode,
			"child code must start with parent_code + '.'")
	}
}

func isProperPrefix(parent, code string) bool {
	p := parent + "."
	return len(code) > len(p) && code[:len(p)] == p
}

// CompletenessRule runs only in the publish gate. Structured types must
// have their child field definitions in the same batch.
type CompletenessRule struct{}

func (CompletenessRule) Name() string { return "completeness" }

func (CompletenessRule) IDs() []errors.RuleID {
	return []errors.RuleID{errors.RuleCompletenessObjectChildrenMissing, errors.RuleCompletenessArrayItemsMissing}
}

func (CompletenessRule) Check(s *Subject, out *errors.ViolationList) {
	r := s.Record
	if !r.IsFeature() {
		return
	}
	resolved, ok := s.Type.Resolved()
	if !ok {
		return
	}

	if obj, isObj := resolved.(typeexpr.Object); isObj && r.DataClass == record.DataClassObject {
		if !s.Batch.HasCodeWithPrefix(r.TenantID, obj.Namespace+".", r.Code) {
			out.AddViolation(errors.RuleCompletenessObjectChildrenMissing, r, record.ColumnValueType, r.ValueType,
				fmt.Sprintf("object schema_ref %s must have %s.* child fields", obj.Namespace, obj.Namespace))
		}
	}

	if isArrayOfObject(resolved) && r.Code != "" {
		if !s.Batch.HasCodeWithPrefix(r.TenantID, r.Code+".item.", r.Code) {
			out.AddViolation(errors.RuleCompletenessArrayItemsMissing, r, record.ColumnValueType, r.ValueType,
				fmt.Sprintf("json<array:object> must have %s.item.* child fields", r.Code))
		}
	}
}

func isArrayOfObject(e typeexpr.Expr) bool {
	arr, ok := e.(typeexpr.Array)
	if !ok {
		return false
	}
	ref, ok := arr.Elem.(typeexpr.EntityRef)
	return ok && ref.Name == "object"
}
