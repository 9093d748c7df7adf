// Package errors defines the violation taxonomy of the dictionary gates.
//
// A gate run never fails fast. Every rule appends Violation values to a
// ViolationList and evaluation continues with the next rule and record;
// the caller decides pass/fail from the error count.
//
// # Rule IDs
//
// Rule IDs are stable strings (TYPE_REF_CYCLE, UNIQUE_TENANT_CODE, ...)
// meant for aggregation in CI. Catalog lists them with their Category:
//
//	field, scope, syntax, reference, consistency, completeness
//
// # Basic Usage
//
//	vl := errors.NewViolationList()
//	vl.AddViolation(errors.RuleCodeFormat, rec, "code", rec.Code,
//	    "code must be dot-separated snake_case")
//
//	if vl.HasErrors() {
//	    fmt.Print(vl.String())
//	}
//
// # Suggestions
//
// Enum typos get a Levenshtein-based hint:
//
//	errors.SuggestValue("actve", []string{"active", "deprecated"})
//	// Returns: "Did you mean 'active'?"
package errors
