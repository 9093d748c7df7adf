// Package bizmeta validates financial semantic metadata dictionaries.
//
// A dictionary entry (record.Record) declares a business concept: an
// entity, event, relation, document or typed feature. Features carry a
// value_type written in a compact type grammar (package typeexpr) that
// may reference other entries with ref:<code>; references are expanded
// against the batch under validation (package resolver).
//
// Two gates share one rule engine (package rules):
//
//   - Import runs before entries enter the production store.
//   - Publish runs before entries are marked publishable and adds the
//     completeness checks for object and array types.
//
// # Basic Usage
//
//	records, err := loader.Load(ctx, loader.Options{Paths: []string{"dict/"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := bizmeta.Publish(records.Records)
//	fmt.Printf("%d errors, %d warnings\n", report.ErrorCount, report.WarnCount)
//
// A gate never stops at the first problem. Every violation of every
// record is collected into the report and the caller decides on pass or
// fail from its counts.
package bizmeta
