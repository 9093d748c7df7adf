// Package rules implements the import and publish gates over a batch of
// dictionary records.
//
// The import gate runs, in order: basic, enums, code-format, uniqueness,
// scope, type-syntax, typeref, typeref-target, unit, identifier and
// hierarchy. The publish gate runs the same rules followed by
// completeness.
//
// # Basic Usage
//
//	engine, err := rules.NewEngine(rules.Config{Mode: rules.ModePublish})
//	if err != nil {
//	    return err
//	}
//	report := engine.Run(records)
//	if !report.Passed(false) {
//	    for _, v := range report.Violations {
//	        fmt.Print(v.String())
//	    }
//	}
//
// Violations are data. A failing rule never stops the run, and the
// report always carries every violation of every record, ordered by
// record and then by rule.
//
// # Severity
//
// Every rule reports as an error unless Config.Severities lowers it to
// warn or turns it off. A run fails when its report has errors, or
// warnings when the caller asks for that.
package rules
