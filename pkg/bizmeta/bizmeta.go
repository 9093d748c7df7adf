package bizmeta

import (
	"finsem-hq/bizgate/pkg/bizmeta/record"
	"finsem-hq/bizgate/pkg/bizmeta/rules"
	"finsem-hq/bizgate/pkg/bizmeta/typeexpr"
)

// Gate is a convenience function that runs one gate with default settings.
func Gate(mode rules.Mode, records []record.Record) (*rules.Report, error) {
	engine, err := rules.NewEngine(rules.Config{Mode: mode})
	if err != nil {
		return nil, err
	}
	return engine.Run(records), nil
}

// Import runs the import gate with default settings.
func Import(records []record.Record) *rules.Report {
	report, _ := Gate(rules.ModeImport, records)
	return report
}

// Publish runs the publish gate with default settings.
func Publish(records []record.Record) *rules.Report {
	report, _ := Gate(rules.ModePublish, records)
	return report
}

// ParseType parses a value_type expression.
func ParseType(text string) (typeexpr.Expr, error) {
	return typeexpr.Parse(text)
}
