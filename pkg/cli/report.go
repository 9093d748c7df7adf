package cli

import (
	"finsem-hq/bizgate/pkg/bizmeta/rules"
	"finsem-hq/bizgate/pkg/loader"
)

// GateReport is the document written by "bizgate check": the engine report
// plus where its records came from.
type GateReport struct {
	Inputs         []string `json:"inputs"`
	ResolvedInputs []string `json:"resolved_inputs"`
	*rules.Report
	Passed      bool         `json:"passed"`
	SkippedRows []SkippedRow `json:"skipped_rows,omitempty"`
}

// SkippedRow is a Markdown row that could not be read as a record.
type SkippedRow struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// NewGateReport assembles the report of one run.
func NewGateReport(res *loader.Result, report *rules.Report, failOnWarn bool) *GateReport {
	gr := &GateReport{
		Inputs:         nonNil(res.Inputs),
		ResolvedInputs: nonNil(res.ResolvedInputs),
		Report:         report,
		Passed:         report.Passed(failOnWarn),
	}
	for _, s := range res.Skipped {
		gr.SkippedRows = append(gr.SkippedRows, SkippedRow{Source: s.Source, Line: s.Line, Reason: s.Reason})
	}
	return gr
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
