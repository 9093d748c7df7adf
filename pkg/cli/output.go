package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is human-readable output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is one row per violation.
	FormatCSV OutputFormat = "csv"
)

// ParseOutputFormat validates a --format value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q (must be one of: text, json, csv)", s)
	}
}

// ColorMode controls ANSI colors in text output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// NewFormatter creates a formatter for the specified format.
func NewFormatter(format OutputFormat, mode ColorMode) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TextFormatter{Color: mode}
	}
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// CSVHeader is the column layout of CSV reports.
var CSVHeader = []string{"severity", "rule_id", "tenant_id", "code", "field", "value", "message", "suggestion", "source", "line"}

// CSVFormatter writes one row per violation.
type CSVFormatter struct{}

// FormatTo writes a *GateReport or a violation slice as CSV.
func (f *CSVFormatter) FormatTo(w io.Writer, data any) error {
	var violations []*errors.Violation
	switch d := data.(type) {
	case *GateReport:
		violations = d.Violations
	case []*errors.Violation:
		violations = d
	default:
		return fmt.Errorf("csv output is not supported for %T", data)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, v := range violations {
		line := ""
		if v.Origin.Line > 0 {
			line = strconv.Itoa(v.Origin.Line)
		}
		row := []string{
			string(v.Severity), string(v.RuleID), v.TenantID, v.Code,
			v.Field, v.Value, v.Message, v.Suggestion, v.Origin.File, line,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// TextFormatter renders reports for terminals.
type TextFormatter struct {
	Color ColorMode
}

type palette struct {
	err, warn, ok, dim, bold *color.Color
}

func (f *TextFormatter) palette() palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		ok:   color.New(color.FgGreen, color.Bold),
		dim:  color.New(color.FgHiBlack),
		bold: color.New(color.Bold, color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.ok, p.dim, p.bold} {
		switch f.Color {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}
	return p
}

// FormatTo writes a *GateReport as a violation listing with a summary.
// Other values are printed with %v.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	gr, ok := data.(*GateReport)
	if !ok {
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}

	p := f.palette()
	var b strings.Builder

	for _, v := range gr.Violations {
		sev := p.err
		if v.Severity == errors.SeverityWarn {
			sev = p.warn
		}
		sev.Fprintf(&b, "%-5s", v.Severity)
		fmt.Fprintf(&b, " %s ", v.RuleID)
		p.bold.Fprintf(&b, "%s/%s", v.TenantID, v.Code)
		fmt.Fprintf(&b, ": %s\n", v.Message)
		if v.Origin.File != "" {
			p.dim.Fprintf(&b, "      --> %s\n", v.Origin)
		}
		if v.Suggestion != "" {
			p.dim.Fprintf(&b, "      = did you mean %q?\n", v.Suggestion)
		}
	}

	for _, s := range gr.SkippedRows {
		p.warn.Fprintf(&b, "skip ")
		fmt.Fprintf(&b, " %s:%d: %s\n", s.Source, s.Line, s.Reason)
	}

	if counts := gr.CountByRule(); len(counts) > 0 {
		b.WriteString("\n")
		for _, rc := range counts {
			fmt.Fprintf(&b, "  %5d  %-5s %s\n", rc.Count, rc.Severity, rc.RuleID)
		}
		b.WriteString("\n")
	}

	verdict, vc := "PASSED", p.ok
	if !gr.Passed {
		verdict, vc = "FAILED", p.err
	}
	vc.Fprint(&b, verdict)
	fmt.Fprintf(&b, " %s gate: %d rows, %d errors, %d warnings (%d inputs, %dms)\n",
		gr.Mode, gr.RowCount, gr.ErrorCount, gr.WarnCount, len(gr.ResolvedInputs), gr.DurationMS)

	_, err := io.WriteString(w, b.String())
	return err
}
