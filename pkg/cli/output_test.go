package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/record"
	"finsem-hq/bizgate/pkg/bizmeta/rules"
)

func sampleReport(passed bool) *GateReport {
	report := &rules.Report{
		RunID:          "run-1",
		Mode:           rules.ModePublish,
		RowCount:       3,
		ViolationCount: 2,
		ErrorCount:     1,
		WarnCount:      1,
		Violations: []*errors.Violation{
			{
				RuleID:     errors.RuleEnumStatus,
				Severity:   errors.SeverityError,
				Message:    "invalid status \"actve\"",
				TenantID:   "t1",
				Code:       "company.base.name",
				Field:      "status",
				Value:      "actve",
				Suggestion: "active",
				Origin:     record.Origin{File: "dict/company.csv", Line: 4},
			},
			{
				RuleID:   errors.RuleHierarchyParentMissing,
				Severity: errors.SeverityWarn,
				Message:  "parent_code not found: company.base",
				TenantID: "t1",
				Code:     "company.base.id",
				Field:    "parent_code",
				Value:    "company.base",
			},
		},
		StartedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		DurationMS: 12,
	}
	return &GateReport{
		Inputs:         []string{"dict"},
		ResolvedInputs: []string{"dict/company.csv"},
		Report:         report,
		Passed:         passed,
	}
}

func TestParseOutputFormat(t *testing.T) {
	for _, in := range []string{"text", "JSON", "csv"} {
		if _, err := ParseOutputFormat(in); err != nil {
			t.Errorf("ParseOutputFormat(%q) error = %v", in, err)
		}
	}
	if _, err := ParseOutputFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON, ColorNever).(*JSONFormatter); !ok {
		t.Error("json format should give a JSONFormatter")
	}
	if _, ok := NewFormatter(FormatCSV, ColorNever).(*CSVFormatter); !ok {
		t.Error("csv format should give a CSVFormatter")
	}
	if _, ok := NewFormatter(FormatText, ColorNever).(*TextFormatter); !ok {
		t.Error("text format should give a TextFormatter")
	}
}

func TestJSONFormatter_GateReport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatJSON, ColorNever).FormatTo(&buf, sampleReport(false)); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	for _, key := range []string{"run_id", "mode", "inputs", "resolved_inputs", "row_count", "violation_count", "error_count", "warn_count", "violations", "passed"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing key %q in %s", key, buf.String())
		}
	}
	if doc["mode"] != "publish" || doc["passed"] != false {
		t.Errorf("mode/passed = %v/%v", doc["mode"], doc["passed"])
	}
	if _, ok := doc["skipped_rows"]; ok {
		t.Error("skipped_rows should be omitted when empty")
	}

	first := doc["violations"].([]any)[0].(map[string]any)
	if first["rule_id"] != "ENUM_STATUS" || first["suggestion"] != "active" {
		t.Errorf("first violation = %v", first)
	}
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVFormatter{}).FormatTo(&buf, sampleReport(false)); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(CSVHeader, ",") {
		t.Errorf("header = %v", rows[0])
	}
	want := []string{"error", "ENUM_STATUS", "t1", "company.base.name", "status", "actve", "invalid status \"actve\"", "active", "dict/company.csv", "4"}
	if strings.Join(rows[1], "|") != strings.Join(want, "|") {
		t.Errorf("row 1 = %q, want %q", rows[1], want)
	}
	if rows[2][9] != "" {
		t.Errorf("line of origin-less violation = %q, want empty", rows[2][9])
	}
}

func TestCSVFormatter_Unsupported(t *testing.T) {
	if err := (&CSVFormatter{}).FormatTo(&bytes.Buffer{}, 42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	gr := sampleReport(false)
	gr.SkippedRows = []SkippedRow{{Source: "dict/person.md", Line: 10, Reason: "expected 12 cells, found 3"}}

	if err := NewFormatter(FormatText, ColorNever).FormatTo(&buf, gr); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"error ENUM_STATUS t1/company.base.name: invalid status \"actve\"",
		"--> dict/company.csv:4",
		`did you mean "active"?`,
		"warn  HIERARCHY_PARENT_MISSING t1/company.base.id",
		"skip  dict/person.md:10: expected 12 cells, found 3",
		"FAILED publish gate: 3 rows, 1 errors, 1 warnings (1 inputs, 12ms)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("ColorNever output contains escape codes")
	}
}

func TestTextFormatter_PassedAndColor(t *testing.T) {
	gr := sampleReport(true)
	gr.Violations = []*errors.Violation{}

	var buf bytes.Buffer
	if err := (&TextFormatter{Color: ColorAlways}).FormatTo(&buf, gr); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Error("ColorAlways output has no escape codes")
	}
	if !strings.Contains(buf.String(), "PASSED") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestTextFormatter_Fallback(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, "hello"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("output = %q", buf.String())
	}
}
