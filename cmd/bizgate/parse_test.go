package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"finsem-hq/bizgate/pkg/cli"
)

func TestRunParse_Text(t *testing.T) {
	var out bytes.Buffer
	if err := runParse(&out, []string{"json<array:int|string>"}, "text"); err != nil {
		t.Fatalf("runParse() error = %v", err)
	}

	want := `json<array:int|string>
  array
    union
      scalar int
      scalar string
`
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestRunParse_Invalid(t *testing.T) {
	var out bytes.Buffer
	err := runParse(&out, []string{"int", "int | string"}, "text")
	if got := cli.ExitCode(err); got != cli.ExitCodeGateFailed {
		t.Fatalf("ExitCode() = %d, want %d", got, cli.ExitCodeGateFailed)
	}
	if !quiet(err) {
		t.Error("invalid expressions should not be reported again by Execute")
	}

	got := out.String()
	if !strings.HasPrefix(got, "int\n  scalar int\n\nerror: ") {
		t.Errorf("output =\n%s", got)
	}
	if !strings.Contains(got, "  int | string\n     ^\n") {
		t.Errorf("output has no caret under offset 3:\n%s", got)
	}
}

func TestRunParse_JSON(t *testing.T) {
	var out bytes.Buffer
	if err := runParse(&out, []string{"ref:company.base.name", "company|person"}, "json"); err != nil {
		t.Fatalf("runParse() error = %v", err)
	}

	var results []ParseResult
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	ref := results[0]
	if !ref.Valid || ref.Canonical != "ref:company.base.name" {
		t.Errorf("results[0] = %+v", ref)
	}
	if len(ref.Refs) != 1 || ref.Refs[0] != "company.base.name" {
		t.Errorf("refs = %v", ref.Refs)
	}
	if ref.Tree == nil || ref.Tree.Kind != "typeref" || ref.Tree.Value != "company.base.name" {
		t.Errorf("tree = %+v", ref.Tree)
	}

	union := results[1]
	if union.Tree == nil || union.Tree.Kind != "union" || len(union.Tree.Children) != 2 {
		t.Fatalf("tree = %+v", union.Tree)
	}
	if c := union.Tree.Children[1]; c.Kind != "entity_ref" || c.Value != "person" {
		t.Errorf("second member = %+v", c)
	}
}

func TestRunParse_BadFormat(t *testing.T) {
	if err := runParse(&bytes.Buffer{}, []string{"int"}, "yaml"); err == nil {
		t.Error("runParse() with unknown format should return error")
	}
}
