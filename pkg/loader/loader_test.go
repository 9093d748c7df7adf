package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"finsem-hq/bizgate/pkg/bizmeta/record"
)

func TestExpandInputs(t *testing.T) {
	files, err := ExpandInputs([]string{"testdata/dict"}, nil)
	if err != nil {
		t.Fatalf("ExpandInputs() error = %v", err)
	}
	want := []string{
		filepath.Join("testdata", "dict", "company", "company.csv"),
		filepath.Join("testdata", "dict", "person", "person.md"),
	}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("ExpandInputs() = %v, want %v", files, want)
	}

	onlyCSV, err := ExpandInputs([]string{"testdata/dict"}, []string{"CSV"})
	if err != nil {
		t.Fatalf("ExpandInputs(csv) error = %v", err)
	}
	if len(onlyCSV) != 1 {
		t.Errorf("ExpandInputs(csv) = %v, want one file", onlyCSV)
	}
}

func TestExpandInputs_Errors(t *testing.T) {
	_, err := ExpandInputs([]string{"testdata/missing"}, nil)
	var srcErr *SourceError
	if !errors.As(err, &srcErr) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ExpandInputs(missing) error = %v, want SourceError wrapping ErrNotExist", err)
	}

	empty := t.TempDir()
	if _, err := ExpandInputs([]string{empty}, nil); !errors.Is(err, ErrNoInputs) {
		t.Errorf("ExpandInputs(empty dir) error = %v, want ErrNoInputs", err)
	}
}

func TestReadCSV(t *testing.T) {
	f, err := os.Open("testdata/dict/company/company.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := ReadCSV(f, "company.csv")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("len(records) = %d, want 4", len(records))
	}

	first := records[0]
	if first.TenantID != "t1" {
		t.Errorf("TenantID = %q, want t1 (BOM not stripped?)", first.TenantID)
	}
	if first.Origin.Line != 2 {
		t.Errorf("Origin.Line = %d, want 2", first.Origin.Line)
	}

	uscc := records[1]
	if uscc.Description != "Unified social credit code, 18 chars" {
		t.Errorf("Description = %q", uscc.Description)
	}
	if uscc.DataClass != record.DataClassIdentifier {
		t.Errorf("DataClass = %q", uscc.DataClass)
	}

	if records[2].Version != 0 {
		t.Errorf("Version of %q = %d, want 0", "abc", records[2].Version)
	}

	alias := records[3]
	if alias.Description != "" || alias.Unit != "" {
		t.Errorf("null markers not cleared: description=%q unit=%q", alias.Description, alias.Unit)
	}
	if alias.ValueType != "int|string" || alias.Version != 2 {
		t.Errorf("alias = %+v", alias)
	}
}

func TestReadCSV_ShortRowsAndEmpty(t *testing.T) {
	in := "code,object_type,name\ncompany,entity\n"
	records, err := ReadCSV(strings.NewReader(in), "short.csv")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(records) != 1 || records[0].Code != "company" || records[0].Name != "" {
		t.Errorf("ReadCSV() = %+v", records)
	}

	records, err = ReadCSV(strings.NewReader(""), "empty.csv")
	if err != nil || len(records) != 0 {
		t.Errorf("ReadCSV(empty) = %v, %v", records, err)
	}

	_, err = ReadCSV(strings.NewReader("code\n\"unterminated\n"), "bad.csv")
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Errorf("ReadCSV(bad quote) error = %v, want SourceError", err)
	}
}

func TestReadMarkdown(t *testing.T) {
	f, err := os.Open("testdata/dict/person/person.md")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, skipped, err := ReadMarkdown(f, "person.md")
	if err != nil {
		t.Fatalf("ReadMarkdown() error = %v", err)
	}

	codes := make([]string, len(records))
	for i, r := range records {
		codes[i] = r.Code
	}
	want := "person,person.base.name,person.base.id.code,person.base.birth"
	if strings.Join(codes, ",") != want {
		t.Errorf("codes = %v, want %s", codes, want)
	}
	if records[0].Origin.Line != 7 {
		t.Errorf("Origin.Line = %d, want 7", records[0].Origin.Line)
	}
	if records[2].ValueType != "int|string" {
		t.Errorf("escaped pipe: ValueType = %q, want int|string", records[2].ValueType)
	}
	if records[3].Unit != "" {
		t.Errorf("nan unit = %q, want empty", records[3].Unit)
	}
	if records[1].ParentCode != "person" {
		t.Errorf("ParentCode = %q", records[1].ParentCode)
	}

	if len(skipped) != 1 || skipped[0].Line != 10 {
		t.Errorf("skipped = %+v, want one row at line 10", skipped)
	}
}

func TestReadMarkdown_NoTable(t *testing.T) {
	f, err := os.Open("testdata/no_table.md")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, _, err = ReadMarkdown(f, "no_table.md")
	if !errors.Is(err, ErrNoTable) {
		t.Errorf("ReadMarkdown() error = %v, want ErrNoTable", err)
	}
}

func TestSplitRow(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"| a | b |", []string{"a", "b"}},
		{"| a | |", []string{"a", ""}},
		{`| int\|string | x |`, []string{"int|string", "x"}},
		{"| a | b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := splitRow(tt.in)
		if strings.Join(got, ";") != strings.Join(tt.want, ";") {
			t.Errorf("splitRow(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	res, err := Load(context.Background(), Options{Paths: []string{"testdata/dict"}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(res.Records) != 8 {
		t.Errorf("len(Records) = %d, want 8", len(res.Records))
	}
	if len(res.ResolvedInputs) != 2 {
		t.Errorf("ResolvedInputs = %v", res.ResolvedInputs)
	}
	if len(res.Inputs) != 1 || res.Inputs[0] != "testdata/dict" {
		t.Errorf("Inputs = %v", res.Inputs)
	}
	if len(res.Skipped) != 1 {
		t.Errorf("Skipped = %v", res.Skipped)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(context.Background(), Options{}); !errors.Is(err, ErrNoSource) {
		t.Errorf("Load() error = %v, want ErrNoSource", err)
	}

	if _, err := Load(context.Background(), Options{Paths: []string{"testdata/dict/notes.txt"}}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(txt) error = %v, want ErrUnsupportedFormat", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, Options{Paths: []string{"testdata/dict"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load(cancelled) error = %v, want context.Canceled", err)
	}
}

type recordingObserver struct {
	loads  map[string][2]int
	errors []string
}

func (o *recordingObserver) RecordLoad(kind string, records, skipped int, _ time.Duration) {
	if o.loads == nil {
		o.loads = make(map[string][2]int)
	}
	prev := o.loads[kind]
	o.loads[kind] = [2]int{prev[0] + records, prev[1] + skipped}
}

func (o *recordingObserver) RecordLoadError(kind string) {
	o.errors = append(o.errors, kind)
}

func TestLoad_Observer(t *testing.T) {
	obs := &recordingObserver{}
	if _, err := Load(context.Background(), Options{Paths: []string{"testdata/dict"}, Observer: obs}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := obs.loads[KindCSV]; got != [2]int{4, 0} {
		t.Errorf("csv loads = %v, want [4 0]", got)
	}
	if got := obs.loads[KindMarkdown]; got != [2]int{4, 1} {
		t.Errorf("markdown loads = %v, want [4 1]", got)
	}

	obs = &recordingObserver{}
	_, _ = Load(context.Background(), Options{Paths: []string{"testdata/dict/notes.txt"}, Observer: obs})
	if len(obs.errors) != 1 || obs.errors[0] != "txt" {
		t.Errorf("errors = %v, want [txt]", obs.errors)
	}
}

func TestFileKind(t *testing.T) {
	tests := map[string]string{
		"a/b.csv":      KindCSV,
		"B.CSV":        KindCSV,
		"x.md":         KindMarkdown,
		"x.markdown":   KindMarkdown,
		"notes.txt":    "txt",
		"no_extension": "",
	}
	for in, want := range tests {
		if got := FileKind(in); got != want {
			t.Errorf("FileKind(%q) = %q, want %q", in, got, want)
		}
	}
}
