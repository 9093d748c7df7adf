package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
)

func TestRuleListing(t *testing.T) {
	tests := []struct {
		mode      string
		wantCount int
	}{
		{"", len(errors.Catalog)},
		{"import", len(errors.Catalog) - 2},
		{"publish", len(errors.Catalog)},
	}

	for _, tt := range tests {
		t.Run("mode="+tt.mode, func(t *testing.T) {
			listing, err := ruleListing(tt.mode)
			if err != nil {
				t.Fatalf("ruleListing() error = %v", err)
			}
			if len(listing) != tt.wantCount {
				t.Errorf("got %d rules, want %d", len(listing), tt.wantCount)
			}
		})
	}
}

func TestRuleListing_Gates(t *testing.T) {
	listing, err := ruleListing("")
	if err != nil {
		t.Fatalf("ruleListing() error = %v", err)
	}

	gates := make(map[string]string)
	for _, l := range listing {
		gates[l.ID] = strings.Join(l.Gates, ",")
	}

	if got := gates[string(errors.RuleUnitNotAllowed)]; got != "import,publish" {
		t.Errorf("UNIT_NOT_ALLOWED gates = %q, want import,publish", got)
	}
	if got := gates[string(errors.RuleCompletenessArrayItemsMissing)]; got != "publish" {
		t.Errorf("COMPLETENESS_ARRAY_OBJECT_ITEMS_MISSING gates = %q, want publish", got)
	}
}

func TestRuleListing_InvalidMode(t *testing.T) {
	if _, err := ruleListing("release"); err == nil {
		t.Error("ruleListing() with unknown mode should return error")
	}
}

func TestRunRules_Output(t *testing.T) {
	var text bytes.Buffer
	if err := runRules(&text, "import", "text"); err != nil {
		t.Fatalf("runRules() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	if !strings.HasPrefix(lines[0], "RULE") || !strings.Contains(lines[0], "DESCRIPTION") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], string(errors.RuleBasicRequiredMissing)) {
		t.Errorf("first rule = %q", lines[1])
	}

	var js bytes.Buffer
	if err := runRules(&js, "publish", "json"); err != nil {
		t.Fatalf("runRules() error = %v", err)
	}
	var listing []RuleListing
	if err := json.Unmarshal(js.Bytes(), &listing); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	last := listing[len(listing)-1]
	if last.ID != string(errors.RuleCompletenessArrayItemsMissing) || last.Category != "completeness" {
		t.Errorf("last rule = %+v", last)
	}
}
