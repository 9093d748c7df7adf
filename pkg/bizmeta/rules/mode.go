package rules

import (
	"fmt"
	"strings"
)

// Mode selects which gate runs.
type Mode string

const (
	// ModeImport is the gate in front of the production store.
	ModeImport Mode = "import"
	// ModePublish adds the completeness checks required before an entry
	// is marked publishable.
	ModePublish Mode = "publish"
)

// Modes lists the supported gates.
var Modes = []Mode{ModeImport, ModePublish}

// IsValid reports whether m is import or publish.
func (m Mode) IsValid() bool {
	return m == ModeImport || m == ModePublish
}

// ParseMode converts user input to a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid mode %q (must be one of: import, publish)", s)
	}
	return m, nil
}
