package rules

import (
	"fmt"
	"sort"
	"strings"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
)

// Level is the configured weight of a rule ID.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelOff   Level = "off"
)

// Severities maps rule IDs to a non-default level. Rule IDs that are not
// listed report as errors.
type Severities map[errors.RuleID]Level

// ParseSeverities validates a rule ID → level map as read from
// configuration.
func ParseSeverities(raw map[string]string) (Severities, error) {
	out := make(Severities, len(raw))
	var problems []string

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		id := errors.RuleID(strings.ToUpper(strings.TrimSpace(k)))
		if !id.IsKnown() {
			problems = append(problems, fmt.Sprintf("unknown rule ID %q", k))
			continue
		}
		lvl := Level(strings.ToLower(strings.TrimSpace(raw[k])))
		switch lvl {
		case LevelError, LevelWarn, LevelOff:
			out[id] = lvl
		default:
			problems = append(problems, fmt.Sprintf("invalid level %q for %s (must be error, warn or off)", raw[k], id))
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("severity overrides: %s", strings.Join(problems, "; "))
	}
	return out, nil
}

// apply sets the severity of v, returning false if the rule is off.
func (s Severities) apply(v *errors.Violation) bool {
	switch s[v.RuleID] {
	case LevelOff:
		return false
	case LevelWarn:
		v.Severity = errors.SeverityWarn
	default:
		v.Severity = errors.SeverityError
	}
	return true
}
