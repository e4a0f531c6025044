package errors

import (
	"fmt"
	"strings"
)

// Violations collects structural problems found while validating imported
// data. Validation keeps going after the first problem so a single error can
// describe everything wrong with the input.
type Violations struct {
	items []string
}

// Addf records a violation at path (e.g. "rows[0].columns[1]").
func (v *Violations) Addf(path, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if path != "" {
		msg = path + ": " + msg
	}
	v.items = append(v.items, msg)
}

// Len returns the number of recorded violations.
func (v *Violations) Len() int { return len(v.items) }

// Items returns the recorded violations in order.
func (v *Violations) Items() []string {
	return append([]string(nil), v.items...)
}

// Err returns nil when nothing was recorded, otherwise a VALIDATION_FAILED
// error whose message lists every violation.
func (v *Violations) Err(subject string) error {
	switch len(v.items) {
	case 0:
		return nil
	case 1:
		return New(ErrCodeValidation, "invalid %s: %s", subject, v.items[0])
	default:
		return New(ErrCodeValidation, "invalid %s:\n- %s", subject, strings.Join(v.items, "\n- "))
	}
}
