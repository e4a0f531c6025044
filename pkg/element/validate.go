package element

import (
	"maps"
	"slices"

	"github.com/matzehuels/formgrid/pkg/errors"
)

// Validate checks a catalog structurally: every entry needs a non-empty id
// equal to its key, a tag and a label. All violations are reported in one
// VALIDATION_FAILED error.
func Validate(defs map[string]Definition) error {
	var v errors.Violations
	if len(defs) == 0 {
		v.Addf("", "catalog is empty")
	}
	for _, key := range slices.Sorted(maps.Keys(defs)) {
		d := defs[key]
		path := "element." + key
		if key == "" {
			path = "element[\"\"]"
		}
		switch {
		case d.ID == "":
			v.Addf(path, "missing id")
		case d.ID != key:
			v.Addf(path, "id %q does not match key", d.ID)
		}
		if d.Tag == "" {
			v.Addf(path, "missing tag")
		}
		if d.Label == "" {
			v.Addf(path, "missing label")
		}
	}
	return v.Err("element catalog")
}

// normalizeValues converts TOML integers to float64 so seeded defaults have
// the same shape as values decoded from JSON snapshots.
func normalizeValues(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalizeValue(v)
	}
	return m
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case []any:
		for i := range x {
			x[i] = normalizeValue(x[i])
		}
		return x
	case map[string]any:
		return normalizeValues(x)
	default:
		return v
	}
}
