package domain

import (
	"sort"
	"strings"
	"unicode"
)

// Reconciliation is the regenerated env file body plus any type warnings.
type Reconciliation struct {
	Content  string
	Warnings []string
}

// keyOutcome is what a single schema key contributes to the file.
type keyOutcome struct {
	lines   []string
	warning string
}

// Reconcile regenerates the env file from the schema, reusing existing
// values that pass type validation. Keys are emitted in ascending order;
// existing keys missing from the schema are dropped.
func Reconcile(schema Schema, existing EnvValues) Reconciliation {
	keys := make([]string, 0, len(schema))
	for key := range schema {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	outcomes := make([]keyOutcome, 0, len(keys))
	for _, key := range keys {
		outcomes = append(outcomes, reconcileKey(key, schema[key], existing[key]))
	}
	return combine(outcomes)
}

func reconcileKey(key string, value SchemaValue, existing string) keyOutcome {
	spec := ParseValueSpec(value)

	var out keyOutcome
	use := spec.DefaultValue
	if existing != "" {
		use = existing
		if result := ValidateValue(key, existing, spec.ExpectedType); !result.Valid {
			out.warning = result.Warning
			use = spec.DefaultValue
		}
	}

	if len(spec.Alternatives) > 0 {
		out.lines = append(out.lines, "# "+strings.Join(spec.Alternatives, ", "))
	}
	out.lines = append(out.lines, key+"="+use)
	return out
}

func combine(outcomes []keyOutcome) Reconciliation {
	var (
		lines    []string
		warnings = []string{}
	)
	for _, o := range outcomes {
		lines = append(lines, o.lines...)
		if o.warning != "" {
			warnings = append(warnings, o.warning)
		}
	}
	return Reconciliation{
		Content:  strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace),
		Warnings: warnings,
	}
}
