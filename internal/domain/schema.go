package domain

import (
	"math"
	"strconv"
	"strings"
)

// ValueType is the kind an environment variable is expected to hold.
type ValueType string

const (
	TypeBoolean ValueType = "boolean"
	TypeNumber  ValueType = "number"
	TypeString  ValueType = "string"
)

// alternativeSeparator splits a string schema entry into default and alternatives.
const alternativeSeparator = "|"

// SchemaValue is one entry of the envModel mapping. It is a closed set:
// BooleanSpec, NumberSpec and StringSpec are the only implementations.
type SchemaValue interface {
	Type() ValueType
	isSchemaValue()
}

// BooleanSpec is a schema entry declared as a JSON boolean.
type BooleanSpec bool

// NumberSpec is a schema entry declared as a JSON number.
type NumberSpec float64

// StringSpec is a schema entry declared as a pipe-delimited string.
type StringSpec string

func (BooleanSpec) Type() ValueType { return TypeBoolean }
func (NumberSpec) Type() ValueType  { return TypeNumber }
func (StringSpec) Type() ValueType  { return TypeString }

func (BooleanSpec) isSchemaValue() {}
func (NumberSpec) isSchemaValue()  {}
func (StringSpec) isSchemaValue()  {}

// Schema maps variable names to their declared value.
type Schema map[string]SchemaValue

// ValueSpec is the normalized form of a SchemaValue.
type ValueSpec struct {
	DefaultValue string
	Alternatives []string
	ExpectedType ValueType
}

// ParseValueSpec normalizes a schema entry. Strings are split on "|" and
// every segment trimmed; the first segment becomes the default.
func ParseValueSpec(value SchemaValue) ValueSpec {
	switch v := value.(type) {
	case BooleanSpec:
		return ValueSpec{
			DefaultValue: strconv.FormatBool(bool(v)),
			Alternatives: []string{},
			ExpectedType: TypeBoolean,
		}
	case NumberSpec:
		return ValueSpec{
			DefaultValue: FormatNumber(float64(v)),
			Alternatives: []string{},
			ExpectedType: TypeNumber,
		}
	case StringSpec:
		parts := strings.Split(string(v), alternativeSeparator)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return ValueSpec{
			DefaultValue: parts[0],
			Alternatives: parts[1:],
			ExpectedType: TypeString,
		}
	default:
		return ValueSpec{Alternatives: []string{}, ExpectedType: TypeString}
	}
}

// FormatNumber renders a float the way JSON tooling in the JavaScript
// ecosystem does: plain notation for everyday magnitudes, exponent form
// below 1e-6 and at or above 1e21.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + string(sign) + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
