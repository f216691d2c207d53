package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationResult reports whether an existing value matches its declared type.
type ValidationResult struct {
	Valid   bool
	Warning string
}

// ValidateValue checks an existing raw value against the expected type.
// String-typed values are never rejected, even when they are not among
// the declared alternatives.
func ValidateValue(key, existing string, expected ValueType) ValidationResult {
	switch expected {
	case TypeBoolean:
		switch strings.ToLower(existing) {
		case "true", "false":
		default:
			return ValidationResult{
				Warning: fmt.Sprintf("Warning: %s should be a boolean (true/false), but found \"%s\"", key, existing),
			}
		}
	case TypeNumber:
		if !isNumeric(existing) {
			return ValidationResult{
				Warning: fmt.Sprintf("Warning: %s should be a number, but found \"%s\"", key, existing),
			}
		}
	}
	return ValidationResult{Valid: true}
}

// isNumeric accepts decimal literals, the exact Infinity spellings and
// unsigned 0x, 0o and 0b integers. Signed or fractional prefixed forms and
// the inf/nan words strconv also understands are rejected.
func isNumeric(s string) bool {
	switch s {
	case "":
		return false
	case "Infinity", "+Infinity", "-Infinity":
		return true
	}

	if unsigned := strings.TrimLeft(s, "+-"); hasRadixPrefix(unsigned) {
		return unsigned == s && isRadixInteger(s)
	}

	f, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		return true
	}
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func hasRadixPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1]))
}

// isRadixInteger accepts unsigned 0x, 0o and 0b integer literals.
func isRadixInteger(s string) bool {
	if len(s) < 3 || strings.ContainsAny(s, "_pP") {
		return false
	}
	var base int
	switch s[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return false
	}
	_, err := strconv.ParseUint(s[2:], base, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}
