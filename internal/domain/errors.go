package domain

import (
	"errors"
	"fmt"
)

// ErrManifestNotFound is returned when no manifest exists in the start
// directory or any of its parents.
var ErrManifestNotFound = errors.New("manifest not found")

// ErrorKind groups fatal errors for reporting and tests.
type ErrorKind string

const (
	KindManifestNotFound ErrorKind = "manifest_not_found"
	KindManifestParse    ErrorKind = "manifest_parse"
	KindInvalidSchema    ErrorKind = "invalid_schema"
	KindFileSystem       ErrorKind = "filesystem"
	KindInvalidConfig    ErrorKind = "invalid_config"
)

// OpError wraps an underlying error with the failing operation and its kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err carries an OpError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
