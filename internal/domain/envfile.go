package domain

import (
	"strings"
	"unicode"
)

// EnvValues holds the raw values of an existing environment file.
type EnvValues map[string]string

// ParseEnv reads KEY=value lines. Blank lines, comments and lines without
// a key before the first "=" are skipped. Later duplicates win.
func ParseEnv(content string) EnvValues {
	values := EnvValues{}
	for _, line := range strings.Split(content, "\n") {
		line = trimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}

		key := trimSpace(line[:idx])
		values[key] = trimSpace(line[idx+1:])
	}
	return values
}

// trimSpace also strips U+FEFF, which editors write as a byte-order mark
// at the start of the file.
func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '\uFEFF' || unicode.IsSpace(r)
	})
}
