package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/envsync/internal/domain"
)

func TestParseEnv(t *testing.T) {
	content := `
# comment line
   # indented comment
DEBUG=true
  PORT = 8080  
URL=postgres://u:p@host/db?sslmode=disable&x=1
=novalue
noequals
EMPTY=
DUP=first
DUP=second
`
	got := domain.ParseEnv(content)

	assert.Equal(t, domain.EnvValues{
		"DEBUG": "true",
		"PORT":  "8080",
		"URL":   "postgres://u:p@host/db?sslmode=disable&x=1",
		"EMPTY": "",
		"DUP":   "second",
	}, got)
}

func TestParseEnv_Empty(t *testing.T) {
	assert.Empty(t, domain.ParseEnv(""))
	assert.Empty(t, domain.ParseEnv("\n\n# only comments\n"))
}

func TestParseEnv_CRLF(t *testing.T) {
	got := domain.ParseEnv("A=1\r\nB=2\r\n")
	assert.Equal(t, domain.EnvValues{"A": "1", "B": "2"}, got)
}

func TestParseEnv_ByteOrderMark(t *testing.T) {
	got := domain.ParseEnv("\uFEFFPORT=8080\nX=1")
	assert.Equal(t, domain.EnvValues{"PORT": "8080", "X": "1"}, got)

	rec := domain.Reconcile(domain.Schema{"PORT": domain.NumberSpec(3000)}, got)
	assert.Equal(t, "PORT=8080", rec.Content)
	assert.Empty(t, rec.Warnings)
}
