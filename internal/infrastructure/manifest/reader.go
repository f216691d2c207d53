package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/doeshing/envsync/internal/domain"
	"github.com/doeshing/envsync/internal/ports"
)

// DefaultSchemaField is the top-level manifest field holding the schema.
const DefaultSchemaField = "envModel"

// Reader decodes the schema field of a JSON manifest.
type Reader struct {
	Field string
}

// NewReader returns a Reader for the given schema field.
func NewReader(field string) *Reader {
	if field == "" {
		field = DefaultSchemaField
	}
	return &Reader{Field: field}
}

// ReadSchema implements ports.ManifestReader.
func (r *Reader) ReadSchema(path string) (domain.Schema, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, &domain.OpError{Op: "manifest.read", Kind: domain.KindFileSystem, Path: path, Err: err}
	}
	return r.Decode(path, data)
}

// Decode parses manifest bytes. path is only used for error context.
func (r *Reader) Decode(path string, data []byte) (domain.Schema, bool, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, &domain.OpError{Op: "manifest.parse", Kind: domain.KindManifestParse, Path: path, Err: err}
	}

	raw, ok := doc[r.Field]
	if !ok || isEmptyField(raw) {
		return nil, false, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, &domain.OpError{
			Op:   "manifest.parse",
			Kind: domain.KindInvalidSchema,
			Path: path,
			Err:  fmt.Errorf("%s must be an object: %w", r.Field, err),
		}
	}

	schema := make(domain.Schema, len(entries))
	for key, entry := range entries {
		value, err := decodeValue(entry)
		if err != nil {
			return nil, false, &domain.OpError{
				Op:   "manifest.parse",
				Kind: domain.KindInvalidSchema,
				Path: path,
				Err:  fmt.Errorf("%s.%s: %w", r.Field, key, err),
			}
		}
		schema[key] = value
	}
	return schema, true, nil
}

func decodeValue(raw json.RawMessage) (domain.SchemaValue, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch t := v.(type) {
	case bool:
		return domain.BooleanSpec(t), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return nil, fmt.Errorf("number %s out of range", t)
		}
		return domain.NumberSpec(f), nil
	case string:
		return domain.StringSpec(t), nil
	default:
		return nil, fmt.Errorf("unsupported value %s: expected boolean, number or string", bytes.TrimSpace(raw))
	}
}

// isEmptyField reports whether the schema field holds null, false, "" or a
// zero number. Those count as no schema at all.
func isEmptyField(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "null", "false", `""`:
		return true
	}
	if len(raw) == 0 || raw[0] == '"' {
		return false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return false
	}
	f, err := n.Float64()
	return err == nil && f == 0
}

var _ ports.ManifestReader = (*Reader)(nil)
