// Package codec encodes and decodes lenses.Record documents.
//
// Supported formats are JSON, JSON with comments (JSONC, decode only; it encodes as
// JSON), YAML and CBOR. Decoded documents always use map[string]any for nested
// records so that lenses can traverse them.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/authcorp/libs/go/lenses"
)

var (
	// ErrUnknownFormat is returned for a format name or extension without a codec.
	ErrUnknownFormat = errors.New("codec: unknown format")
	// ErrNotRecord is returned when a document's top level is not a keyed record.
	ErrNotRecord = errors.New("codec: document is not a record")
)

// Codec converts between encoded documents and records.
type Codec interface {
	Encode(r lenses.Record) ([]byte, error)
	Decode(data []byte) (lenses.Record, error)
}

// Format names a document format.
type Format string

// Supported formats.
const (
	JSON  Format = "json"
	JSONC Format = "jsonc"
	YAML  Format = "yaml"
	CBOR  Format = "cbor"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{JSON, JSONC, YAML, CBOR}
}

// ForFormat returns the codec for a format name.
func ForFormat(name string) (Codec, error) {
	switch Format(strings.ToLower(name)) {
	case JSON:
		return NewJSONCodec(), nil
	case JSONC:
		return NewJSONCCodec(), nil
	case YAML, "yml":
		return NewYAMLCodec(), nil
	case CBOR:
		return NewCBORCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ForPath picks a codec from a file extension.
func ForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: no extension in %q", ErrUnknownFormat, path)
	}
	return ForFormat(ext)
}

// normalize converts decoded nested maps into map[string]any.
//
// YAML mappings with non-string keys decode as map[any]any; their keys are
// stringified so lens paths can address them. JSON numbers are resolved by
// number.
func normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		return number(v)
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	default:
		return v
	}
}

// number converts a JSON number to the narrowest Go type that holds it exactly.
func number(n json.Number) any {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u
	}
	if !strings.ContainsAny(s, ".eE") {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return n
}

func toRecord(v any) (lenses.Record, error) {
	switch r := normalize(v).(type) {
	case map[string]any:
		return r, nil
	case nil:
		return lenses.Record{}, nil
	default:
		return nil, fmt.Errorf("%w: top level is %T", ErrNotRecord, v)
	}
}
