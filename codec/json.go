package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/authcorp/libs/go/lenses"
	"github.com/tidwall/jsonc"
)

// JSONCodec encodes/decodes using JSON.
type JSONCodec struct {
	Pretty bool
	Indent string
}

// NewJSONCodec creates a new JSON codec with default options.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: "  "}
}

// WithPretty enables pretty printing.
func (c *JSONCodec) WithPretty() *JSONCodec {
	c.Pretty = true
	return c
}

// WithIndent sets the indentation string.
func (c *JSONCodec) WithIndent(indent string) *JSONCodec {
	c.Indent = indent
	return c
}

// Encode encodes a record to JSON.
func (c *JSONCodec) Encode(r lenses.Record) ([]byte, error) {
	if c.Pretty {
		return json.MarshalIndent(r, "", c.Indent)
	}
	return json.Marshal(r)
}

// Decode decodes a JSON object.
//
// Integers decode as int64, or uint64 above the int64 range, so they survive a
// decode and encode cycle exactly. Integers beyond uint64 stay json.Number and
// other numbers decode as float64.
func (c *JSONCodec) Decode(data []byte) (lenses.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode json: unexpected data after top-level value")
	}
	return toRecord(v)
}

// JSONCCodec decodes JSON with comments and trailing commas and encodes plain JSON.
type JSONCCodec struct {
	JSONCodec
}

// NewJSONCCodec creates a new JSONC codec.
func NewJSONCCodec() *JSONCCodec {
	return &JSONCCodec{JSONCodec: JSONCodec{Indent: "  "}}
}

// Decode strips comments and trailing commas, then decodes as JSON.
func (c *JSONCCodec) Decode(data []byte) (lenses.Record, error) {
	return c.JSONCodec.Decode(jsonc.ToJSON(data))
}
