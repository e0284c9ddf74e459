package codec

import (
	"fmt"
	"reflect"

	"github.com/authcorp/libs/go/lenses"
	"github.com/fxamacker/cbor/v2"
)

// CBORCodec encodes records with Core Deterministic Encoding (RFC 8949 §4.2) and
// decodes nested maps as map[string]any.
type CBORCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var defaultCBOR = mustCBORCodec()

func mustCBORCodec() *CBORCodec {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
	return &CBORCodec{enc: enc, dec: dec}
}

// NewCBORCodec returns the shared CBOR codec. It is safe for concurrent use.
func NewCBORCodec() *CBORCodec {
	return defaultCBOR
}

// Encode encodes a record to CBOR. Identical records produce identical bytes.
func (c *CBORCodec) Encode(r lenses.Record) ([]byte, error) {
	data, err := c.enc.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode cbor: %w", err)
	}
	return data, nil
}

// Decode decodes a CBOR map with string keys.
func (c *CBORCodec) Decode(data []byte) (lenses.Record, error) {
	var v any
	if err := c.dec.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode cbor: %w", err)
	}
	return toRecord(v)
}
