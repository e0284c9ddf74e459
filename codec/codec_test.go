package codec_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/authcorp/libs/go/lenses"
	"github.com/authcorp/libs/go/lenses/codec"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type Record = lenses.Record

func anyGen[T any](g *rapid.Generator[T]) *rapid.Generator[any] {
	return rapid.Map(g, func(v T) any { return v })
}

// recordGen draws records whose scalars survive every codec unchanged.
func recordGen(depth int) *rapid.Generator[Record] {
	return rapid.Custom(func(t *rapid.T) Record {
		keys := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,4}`), 0, 4, rapid.ID[string]).Draw(t, "keys")
		values := []*rapid.Generator[any]{
			anyGen(rapid.StringMatching(`[a-z0-9]{0,8}`)),
			anyGen(rapid.Bool()),
			rapid.Just[any](nil),
		}
		if depth > 0 {
			values = append(values, anyGen(recordGen(depth-1)))
		}
		r := make(Record, len(keys))
		for _, k := range keys {
			r[k] = rapid.OneOf(values...).Draw(t, k)
		}
		return r
	})
}

func TestRoundTrip(t *testing.T) {
	for _, format := range codec.Formats() {
		t.Run(string(format), func(t *testing.T) {
			c, err := codec.ForFormat(string(format))
			require.NoError(t, err)

			rapid.Check(t, func(t *rapid.T) {
				r := recordGen(3).Draw(t, "record")
				data, err := c.Encode(r)
				if err != nil {
					t.Fatal(err)
				}
				decoded, err := c.Decode(data)
				if err != nil {
					t.Fatal(err)
				}
				if !reflect.DeepEqual(r, decoded) {
					t.Fatalf("got %v, want %v", decoded, r)
				}
			})
		})
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		name string
		want any
	}{
		{name: "json", want: &codec.JSONCodec{}},
		{name: "JSON", want: &codec.JSONCodec{}},
		{name: "jsonc", want: &codec.JSONCCodec{}},
		{name: "yaml", want: &codec.YAMLCodec{}},
		{name: "yml", want: &codec.YAMLCodec{}},
		{name: "cbor", want: &codec.CBORCodec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := codec.ForFormat(tt.name)
			require.NoError(t, err)
			require.IsType(t, tt.want, c)
		})
	}

	_, err := codec.ForFormat("toml")
	require.ErrorIs(t, err, codec.ErrUnknownFormat)
}

func TestForPath(t *testing.T) {
	c, err := codec.ForPath("configs/app.yml")
	require.NoError(t, err)
	require.IsType(t, &codec.YAMLCodec{}, c)

	c, err = codec.ForPath("settings.jsonc")
	require.NoError(t, err)
	require.IsType(t, &codec.JSONCCodec{}, c)

	_, err = codec.ForPath("Makefile")
	require.ErrorIs(t, err, codec.ErrUnknownFormat)
}

func TestJSON_Decode(t *testing.T) {
	r, err := codec.NewJSONCodec().Decode([]byte(`{"a":{"b":1,"c":[true,"x",-2.5]},"d":null}`))
	require.NoError(t, err)
	require.Equal(t, Record{
		"a": map[string]any{"b": int64(1), "c": []any{true, "x", -2.5}},
		"d": nil,
	}, r)

	r, err = codec.NewJSONCodec().Decode([]byte(`null`))
	require.NoError(t, err)
	require.Equal(t, Record{}, r)
}

func TestJSON_Numbers(t *testing.T) {
	tests := []struct {
		doc  string
		want any
	}{
		{doc: `{"n":9007199254740993}`, want: int64(9007199254740993)},
		{doc: `{"n":-9223372036854775808}`, want: int64(-9223372036854775808)},
		{doc: `{"n":12345678901234567890}`, want: uint64(12345678901234567890)},
		{doc: `{"n":123456789012345678901234567890}`, want: json.Number("123456789012345678901234567890")},
		{doc: `{"n":0.1}`, want: 0.1},
		{doc: `{"n":1e3}`, want: 1000.0},
	}
	c := codec.NewJSONCodec()
	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			r, err := c.Decode([]byte(tt.doc))
			require.NoError(t, err)
			require.Equal(t, tt.want, r["n"])

			data, err := c.Encode(r)
			require.NoError(t, err)
			if _, isFloat := tt.want.(float64); !isFloat {
				require.Equal(t, tt.doc, string(data))
			}
		})
	}
}

func TestJSON_TrailingData(t *testing.T) {
	_, err := codec.NewJSONCodec().Decode([]byte(`{"a":1} {"b":2}`))
	require.ErrorContains(t, err, "unexpected data")

	_, err = codec.NewJSONCodec().Decode([]byte("{\"a\":1}\n"))
	require.NoError(t, err)
}

func TestJSON_NotRecord(t *testing.T) {
	for _, doc := range []string{`[1,2]`, `42`, `"text"`} {
		_, err := codec.NewJSONCodec().Decode([]byte(doc))
		require.ErrorIs(t, err, codec.ErrNotRecord, doc)
	}
}

func TestJSON_Pretty(t *testing.T) {
	data, err := codec.NewJSONCodec().WithPretty().WithIndent("\t").Encode(Record{"a": Record{"b": 1}})
	require.NoError(t, err)
	require.Equal(t, "{\n\t\"a\": {\n\t\t\"b\": 1\n\t}\n}", string(data))
}

func TestJSONC_Decode(t *testing.T) {
	doc := `{
		// service settings
		"service": {
			"name": "lens", /* inline */
			"ports": [80, 443,],
		},
	}`
	r, err := codec.NewJSONCCodec().Decode([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, "lens", lenses.MustOf("service.name").Get(r))
	require.Equal(t, []any{int64(80), int64(443)}, lenses.MustOf("service.ports").Get(r))
}

func TestYAML_Decode(t *testing.T) {
	doc := `
service:
  name: lens
  replicas: 3
  labels:
    1: one
`
	r, err := codec.NewYAMLCodec().Decode([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, 3, lenses.MustOf("service.replicas").Get(r))
	require.Equal(t, "one", lenses.MustOf("service.labels.1").Get(r))

	_, err = codec.NewYAMLCodec().Decode([]byte("- a\n- b\n"))
	require.ErrorIs(t, err, codec.ErrNotRecord)
}

func TestYAML_Encode(t *testing.T) {
	data, err := codec.NewYAMLCodec().Encode(Record{"a": Record{"b": 1}})
	require.NoError(t, err)
	require.Equal(t, "a:\n  b: 1\n", string(data))

	data, err = codec.NewYAMLCodec().WithIndent(4).Encode(Record{"a": Record{"b": 1}})
	require.NoError(t, err)
	require.Equal(t, "a:\n    b: 1\n", string(data))
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{in: "42", want: 42},
		{in: "1.5", want: 1.5},
		{in: "true", want: true},
		{in: "hello", want: "hello"},
		{in: `"42"`, want: "42"},
		{in: "null", want: nil},
		{in: "[1, 2]", want: []any{1, 2}},
		{in: "{a: 1, b: {c: x}}", want: map[string]any{"a": 1, "b": map[string]any{"c": "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := codec.ParseValue(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := codec.ParseValue("{a: [")
	require.Error(t, err)
}

func TestCBOR_Deterministic(t *testing.T) {
	c := codec.NewCBORCodec()
	r := Record{"b": 1, "a": Record{"y": "v", "x": true}, "c": []any{"1", "2"}}

	first, err := c.Encode(r)
	require.NoError(t, err)
	for range 10 {
		again, err := c.Encode(r)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestCBOR_LensRoundTrip(t *testing.T) {
	c := codec.NewCBORCodec()
	data, err := c.Encode(Record{"user": Record{"name": "ada"}})
	require.NoError(t, err)

	r, err := c.Decode(data)
	require.NoError(t, err)
	out, err := lenses.MustOf("user.email").Set(r, "ada@example.com")
	require.NoError(t, err)

	data, err = c.Encode(out)
	require.NoError(t, err)
	decoded, err := c.Decode(data)
	require.NoError(t, err)
	require.Equal(t, Record{"user": map[string]any{"name": "ada", "email": "ada@example.com"}}, decoded)

	_, err = c.Decode([]byte{0xff})
	require.Error(t, err)
}
