package lenses_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/authcorp/libs/go/lenses"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"pgregory.net/rapid"
)

func decodeJSON(t require.TestingT, data []byte) lenses.Record {
	var r lenses.Record
	require.NoError(t, json.Unmarshal(data, &r))
	return r
}

// Lens reads agree with gjson paths on decoded JSON documents.
func TestOracle_GetMatchesGJSON(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data, err := json.Marshal(recordGen(3).Draw(t, "record"))
		if err != nil {
			t.Fatal(err)
		}
		path := strings.Join(rapid.SliceOfN(rapid.SampledFrom(segments), 1, 4).Draw(t, "path"), ".")

		want := gjson.GetBytes(data, path)
		got := lenses.MustOf(path).Get(decodeJSON(t, data))

		switch {
		case !want.Exists():
			if got != nil {
				t.Fatalf("%s: gjson found nothing, lens got %v", path, got)
			}
		case !reflect.DeepEqual(want.Value(), got):
			t.Fatalf("%s: gjson %v, lens %v", path, want.Value(), got)
		}
	})
}

// Lens writes create the same documents as sjson when every intermediate is an object.
func TestOracle_SetMatchesSJSON(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		paths := pathsGen().Draw(t, "paths")

		doc := []byte(`{"z":{"keep":true}}`)
		r := decodeJSON(t, doc)
		for i, p := range paths {
			path := strings.Join(p, ".")
			var err error
			if doc, err = sjson.SetBytes(doc, path, i); err != nil {
				t.Fatal(err)
			}
			if r, err = lenses.MustOf(path).Set(r, i); err != nil {
				t.Fatal(err)
			}
		}

		encoded, err := json.Marshal(r)
		if err != nil {
			t.Fatal(err)
		}
		if want, got := decodeJSON(t, doc), decodeJSON(t, encoded); !reflect.DeepEqual(want, got) {
			t.Fatalf("sjson %v, lens %v", want, got)
		}
	})
}

func TestOracle_ProjectionMatchesGJSONMulti(t *testing.T) {
	doc := []byte(`{"user":{"name":"ada","langs":["go","ml"]},"meta":{"id":7}}`)

	l := lenses.Projection(lenses.MustOf("user.name"), lenses.MustOf("meta.id"), lenses.MustOf("user.langs"))
	got := l.Get(decodeJSON(t, doc))

	results := gjson.GetManyBytes(doc, "user.name", "meta.id", "user.langs")
	want := make([]any, len(results))
	for i, res := range results {
		want[i] = res.Value()
	}
	require.Equal(t, want, got)
}
