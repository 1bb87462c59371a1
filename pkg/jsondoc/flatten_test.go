package jsondoc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

func TestFlatten(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		text string
		sep  string
		want map[string]any
	}{
		{
			name: "nested object",
			text: `{"car":{"type":"sedan","engine":{"power":300}}}`,
			want: map[string]any{"car.type": "sedan", "car.engine.power": 300.0},
		},
		{
			name: "list indices become segments",
			text: `{"tags":["a","b"]}`,
			want: map[string]any{"tags.0": "a", "tags.1": "b"},
		},
		{
			name: "list at root",
			text: `[{"a":1},2]`,
			want: map[string]any{"0.a": 1.0, "1": 2.0},
		},
		{
			name: "scalar root gets empty key",
			text: `"lonely"`,
			want: map[string]any{"": "lonely"},
		},
		{
			name: "null leaf survives",
			text: `{"a":null}`,
			want: map[string]any{"a": nil},
		},
		{
			name: "empty containers vanish",
			text: `{"a":{},"b":[]}`,
			want: map[string]any{},
		},
		{
			name: "custom separator",
			text: `{"a":{"b":1}}`,
			sep:  "/",
			want: map[string]any{"a/b": 1.0},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustDecode(t, tt.text)

			got := jsondoc.Flatten(doc, tt.sep)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnflatten(t *testing.T) {
	t.Parallel()

	flat := map[string]any{"car.type": "sedan", "car.engine.power": 300.0}

	want := map[string]any{
		"car": map[string]any{
			"type":   "sedan",
			"engine": map[string]any{"power": 300.0},
		},
	}

	got := jsondoc.Unflatten(flat, "")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unflatten mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenUnflattenRoundTripWithoutSequences(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{"car":{"type":"sedan","engine":{"power":300}},"year":2020}`)

	flat := jsondoc.Flatten(doc, ".")
	rebuilt := jsondoc.Unflatten(flat, ".")

	if diff := cmp.Diff(doc, rebuilt); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// And the other direction: unflatten then flatten restores the flat map.
	reflattened := jsondoc.Flatten(rebuilt, ".")
	if diff := cmp.Diff(flat, reflattened); diff != "" {
		t.Errorf("flat round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenUnflattenDivergesOnSequences(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{"tags":["a","b"]}`)

	rebuilt := jsondoc.Unflatten(jsondoc.Flatten(doc, "."), ".")

	// Numeric segments become string keys, not a reconstructed list.
	want := map[string]any{"tags": map[string]any{"0": "a", "1": "b"}}
	if diff := cmp.Diff(want, rebuilt); diff != "" {
		t.Errorf("divergence mismatch (-want +got):\n%s", diff)
	}

	require.NotEqual(t, doc, rebuilt)
}

func TestFlattenDeepDocument(t *testing.T) {
	t.Parallel()

	// Deep enough to blow a recursive traversal's stack.
	const depth = 200000

	doc := any("leaf")
	for range depth {
		doc = map[string]any{"n": doc}
	}

	flat := jsondoc.Flatten(doc, ".")
	require.Len(t, flat, 1)

	for key, value := range flat {
		require.Equal(t, "leaf", value)
		require.Len(t, key, depth*2-1)
	}
}
