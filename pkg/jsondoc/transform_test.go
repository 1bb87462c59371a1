package jsondoc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

func TestUpdateKey(t *testing.T) {
	t.Parallel()

	doc := map[string]any{"a": 1.0}

	got := jsondoc.UpdateKey(doc, "b", "two")
	require.Equal(t, map[string]any{"a": 1.0, "b": "two"}, got)

	// Mutates in place and overwrites existing keys.
	jsondoc.UpdateKey(doc, "a", nil)
	require.Equal(t, map[string]any{"a": nil, "b": "two"}, doc)
}

func TestRemoveKey(t *testing.T) {
	t.Parallel()

	doc := map[string]any{"a": 1.0, "b": 2.0}

	got := jsondoc.RemoveKey(doc, "a")
	require.Equal(t, map[string]any{"b": 2.0}, got)

	// Removing an absent key is a no-op.
	got = jsondoc.RemoveKey(doc, "missing")
	require.Equal(t, map[string]any{"b": 2.0}, got)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		a    map[string]any
		b    map[string]any
		want map[string]any
	}{
		{
			name: "b overwrites a",
			a:    map[string]any{"x": 1.0, "y": 2.0},
			b:    map[string]any{"y": 3.0, "z": 4.0},
			want: map[string]any{"x": 1.0, "y": 3.0, "z": 4.0},
		},
		{
			name: "nested values replaced wholesale",
			a:    map[string]any{"cfg": map[string]any{"keep": true, "depth": 1.0}},
			b:    map[string]any{"cfg": map[string]any{"depth": 2.0}},
			want: map[string]any{"cfg": map[string]any{"depth": 2.0}},
		},
		{
			name: "empty b preserves a",
			a:    map[string]any{"x": 1.0},
			b:    map[string]any{},
			want: map[string]any{"x": 1.0},
		},
		{
			name: "nil inputs",
			a:    nil,
			b:    nil,
			want: map[string]any{},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := jsondoc.Merge(tt.a, tt.b)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	a := map[string]any{"x": 1.0}
	b := map[string]any{"x": 2.0}

	_ = jsondoc.Merge(a, b)

	require.Equal(t, 1.0, a["x"])
	require.Equal(t, 2.0, b["x"])
}

func TestMergeKeyUnion(t *testing.T) {
	t.Parallel()

	a := map[string]any{"a": 1.0, "shared": 1.0}
	b := map[string]any{"b": 2.0, "shared": 2.0}

	got := jsondoc.Merge(a, b)

	require.Len(t, got, 3)

	for k, v := range b {
		require.Equal(t, v, got[k])
	}

	require.Equal(t, a["a"], got["a"])
}

func TestNormalizeKeys(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		in   any
		want any
	}{
		{
			name: "int keys",
			in:   map[int]any{1: "one", 2: "two"},
			want: map[string]any{"1": "one", "2": "two"},
		},
		{
			name: "nested mixed keys",
			in: map[string]any{
				"outer": map[bool]any{true: []any{map[float64]any{1.5: "v"}}},
			},
			want: map[string]any{
				"outer": map[string]any{"true": []any{map[string]any{"1.5": "v"}}},
			},
		},
		{
			name: "string keys unchanged",
			in:   map[string]any{"a": []any{1.0, nil}},
			want: map[string]any{"a": []any{1.0, nil}},
		},
		{
			name: "scalar passthrough",
			in:   42.0,
			want: 42.0,
		},
		{
			name: "nil passthrough",
			in:   nil,
			want: nil,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := jsondoc.NormalizeKeys(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NormalizeKeys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
