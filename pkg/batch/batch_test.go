package batch_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/jsonkit/internal/fs"
	"github.com/calvinalkan/jsonkit/pkg/batch"
	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

var errInjected = errors.New("injected write failure")

// writeFixtures creates good JSON files plus one malformed file, returning
// all paths in order: good..., malformed, missing.
func writeFixtures(t *testing.T) (dir string, paths []string) {
	t.Helper()

	dir = t.TempDir()

	for i, content := range []string{`{"id":1}`, `{"id":2}`, `[1,2,3]`} {
		path := filepath.Join(dir, "good"+string(rune('a'+i))+".json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		paths = append(paths, path)
	}

	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"id":`), 0o600))
	paths = append(paths, malformed)

	paths = append(paths, filepath.Join(dir, "missing.json"))

	return dir, paths
}

func assertLoadResults(t *testing.T, paths []string, results map[string]batch.Item) {
	t.Helper()

	// Exactly one entry per input path.
	require.Len(t, results, len(paths))

	for _, path := range paths {
		_, ok := results[path]
		require.True(t, ok, "missing result for %s", path)
	}

	// The two bad paths are absence markers, the rest decoded documents.
	require.True(t, results[paths[3]].Failed())
	require.True(t, results[paths[4]].Failed())
	require.Nil(t, results[paths[3]].Doc)

	require.False(t, results[paths[0]].Failed())
	require.Equal(t, map[string]any{"id": 1.0}, results[paths[0]].Doc)
	require.Equal(t, map[string]any{"id": 2.0}, results[paths[1]].Doc)
	require.Equal(t, []any{1.0, 2.0, 3.0}, results[paths[2]].Doc)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	_, paths := writeFixtures(t)

	results := batch.Load(paths, batch.Config{})

	assertLoadResults(t, paths, results)
}

func TestLoadPool(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		workers int
	}{
		{name: "narrow pool queues items", workers: 2},
		{name: "pool wider than batch", workers: 64},
		{name: "default width", workers: 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, paths := writeFixtures(t)

			results := batch.LoadPool(paths, batch.Config{Workers: tt.workers})

			assertLoadResults(t, paths, results)
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, batch.Load(nil, batch.Config{}))
	require.Empty(t, batch.LoadPool(nil, batch.Config{}))
}

func saveEntries(dir string) []batch.Entry {
	return []batch.Entry{
		{Path: filepath.Join(dir, "one.json"), Doc: map[string]any{"n": 1.0}},
		{Path: filepath.Join(dir, "two.json"), Doc: []any{true, nil}},
		{Path: filepath.Join(dir, "three.json"), Doc: "scalar"},
	}
}

func TestSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	entries := saveEntries(dir)

	saved := batch.Save(entries, batch.Config{})

	// Input order for the gather strategy.
	want := []string{entries[0].Path, entries[1].Path, entries[2].Path}
	require.Equal(t, want, saved)

	data, err := os.ReadFile(entries[0].Path)
	require.NoError(t, err)
	require.JSONEq(t, `{"n":1}`, string(data))
}

func TestSaveUnwritableTargetOmitted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	entries := saveEntries(dir)
	blocked := entries[1].Path

	fsys := &fs.Injected{
		WriteFileAtomicFn: func(path string, data []byte, perm os.FileMode) error {
			if path == blocked {
				return errInjected
			}

			return fs.NewReal().WriteFileAtomic(path, data, perm)
		},
	}

	saved := batch.Save(entries, batch.Config{FS: fsys})

	require.Equal(t, []string{entries[0].Path, entries[2].Path}, saved)

	exists, err := fs.NewReal().Exists(blocked)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestSaveUnencodableDocOmitted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	entries := []batch.Entry{
		{Path: filepath.Join(dir, "ok.json"), Doc: map[string]any{"a": 1.0}},
		{Path: filepath.Join(dir, "bad.json"), Doc: map[string]any{"ch": make(chan int)}},
	}

	saved := batch.Save(entries, batch.Config{})
	require.Equal(t, []string{entries[0].Path}, saved)
}

func TestSavePool(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	entries := saveEntries(dir)

	saved := batch.SavePool(entries, batch.Config{Workers: 2})

	// Completion order is nondeterministic; compare as a set.
	want := []string{entries[0].Path, entries[1].Path, entries[2].Path}
	require.ElementsMatch(t, want, saved)

	for _, entry := range entries {
		exists, err := fs.NewReal().Exists(entry.Path)
		require.NoError(t, err)
		require.True(t, exists)
	}
}

func TestSavePoolFailureOmitted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	entries := saveEntries(dir)
	blocked := entries[0].Path

	fsys := &fs.Injected{
		WriteFileAtomicFn: func(path string, data []byte, perm os.FileMode) error {
			if path == blocked {
				return errInjected
			}

			return fs.NewReal().WriteFileAtomic(path, data, perm)
		},
	}

	saved := batch.SavePool(entries, batch.Config{Workers: 2, FS: fsys})
	require.ElementsMatch(t, []string{entries[1].Path, entries[2].Path}, saved)
}

func TestSaveEncodeOptionsApplied(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pretty.json")

	entries := []batch.Entry{{Path: path, Doc: map[string]any{"a": 1.0}}}

	saved := batch.Save(entries, batch.Config{Encode: jsondoc.Options{Indent: 2}})
	require.Equal(t, []string{path}, saved)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1\n}", string(data))
}

func TestLoadSaveRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	entries := saveEntries(dir)

	saved := batch.Save(entries, batch.Config{})
	require.Len(t, saved, len(entries))

	results := batch.Load(saved, batch.Config{})

	for _, entry := range entries {
		item := results[entry.Path]
		require.False(t, item.Failed())

		if diff := cmp.Diff(entry.Doc, item.Doc); diff != "" {
			t.Errorf("round trip mismatch for %s (-want +got):\n%s", entry.Path, diff)
		}
	}
}
