package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webwright/pkg/types"
)

func TestMaterializeWritesNestedFile(t *testing.T) {
	dir := t.TempDir()

	f := types.GeneratedFile{Path: "src/components/List.tsx", Content: "export const List = () => null;\n"}
	require.NoError(t, Materialize(f, dir))

	data, err := os.ReadFile(filepath.Join(dir, "src", "components", "List.tsx"))
	require.NoError(t, err)
	assert.Equal(t, f.Content, string(data))
}

func TestMaterializeReplacesExistingContent(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Materialize(types.GeneratedFile{Path: "a.ts", Content: "old"}, dir))
	require.NoError(t, Materialize(types.GeneratedFile{Path: "a.ts", Content: "new"}, dir))

	data, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestMaterializeRejectsUnsafePaths(t *testing.T) {
	dir := t.TempDir()

	for _, p := range []string{"../escape.ts", "/etc/passwd", ""} {
		err := Materialize(types.GeneratedFile{Path: p, Content: "x"}, dir)
		assert.Error(t, err, "path %q should be rejected", p)
	}
}

func TestMaterializeLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Materialize(types.GeneratedFile{Path: "a.ts", Content: "x"}, dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.ts", entries[0].Name())
}

func TestMaterializeSetReportsPerFileFailures(t *testing.T) {
	dir := t.TempDir()

	set := types.NewFileSet()
	set.Put(types.GeneratedFile{Path: "good.ts", Content: "ok"})
	set.Put(types.GeneratedFile{Path: "../bad.ts", Content: "nope"})

	err := MaterializeSet(set, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "../bad.ts")

	// The good file still landed despite the failure.
	_, statErr := os.Stat(filepath.Join(dir, "good.ts"))
	assert.NoError(t, statErr)
}

func TestSweepStale(t *testing.T) {
	dir := t.TempDir()

	set := types.NewFileSet()
	set.Put(types.GeneratedFile{Path: "index.html", Content: "<html></html>"})
	require.NoError(t, MaterializeSet(set, dir))

	// Simulate leftovers from an earlier generation plus protected paths.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.ts"), []byte("old"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "react"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "react", "index.js"), []byte("lib"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".webwright"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".webwright", "config.json"), []byte("{}"), 0644))

	written := map[string]bool{
		"index.html": true,
		"stale.ts":   true,
		// A misrecorded protected path must still survive the sweep.
		"node_modules/react/index.js": true,
		".webwright/config.json":      true,
	}
	require.NoError(t, SweepStale(set, written, dir))

	_, err := os.Stat(filepath.Join(dir, "stale.ts"))
	assert.True(t, os.IsNotExist(err), "stale generated file should be removed")

	for _, kept := range []string{
		filepath.Join(dir, "index.html"),
		filepath.Join(dir, "node_modules", "react", "index.js"),
		filepath.Join(dir, ".webwright", "config.json"),
	} {
		_, err := os.Stat(kept)
		assert.NoError(t, err, "%s should survive the sweep", kept)
	}
}

func TestSweepStaleNeverTouchesPreExistingFiles(t *testing.T) {
	dir := t.TempDir()

	// The directory already belongs to the user.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("mine"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "notes.txt"), []byte("mine too"), 0644))

	set := types.NewFileSet()
	set.Put(types.GeneratedFile{Path: "index.html", Content: "<html></html>"})
	require.NoError(t, MaterializeSet(set, dir))

	written := map[string]bool{"index.html": true}
	require.NoError(t, SweepStale(set, written, dir))

	for _, kept := range []string{
		filepath.Join(dir, "README.md"),
		filepath.Join(dir, "docs", "notes.txt"),
		filepath.Join(dir, "index.html"),
	} {
		_, err := os.Stat(kept)
		assert.NoError(t, err, "%s must survive the sweep", kept)
	}
}

func TestLoadSetRoundTripsMaterializedFiles(t *testing.T) {
	dir := t.TempDir()

	set := types.NewFileSet()
	set.Put(types.GeneratedFile{Path: "index.html", Content: "<html></html>"})
	set.Put(types.GeneratedFile{Path: "src/App.tsx", Content: "export default function App() {}\n"})
	require.NoError(t, MaterializeSet(set, dir))

	// Protected paths must not be loaded back.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "react"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "react", "index.js"), []byte("x"), 0644))

	loaded, err := LoadSet(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html", "src/App.tsx"}, loaded.Paths())

	f, ok := loaded.Get("src/App.tsx")
	require.True(t, ok)
	assert.Equal(t, "export default function App() {}\n", f.Content)
}
