package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree creates the given files (with parent directories) under a temp dir.
func tree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("export {};\n"), 0o644))
	}
	return root
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestWalk_IgnoresDefaults(t *testing.T) {
	root := tree(t,
		"src/index.ts",
		"node_modules/lib/index.ts",
		"dist/index.js",
		".git/HEAD",
		".env",
	)

	var visited []string
	err := WalkWithDefaults(root, func(path string, d fs.DirEntry) error {
		if !d.IsDir() {
			visited = append(visited, path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/index.ts"}, rel(t, root, visited))
}

func TestWalk_Options(t *testing.T) {
	root := tree(t, "a.ts", "a.tmp", ".hidden/b.ts", "vendor/c.ts")

	var visited []string
	err := Walk(root, WalkOptions{
		IgnoreDirs:     []string{"vendor"},
		IgnorePatterns: []string{"*.tmp"},
		IncludeHidden:  true,
	}, func(path string, d fs.DirEntry) error {
		if !d.IsDir() {
			visited = append(visited, path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.ts", ".hidden/b.ts"}, rel(t, root, visited))
}

func TestWalk_SkipDir(t *testing.T) {
	root := tree(t, "keep/a.ts", "skip/b.ts")

	var visited []string
	err := WalkWithDefaults(root, func(path string, d fs.DirEntry) error {
		if d.IsDir() && d.Name() == "skip" {
			return filepath.SkipDir
		}
		if !d.IsDir() {
			visited = append(visited, path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep/a.ts"}, rel(t, root, visited))
}

func TestWalk_MissingRoot(t *testing.T) {
	err := WalkWithDefaults(filepath.Join(t.TempDir(), "missing"), func(string, fs.DirEntry) error { return nil })
	assert.Error(t, err)
}

func TestSourceFiles(t *testing.T) {
	root := tree(t,
		"src/b.ts",
		"src/a.tsx",
		"src/types.d.ts",
		"src/a.test.ts",
		"src/util.spec.tsx",
		"src/legacy.js",
		"src/gen/api.mts",
		"README.md",
	)

	files, err := SourceFiles(root, SourceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.tsx", "src/b.ts", "src/gen/api.mts"}, rel(t, root, files))

	files, err = SourceFiles(root, SourceOptions{IncludeDeclarations: true, IncludeTests: true, ExcludePaths: []string{"/gen/"}})
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"src/a.test.ts", "src/a.tsx", "src/b.ts", "src/types.d.ts", "src/util.spec.tsx"},
		rel(t, root, files))
}

func TestExpand(t *testing.T) {
	root := tree(t, "src/a.ts", "src/b.ts", "notes.txt")

	files, err := Expand([]string{
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "a.ts"),
		filepath.Join(root, "notes.txt"),
	}, SourceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt", "src/a.ts", "src/b.ts"}, rel(t, root, files),
		"explicit files are kept even when they are not sources")

	_, err = Expand([]string{filepath.Join(root, "missing")}, SourceOptions{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		path              string
		source, decl, tst bool
	}{
		{"a.ts", true, false, false},
		{"a.tsx", true, false, false},
		{"a.cts", true, false, false},
		{"a.d.ts", true, true, false},
		{"a.d.mts", true, true, false},
		{"a.test.ts", true, false, true},
		{"a.spec.tsx", true, false, true},
		{"a.js", false, false, false},
		{"contest.ts", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.source, IsSource(tt.path))
			assert.Equal(t, tt.decl, IsDeclaration(tt.path))
			assert.Equal(t, tt.tst, IsTest(tt.path))
		})
	}
}
