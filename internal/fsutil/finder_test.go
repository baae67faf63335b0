package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.hcl", "nested/b.yaml", "nested/deep/c.yml", "ignore.txt")

	files, err := FindFilesByExtension(dir, PipelineExtensions...)
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, f := range files {
		assert.NotContains(t, f, "ignore.txt")
	}
}

func TestExpandTargets(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.hcl", "grids/b.yaml", "grids/sub/c.yml", "grids/readme.md")

	t.Run("directory", func(t *testing.T) {
		files, err := ExpandTargets([]string{dir})
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("file and glob dedupe", func(t *testing.T) {
		files, err := ExpandTargets([]string{
			filepath.Join(dir, "a.hcl"),
			filepath.Join(dir, "grids", "**", "*.yml"),
			filepath.Join(dir, "a.hcl"),
		})
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.True(t, files[0] < files[1], "expanded paths must be sorted")
	})

	t.Run("glob ignores non-pipeline extensions", func(t *testing.T) {
		files, err := ExpandTargets([]string{filepath.Join(dir, "grids", "*")})
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("missing target is an error", func(t *testing.T) {
		_, err := ExpandTargets([]string{filepath.Join(dir, "nope.hcl")})
		assert.ErrorContains(t, err, "matched no files")
	})
}
