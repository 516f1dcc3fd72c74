package storage

import (
	"os"
	"path/filepath"
	"testing"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestResolveFiles_LiteralPaths(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.txt"), "a")
	writeTestFile(t, filepath.Join(dir, "b.txt.vlm"), "b")

	plain, err := ResolveFiles([]string{"a.txt", "a.txt"}, dir, KindPlain)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, plain)

	sealed, err := ResolveFiles([]string{"b.txt.vlm"}, dir, KindSealed)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.txt.vlm")}, sealed)
}

func TestResolveFiles_WrongKind(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.txt"), "a")
	writeTestFile(t, filepath.Join(dir, "b.txt.vlm"), "b")

	_, err := ResolveFiles([]string{"a.txt"}, dir, KindSealed)
	assert.Error(t, err)

	_, err = ResolveFiles([]string{"b.txt.vlm"}, dir, KindPlain)
	assert.Error(t, err)
}

func TestResolveFiles_Missing(t *testing.T) {
	_, err := ResolveFiles([]string{"nope.txt"}, t.TempDir(), KindPlain)
	assert.ErrorIs(t, err, verrors.ErrRead)
}

func TestResolveFiles_NoPatterns(t *testing.T) {
	_, err := ResolveFiles(nil, t.TempDir(), KindPlain)
	assert.ErrorIs(t, err, verrors.ErrNoFilesFound)
}

func TestResolveFiles_DoubleStarGlob(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "top.md"), "1")
	writeTestFile(t, filepath.Join(dir, "nested", "deep", "inner.md"), "2")
	writeTestFile(t, filepath.Join(dir, "nested", "skip.txt"), "3")
	writeTestFile(t, filepath.Join(dir, "nested", "sealed.md.vlm"), "4")
	writeTestFile(t, filepath.Join(dir, "nested", ".hidden.md"), "5")

	files, err := ResolveFiles([]string{"**/*.md"}, dir, KindPlain)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "top.md"),
		filepath.Join(dir, "nested", "deep", "inner.md"),
	}, files)

	sealed, err := ResolveFiles([]string{"**/*.vlm"}, dir, KindSealed)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "nested", "sealed.md.vlm")}, sealed)
}

func TestResolveFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "docs", "a.txt"), "a")
	writeTestFile(t, filepath.Join(dir, "docs", "b.txt.vlm"), "b")
	writeTestFile(t, filepath.Join(dir, "docs", ".git", "config"), "c")

	files, err := ResolveFiles([]string{"docs"}, dir, KindPlain)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "docs", "a.txt")}, files)
}

func TestSealedAndPlainPaths(t *testing.T) {
	assert.Equal(t, "notes.txt.vlm", SealedPath("notes.txt"))
	assert.Equal(t, "notes.txt", PlainPath("notes.txt.vlm"))
	assert.True(t, IsSealed("/a/b/notes.txt.vlm"))
	assert.False(t, IsSealed("/a/b.vlm/notes.txt"))
}
