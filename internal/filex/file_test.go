package filex

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "downloads", "nested")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "d")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	p := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o660))

	_, err := EnsureDir(p)
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/.lms")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".lms"), got)

	got, err = ExpandHome("/abs/path")
	require.NoError(t, err)
	require.Equal(t, "/abs/path", got)
}

func TestSaveAs_WritesAndAvoidsClobbering(t *testing.T) {
	dir := t.TempDir()

	p1, err := SaveAs(dir, "notes.pdf", strings.NewReader("one"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "notes.pdf"), p1)

	p2, err := SaveAs(dir, "notes.pdf", strings.NewReader("two"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "notes (1).pdf"), p2)

	b, err := os.ReadFile(p2)
	require.NoError(t, err)
	require.Equal(t, "two", string(b))
}

func TestSaveAs_StripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	p, err := SaveAs(dir, "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "passwd"), p)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestSaveAs_FailedCopyLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := SaveAs(dir, "broken.bin", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
