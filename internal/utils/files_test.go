package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFileExists(t *testing.T) {
	dir := t.TempDir()

	exists, err := CheckFileExists(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.False(t, exists)

	file := filepath.Join(dir, "yes")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	exists, err = CheckFileExists(file)
	require.NoError(t, err)
	assert.True(t, exists)

	// a directory is not a file
	_, err = CheckFileExists(dir)
	assert.Error(t, err)
}

func TestCopyFileToDst(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0644))

	require.NoError(t, CopyFileToDst(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	srcInfo, _ := os.Stat(src)
	dstInfo, _ := os.Stat(dst)
	assert.Equal(t, srcInfo.ModTime(), dstInfo.ModTime())
}

func TestExpandPath(t *testing.T) {
	dir := t.TempDir()

	// symlinks are resolved, so the target has to exist
	got, err := ExpandPath(dir, "Bookmarks")
	require.Error(t, err)
	assert.Empty(t, got)

	file := filepath.Join(dir, "Bookmarks")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	got, err = ExpandPath(dir, "Bookmarks")
	require.NoError(t, err)
	assert.Contains(t, got, "Bookmarks")

	// an empty path must come back as an error, not a panic
	_, err = ExpandPath("")
	assert.Error(t, err)
}

func TestExpandUser(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandUser("~/Library/Safari/Bookmarks.plist")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Library/Safari/Bookmarks.plist"), got)

	// no tilde, path comes back untouched
	got, err = ExpandUser("/tmp/x")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", got)
}
