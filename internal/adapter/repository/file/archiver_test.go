package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiver_Archive(t *testing.T) {
	inputDir := t.TempDir()
	archiveDir := t.TempDir()

	src := filepath.Join(inputDir, "batch.txt")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(archiveDir, "batch.txt"), []byte("old"), 0o644))

	a := NewArchiver(archiveDir, fastRetrier(1))
	require.NoError(t, a.Archive(context.Background(), src))

	_, err := os.Stat(src)
	assert.ErrorIs(t, err, os.ErrNotExist)

	data, err := os.ReadFile(filepath.Join(archiveDir, "batch.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestArchiver_MissingSource(t *testing.T) {
	a := NewArchiver(t.TempDir(), fastRetrier(1))

	err := a.Archive(context.Background(), filepath.Join(t.TempDir(), "gone.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("from: 11111-11111\n"), 0o600))

	require.NoError(t, copyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "from: 11111-11111\n", string(data))
}
