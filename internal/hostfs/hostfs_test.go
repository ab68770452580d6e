package hostfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ReadsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "Info.plist")
	require.NoError(t, os.WriteFile(name, []byte("hello"), 0o600))

	fs := New()
	data, err := util.ReadFile(fs, name)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Info.plist", entries[0].Name())
	assert.Equal(t, "/", fs.Root())
}

func TestChroot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o600))

	sub, err := New().Chroot(dir)
	require.NoError(t, err)
	_, err = sub.Stat("a.txt")
	assert.NoError(t, err)
}
