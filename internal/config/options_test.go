package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExt(t *testing.T) {
	cases := map[string]string{
		"":      ".npy",
		".":     ".npy",
		"npy":   ".npy",
		".npy":  ".npy",
		" dat ": ".dat",
		".npz":  ".npz",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeExt(in), "input %q", in)
	}
}

func TestNormalizeRoot(t *testing.T) {
	t.Run("empty_uses_cwd", func(t *testing.T) {
		o := Default()
		require.NoError(t, o.Normalize())
		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, cwd, o.Root)
	})

	t.Run("directory", func(t *testing.T) {
		dir := t.TempDir()
		o := Default()
		o.Root = dir
		o.Ext = "bin"
		require.NoError(t, o.Normalize())
		assert.Equal(t, dir, o.Root)
		assert.Equal(t, ".bin", o.Ext)
	})

	t.Run("missing", func(t *testing.T) {
		o := Default()
		o.Root = filepath.Join(t.TempDir(), "nope")
		assert.Error(t, o.Normalize())
	})

	t.Run("file_is_not_a_folder", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "a.npy")
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		o := Default()
		o.Root = p
		err := o.Normalize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "tree", ModeTree.String())
	assert.Equal(t, "flat", ModeFlat.String())
}
