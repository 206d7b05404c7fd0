package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/brokensym/pkg/errors"
	"github.com/arthur-debert/brokensym/pkg/testutil"
)

func setHome(t *testing.T, dir string) {
	t.Helper()
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv("HOME", dir)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestResolve_DefaultsToHome(t *testing.T) {
	tree := testutil.NewTree(t)
	setHome(t, tree.Root)

	got, err := Resolve("")

	require.NoError(t, err)
	assert.Equal(t, tree.Root, got)
}

func TestResolve_ExpandsTilde(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Dir("projects")
	setHome(t, tree.Root)

	got, err := Resolve("~/projects")

	require.NoError(t, err)
	assert.Equal(t, tree.Path("projects"), got)
}

func TestResolve_BareTilde(t *testing.T) {
	tree := testutil.NewTree(t)
	setHome(t, tree.Root)

	got, err := Resolve("~")

	require.NoError(t, err)
	assert.Equal(t, tree.Root, got)
}

func TestResolve_TildePrefixedNameIsRelative(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Dir("~x")
	chdir(t, tree.Root)

	got, err := Resolve("~x")

	require.NoError(t, err)
	assert.Equal(t, tree.Path("~x"), got)
}

func TestResolve_TildePrefixedMissingFails(t *testing.T) {
	tree := testutil.NewTree(t)
	chdir(t, tree.Root)

	_, err := Resolve("~someoneelse/dir")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolve))
	assert.Contains(t, err.Error(), "cannot resolve ~someoneelse/dir")
}

func TestResolve_AbsoluteUnchanged(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Dir("real").Symlink("alias", "real")

	got, err := Resolve(tree.Path("alias"))

	require.NoError(t, err)
	assert.Equal(t, tree.Path("alias"), got, "absolute paths are not canonicalised")
}

func TestResolve_RelativeIsCanonicalised(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Dir("real/inner").Symlink("alias", "real")
	chdir(t, tree.Root)

	got, err := Resolve("alias/inner/../inner")

	require.NoError(t, err)
	assert.Equal(t, tree.Path("real/inner"), got)
	assert.True(t, filepath.IsAbs(got))
}

func TestResolve_RelativeMissingFails(t *testing.T) {
	tree := testutil.NewTree(t)
	chdir(t, tree.Root)

	_, err := Resolve("does-not-exist")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolve))
	assert.Contains(t, err.Error(), "does-not-exist")
}
