package testutil

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tree builds a real directory tree rooted in a temporary directory. All
// relative paths passed to its methods are relative to Root.
type Tree struct {
	t    *testing.T
	Root string
}

// NewTree creates an empty tree. The root is canonicalised so that paths
// reported by the traverser can be compared verbatim on systems where the
// temp dir itself sits behind a symlink.
func NewTree(t *testing.T) *Tree {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return &Tree{t: t, Root: root}
}

// Path returns the absolute path for rel.
func (tr *Tree) Path(rel string) string {
	return filepath.Join(tr.Root, rel)
}

// Dir creates a directory (and parents).
func (tr *Tree) Dir(rel string) *Tree {
	tr.t.Helper()
	require.NoError(tr.t, os.MkdirAll(tr.Path(rel), 0755))
	return tr
}

// File creates a regular file with some content.
func (tr *Tree) File(rel string) *Tree {
	tr.t.Helper()
	tr.Dir(filepath.Dir(rel))
	require.NoError(tr.t, os.WriteFile(tr.Path(rel), []byte(rel+"\n"), 0644))
	return tr
}

// Symlink creates a symlink at rel pointing at target, which is used
// verbatim (absolute or relative to the link's directory).
func (tr *Tree) Symlink(rel, target string) *Tree {
	tr.t.Helper()
	tr.Dir(filepath.Dir(rel))
	require.NoError(tr.t, os.Symlink(target, tr.Path(rel)))
	return tr
}

// Fifo creates a named pipe.
func (tr *Tree) Fifo(rel string) *Tree {
	tr.t.Helper()
	tr.Dir(filepath.Dir(rel))
	require.NoError(tr.t, syscall.Mkfifo(tr.Path(rel), 0600))
	return tr
}

// Chmod changes the permissions of rel and restores 0755 on cleanup so that
// t.TempDir() can remove it.
func (tr *Tree) Chmod(rel string, mode os.FileMode) *Tree {
	tr.t.Helper()
	p := tr.Path(rel)
	require.NoError(tr.t, os.Chmod(p, mode))
	tr.t.Cleanup(func() { _ = os.Chmod(p, 0755) })
	return tr
}

// SkipIfRoot skips tests that rely on permission checks, which root bypasses.
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed when running as root")
	}
}
