package paths

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/brokensym/pkg/errors"
	"github.com/arthur-debert/brokensym/pkg/types"
)

// ValidateSearchDir checks that path exists and is a directory. Symlinks are
// followed, so a link to a directory is accepted as the starting point.
func ValidateSearchDir(fsys types.FS, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		// Whatever stopped the stat (missing, permission, loop), the
		// directory is unusable as a starting point.
		missing := stderrors.Is(err, fs.ErrNotExist)
		return errors.Wrap(err, errors.ErrNotFound, path).
			WithDetail("path", path).
			WithDetail("missing", missing).
			WithDetail("dangling", missing && isSymlink(fsys, path))
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrNotDirectory, "Not a directory: %s", path).
			WithDetail("path", path)
	}
	return nil
}

// isSymlink reports whether path itself is a symlink, without following it.
func isSymlink(fsys types.FS, path string) bool {
	info, err := fsys.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}
