package paths

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/arthur-debert/brokensym/pkg/errors"
)

// DefaultSearchDir returns the invoking user's home directory
func DefaultSearchDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrPathResolve, "failed to get home directory")
	}
	if home == "" {
		return "", errors.New(errors.ErrPathResolve, "home directory is not set")
	}
	return home, nil
}

// Resolve turns the search_dir argument into the path handed to the
// traverser. An empty argument selects the home directory. "~" and "~/..."
// are expanded; "~name" is an ordinary relative path. Relative paths are made absolute with every symlink resolved;
// absolute paths are returned unchanged.
func Resolve(arg string) (string, error) {
	var (
		p   string
		err error
	)
	switch {
	case arg == "":
		p, err = DefaultSearchDir()
	case arg == "~" || strings.HasPrefix(arg, "~/"):
		p, err = homedir.Expand(arg)
		if err != nil {
			err = errors.Wrapf(err, errors.ErrPathResolve, "cannot expand %s", arg)
		}
	default:
		p = arg
	}
	if err != nil {
		return "", err
	}

	if filepath.IsAbs(p) {
		return p, nil
	}
	return Canonicalize(p)
}

// Canonicalize returns the absolute path of p with all symlinks resolved.
// p must exist.
func Canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPathResolve, "cannot resolve %s", p).
			WithDetail("path", p)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPathResolve, "cannot resolve %s", p).
			WithDetail("path", p)
	}
	return resolved, nil
}
