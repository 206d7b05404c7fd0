package types

import (
	"io/fs"
)

// FS defines the filesystem operations the traverser needs. The OS
// implementation lives in pkg/filesystem; tests may provide their own.
type FS interface {
	// OpenDir opens a directory for listing. The caller must Close the
	// returned reader.
	OpenDir(name string) (DirReader, error)

	// Stat follows symlinks.
	Stat(name string) (fs.FileInfo, error)

	// Lstat does not follow symlinks.
	Lstat(name string) (fs.FileInfo, error)
}

// DirReader streams the entries of an open directory.
type DirReader interface {
	// ReadEntries returns up to n entries in listing order. At the end of
	// the directory it returns an empty slice and io.EOF.
	ReadEntries(n int) ([]DirEntry, error)
	Close() error
}
