package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/brokensym/pkg/types"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) OpenDir(name string) (types.DirReader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &osDir{f: f}, nil
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// osDir streams entries from an open directory handle. The type of each entry
// comes from the listing itself (d_type on Linux); os falls back to lstat
// when the filesystem does not report one.
type osDir struct {
	f *os.File
}

func (d *osDir) ReadEntries(n int) ([]types.DirEntry, error) {
	entries, err := d.f.ReadDir(n)
	out := make([]types.DirEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, types.DirEntry{
			Name: e.Name(),
			Type: types.EntryTypeFromMode(e.Type()),
		})
	}
	return out, err
}

func (d *osDir) Close() error {
	return d.f.Close()
}
