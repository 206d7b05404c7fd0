package testutil

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"sync"
	"syscall"
	"time"

	"github.com/arthur-debert/brokensym/pkg/types"
)

// maxLinkHops mirrors the kernel's limit before returning ELOOP.
const maxLinkHops = 40

// MemoryFS implements types.FS with in-memory storage. Paths are slash
// separated and always absolute. Directory listings are returned in insertion
// order.
type MemoryFS struct {
	mu    sync.Mutex
	nodes map[string]*memNode

	// Error injection
	statErrors map[string]error
	openErrors map[string]error
	readErrors map[string]error

	// Statistics
	opened int
	closed int
}

type memNode struct {
	typ      types.EntryType
	target   string
	children []childRef
	modTime  time.Time
}

type childRef struct {
	name string
	typ  types.EntryType
}

// NewMemoryFS creates a new in-memory filesystem holding only "/"
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		nodes: map[string]*memNode{
			"/": {typ: types.EntryDirectory, modTime: time.Now()},
		},
		statErrors: make(map[string]error),
		openErrors: make(map[string]error),
		readErrors: make(map[string]error),
	}
}

// AddDir creates a directory and any missing parents.
func (m *MemoryFS) AddDir(p string) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(path.Clean(p), &memNode{typ: types.EntryDirectory})
	return m
}

// AddFile creates a regular file and any missing parents.
func (m *MemoryFS) AddFile(p string) *MemoryFS {
	return m.AddEntry(p, types.EntryRegular)
}

// AddSymlink creates a symlink at p pointing at target. Relative targets are
// resolved against the directory containing the link.
func (m *MemoryFS) AddSymlink(p, target string) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(path.Clean(p), &memNode{typ: types.EntrySymlink, target: target})
	return m
}

// AddEntry creates a non-directory entry of the given type.
func (m *MemoryFS) AddEntry(p string, typ types.EntryType) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(path.Clean(p), &memNode{typ: typ})
	return m
}

// AddListingOnly makes name appear in the listing of dir without creating a
// node for it. Useful for "." and ".." which real listings may report.
func (m *MemoryFS) AddListingOnly(dir, name string, typ types.EntryType) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	parent := m.ensureDir(path.Clean(dir))
	parent.children = append(parent.children, childRef{name: name, typ: typ})
	return m
}

// InjectStatError makes Stat of p fail with err.
func (m *MemoryFS) InjectStatError(p string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statErrors[path.Clean(p)] = err
	return m
}

// InjectOpenError makes OpenDir of p fail with err.
func (m *MemoryFS) InjectOpenError(p string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openErrors[path.Clean(p)] = err
	return m
}

// InjectReadError makes listing p fail with err after the directory was opened.
func (m *MemoryFS) InjectReadError(p string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrors[path.Clean(p)] = err
	return m
}

// OpenHandles returns the number of directory readers not yet closed.
func (m *MemoryFS) OpenHandles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened - m.closed
}

// OpenCount returns the number of successful OpenDir calls.
func (m *MemoryFS) OpenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

func (m *MemoryFS) add(p string, n *memNode) {
	if _, exists := m.nodes[p]; exists {
		return
	}
	n.modTime = time.Now()
	parent := m.ensureDir(path.Dir(p))
	parent.children = append(parent.children, childRef{name: path.Base(p), typ: n.typ})
	m.nodes[p] = n
}

func (m *MemoryFS) ensureDir(p string) *memNode {
	if n, ok := m.nodes[p]; ok {
		return n
	}
	n := &memNode{typ: types.EntryDirectory}
	m.add(p, n)
	return n
}

// OpenDir implements types.FS
func (m *MemoryFS) OpenDir(name string) (types.DirReader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := path.Clean(name)
	if err, ok := m.openErrors[p]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	n, ok := m.nodes[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if n.typ != types.EntryDirectory {
		return nil, &fs.PathError{Op: "open", Path: name, Err: syscall.ENOTDIR}
	}

	m.opened++
	entries := make([]types.DirEntry, 0, len(n.children))
	for _, c := range n.children {
		entries = append(entries, types.DirEntry{Name: c.name, Type: c.typ})
	}
	return &memDir{fs: m, path: name, entries: entries, readErr: m.readErrors[p]}, nil
}

// Stat implements types.FS; it follows symlinks.
func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := path.Clean(name)
	if err, ok := m.statErrors[p]; ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	for hops := 0; ; hops++ {
		n, ok := m.nodes[p]
		if !ok {
			return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
		}
		if n.typ != types.EntrySymlink {
			return &memInfo{name: path.Base(name), node: n}, nil
		}
		if hops >= maxLinkHops {
			return nil, &fs.PathError{Op: "stat", Path: name, Err: syscall.ELOOP}
		}
		target := n.target
		if !path.IsAbs(target) {
			target = path.Join(path.Dir(p), target)
		}
		p = path.Clean(target)
	}
}

// Lstat implements types.FS
func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[path.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}
	return &memInfo{name: path.Base(name), node: n}, nil
}

type memDir struct {
	fs      *MemoryFS
	path    string
	entries []types.DirEntry
	readErr error
	closed  bool
}

func (d *memDir) ReadEntries(n int) ([]types.DirEntry, error) {
	if d.closed {
		return nil, &fs.PathError{Op: "readdirent", Path: d.path, Err: fs.ErrClosed}
	}
	if d.readErr != nil {
		return nil, &fs.PathError{Op: "readdirent", Path: d.path, Err: d.readErr}
	}
	if len(d.entries) == 0 {
		return []types.DirEntry{}, io.EOF
	}
	if n <= 0 || n > len(d.entries) {
		n = len(d.entries)
	}
	batch := d.entries[:n]
	d.entries = d.entries[n:]
	return batch, nil
}

func (d *memDir) Close() error {
	if d.closed {
		return errors.New("directory already closed")
	}
	d.closed = true
	d.fs.mu.Lock()
	d.fs.closed++
	d.fs.mu.Unlock()
	return nil
}

type memInfo struct {
	name string
	node *memNode
}

func (i *memInfo) Name() string       { return i.name }
func (i *memInfo) Size() int64        { return 0 }
func (i *memInfo) ModTime() time.Time { return i.node.modTime }
func (i *memInfo) IsDir() bool        { return i.node.typ == types.EntryDirectory }
func (i *memInfo) Sys() interface{}   { return nil }

func (i *memInfo) Mode() fs.FileMode {
	switch i.node.typ {
	case types.EntryDirectory:
		return fs.ModeDir | 0755
	case types.EntrySymlink:
		return fs.ModeSymlink | 0777
	case types.EntryNamedPipe:
		return fs.ModeNamedPipe | 0644
	case types.EntrySocket:
		return fs.ModeSocket | 0755
	case types.EntryCharDevice:
		return fs.ModeDevice | fs.ModeCharDevice | 0666
	case types.EntryBlockDevice:
		return fs.ModeDevice | 0660
	case types.EntryUnknown:
		return fs.ModeIrregular
	default:
		return 0644
	}
}
