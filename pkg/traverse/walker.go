package traverse

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"

	bserrors "github.com/arthur-debert/brokensym/pkg/errors"
	"github.com/arthur-debert/brokensym/pkg/types"
)

// readBatch is the number of entries requested from a directory at a time
const readBatch = 256

// Stats counts what a walk has seen
type Stats struct {
	Directories int
	Entries     int
	Symlinks    int
	Broken      int
	Diagnostics int
}

// Styler decorates diagnostic text before it is written
type Styler interface {
	Path(s string) string
	Message(s string) string
}

type plainStyler struct{}

func (plainStyler) Path(s string) string    { return s }
func (plainStyler) Message(s string) string { return s }

// Walker finds broken symlinks below a directory
type Walker struct {
	fs          types.FS
	results     io.Writer
	diagnostics io.Writer
	styler      Styler
	logger      zerolog.Logger
}

// Option configures a Walker
type Option func(*Walker)

// WithLogger sets the logger used for trace and debug output
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Walker) { w.logger = logger }
}

// WithStyler sets how diagnostics are decorated
func WithStyler(s Styler) Option {
	return func(w *Walker) {
		if s != nil {
			w.styler = s
		}
	}
}

// NewWalker creates a Walker reading through fsys. Broken link paths go to
// results, everything else to diagnostics.
func NewWalker(fsys types.FS, results, diagnostics io.Writer, opts ...Option) *Walker {
	w := &Walker{
		fs:          fsys,
		results:     results,
		diagnostics: diagnostics,
		styler:      plainStyler{},
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk visits every directory below root, depth first. root must be an
// existing directory; callers validate it before walking.
//
// The returned error is non-nil only when the walk could not finish: a
// directory could not be opened or read (ErrDirAccess, already reported on
// the diagnostics writer), the results writer failed (ErrOutput), or ctx was
// canceled (ErrCanceled).
func (w *Walker) Walk(ctx context.Context, root string) (Stats, error) {
	var stats Stats

	stack := []string{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return stats, bserrors.Wrap(err, bserrors.ErrCanceled, "traversal canceled")
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		subdirs, err := w.scanDir(dir, &stats)
		if err != nil {
			return stats, err
		}

		// Push in reverse so subdirectories are visited in listing order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	w.logger.Debug().
		Str("root", root).
		Int("directories", stats.Directories).
		Int("symlinks", stats.Symlinks).
		Int("broken", stats.Broken).
		Msg("Traversal finished")

	return stats, nil
}

// scanDir handles every entry of dir and returns its subdirectories.
func (w *Walker) scanDir(dir string, stats *Stats) (subdirs []string, err error) {
	d, err := w.fs.OpenDir(dir)
	if err != nil {
		return nil, w.dirFailure(dir, err, stats)
	}
	defer func() {
		if cerr := d.Close(); cerr != nil {
			w.logger.Warn().Err(cerr).Str("dir", dir).Msg("Failed to close directory")
		}
	}()

	stats.Directories++
	w.logger.Trace().Str("dir", dir).Msg("Scanning directory")

	for {
		entries, rerr := d.ReadEntries(readBatch)
		for _, entry := range entries {
			if entry.IsDotEntry() {
				continue
			}
			stats.Entries++

			switch entry.Type {
			case types.EntryRegular, types.EntryBlockDevice, types.EntryCharDevice,
				types.EntryNamedPipe, types.EntrySocket:
				// Nothing to check.
			case types.EntryDirectory:
				subdirs = append(subdirs, childPath(dir, entry.Name))
			case types.EntrySymlink:
				if err := w.checkLink(childPath(dir, entry.Name), stats); err != nil {
					return nil, err
				}
			default:
				w.unknownType(dir, entry.Name, stats)
			}
		}

		if errors.Is(rerr, io.EOF) {
			return subdirs, nil
		}
		if rerr != nil {
			return nil, w.dirFailure(dir, rerr, stats)
		}
	}
}

// checkLink stats the target of the link at path. Only a missing target
// makes the link broken; any other failure is a diagnostic.
func (w *Walker) checkLink(path string, stats *Stats) error {
	stats.Symlinks++

	_, err := w.fs.Stat(path)
	switch {
	case err == nil:
		w.logger.Trace().Str("link", path).Msg("Symlink target exists")
		return nil
	case errors.Is(err, fs.ErrNotExist):
		stats.Broken++
		w.logger.Debug().Str("link", path).Msg("Broken symlink")
		return w.writeResult(path)
	default:
		w.diagnose(path, err, stats)
		return nil
	}
}

// childPath joins a directory and an entry name with a single slash.
func childPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
