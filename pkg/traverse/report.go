package traverse

import (
	"fmt"

	bserrors "github.com/arthur-debert/brokensym/pkg/errors"
)

func (w *Walker) writeResult(path string) error {
	if _, err := fmt.Fprintln(w.results, path); err != nil {
		return bserrors.Wrap(err, bserrors.ErrOutput, "failed to write result").
			WithDetail("path", path)
	}
	return nil
}

// diagnose writes "<path>: <description>" to the diagnostics writer.
func (w *Walker) diagnose(path string, err error, stats *Stats) {
	stats.Diagnostics++
	w.logger.Debug().Err(err).Str("path", path).Msg("Diagnostic")
	_, _ = fmt.Fprintf(w.diagnostics, "%s: %s\n",
		w.styler.Path(path), w.styler.Message(bserrors.Describe(err)))
}

func (w *Walker) unknownType(dir, name string, stats *Stats) {
	stats.Diagnostics++
	w.logger.Debug().Str("dir", dir).Str("name", name).Msg("Unknown entry type")
	_, _ = fmt.Fprintf(w.diagnostics, "%s\n%s\n\n",
		w.styler.Message("Unknown type:"), w.styler.Path(childPath(dir, name)))
}

// dirFailure reports a directory that could not be listed and returns the
// error that ends the walk.
func (w *Walker) dirFailure(dir string, err error, stats *Stats) error {
	w.diagnose(dir, err, stats)
	return bserrors.Wrapf(err, bserrors.ErrDirAccess, "cannot read directory %s", dir).
		WithDetail("path", dir)
}
