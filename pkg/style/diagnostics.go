package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Diagnostics styles the text of diagnostic lines. It satisfies
// traverse.Styler.
type Diagnostics struct {
	enabled bool
	path    lipgloss.Style
	message lipgloss.Style
}

// NewDiagnostics returns a styler for diagnostics written to out, coloured
// according to mode (auto, always, never).
func NewDiagnostics(out io.Writer, mode string) *Diagnostics {
	enabled := ShouldColor(mode, out)

	r := lipgloss.NewRenderer(out)
	if enabled && mode == ModeAlways {
		// The renderer would otherwise detect "no colour" on a pipe.
		r.SetColorProfile(termenv.ANSI256)
	}

	return &Diagnostics{
		enabled: enabled,
		path:    r.NewStyle().Foreground(PathColor).Bold(true),
		message: r.NewStyle().Foreground(ErrorColor),
	}
}

// Enabled reports whether styling is applied
func (d *Diagnostics) Enabled() bool {
	return d.enabled
}

// Path styles a filesystem path
func (d *Diagnostics) Path(s string) string {
	if !d.enabled {
		return s
	}
	return d.path.Render(s)
}

// Message styles an error description
func (d *Diagnostics) Message(s string) string {
	if !d.enabled {
		return s
	}
	return d.message.Render(s)
}
