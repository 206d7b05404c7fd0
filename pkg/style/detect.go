package style

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color modes accepted by ShouldColor
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// ShouldColor decides whether output written to out gets ANSI styling.
// In auto mode that requires a terminal with colour support and no NO_COLOR.
func ShouldColor(mode string, out io.Writer) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}

	// Check if we're being piped or redirected
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}
