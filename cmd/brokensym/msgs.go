package brokensym

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "Find broken symbolic links below a directory"
	MsgRootUse   = "brokensym [search_dir]"

	MsgRootExample = `  # Search your home directory
  brokensym

  # Search a project, then remove what was found
  brokensym ./src | xargs -r rm --`

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Read configuration from this file instead of the user config directory"
	MsgFlagNoColor     = "Never colour diagnostics"
	MsgFlagPrintConfig = "Print the effective configuration (toml or yaml) and exit"

	// Error messages
	MsgErrUsage       = "invalid usage"
	MsgErrTooManyArgs = "expected at most one search_dir, got %d"
	MsgErrFormat      = "Error: %s\n"

	MsgErrPrintConfigArgs = "--print-config does not take a search_dir (got %q); use --print-config=FORMAT"

	// Log messages
	MsgLogSearchStarted  = "Searching for broken symlinks"
	MsgLogSearchComplete = "Search complete"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)
)
