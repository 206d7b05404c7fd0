package brokensym

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/brokensym/internal/version"
	"github.com/arthur-debert/brokensym/pkg/config"
	"github.com/arthur-debert/brokensym/pkg/errors"
	"github.com/arthur-debert/brokensym/pkg/filesystem"
	"github.com/arthur-debert/brokensym/pkg/logging"
	"github.com/arthur-debert/brokensym/pkg/paths"
	"github.com/arthur-debert/brokensym/pkg/style"
	"github.com/arthur-debert/brokensym/pkg/traverse"
)

// Streams are the two output channels: Out carries only broken link paths
// (and --print-config output), Err carries everything else.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// DefaultStreams returns stdout and stderr
func DefaultStreams() Streams {
	return Streams{Out: os.Stdout, Err: os.Stderr}
}

type options struct {
	verbosity   int
	configFile  string
	noColor     bool
	printConfig string
}

// NewRootCmd creates the root command writing to stdout and stderr
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithStreams(DefaultStreams())
}

// NewRootCmdWithStreams creates the root command writing to streams
func NewRootCmdWithStreams(streams Streams) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.String(),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.Newf(errors.ErrInvalidInput, MsgErrTooManyArgs, len(args))
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args, streams)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	addFlags(rootCmd.Flags(), opts)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrInvalidInput, MsgErrUsage)
	})

	// Help, usage and version all belong on the diagnostics stream.
	rootCmd.SetOut(streams.Err)
	rootCmd.SetErr(streams.Err)

	return rootCmd
}

func addFlags(flags *pflag.FlagSet, opts *options) {
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)
	flags.StringVar(&opts.printConfig, "print-config", "", MsgFlagPrintConfig)
	flags.Lookup("print-config").NoOptDefVal = "toml"
}

func run(cmd *cobra.Command, opts *options, args []string, streams Streams) error {
	if opts.printConfig != "" && len(args) > 0 {
		return errors.Newf(errors.ErrInvalidInput, MsgErrPrintConfigArgs, args[0])
	}

	overrides := map[string]interface{}{}
	if opts.noColor {
		overrides["output.color"] = config.ColorNever
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: opts.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}

	if opts.printConfig != "" {
		out, err := config.Encode(cfg, opts.printConfig)
		if err != nil {
			return err
		}
		_, err = streams.Out.Write(out)
		return err
	}

	logging.Setup(logging.Options{
		Verbosity:   cfg.Log.Verbosity + opts.verbosity,
		FileLogging: cfg.Log.File,
		Console:     streams.Err,
		NoColor:     !style.ShouldColor(cfg.Output.Color, streams.Err),
	})
	logging.LogCommand(cmd.Name(), args)

	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	root, err := paths.Resolve(arg)
	if err != nil {
		return err
	}

	fsys := filesystem.NewOS()
	if err := paths.ValidateSearchDir(fsys, root); err != nil {
		return err
	}

	logger := logging.GetLogger("traverse")
	logger.Info().Str("root", root).Msg(MsgLogSearchStarted)

	walker := traverse.NewWalker(fsys, streams.Out, streams.Err,
		traverse.WithLogger(logger),
		traverse.WithStyler(style.NewDiagnostics(streams.Err, cfg.Output.Color)),
	)

	done := logging.LogOperationStart(logger, "walk")
	stats, err := walker.Walk(cmd.Context(), root)
	done()
	if err != nil {
		return err
	}

	log.Info().
		Str("root", root).
		Int("directories", stats.Directories).
		Int("entries", stats.Entries).
		Int("symlinks", stats.Symlinks).
		Int("broken", stats.Broken).
		Int("diagnostics", stats.Diagnostics).
		Msg(MsgLogSearchComplete)
	return nil
}

// ReportError writes err to w the way the user should see it and returns
// the exit status. Usage problems and a bad search_dir are followed by the
// usage text.
func ReportError(cmd *cobra.Command, w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	log.Debug().
		Str("code", string(errors.GetErrorCode(err))).
		Fields(errors.GetErrorDetails(err)).
		Err(err).
		Msg("Command failed")

	switch errors.GetErrorCode(err) {
	case errors.ErrDirAccess:
		// Already written as a diagnostic by the walker.
	case errors.ErrInvalidInput, errors.ErrNotFound, errors.ErrNotDirectory:
		_, _ = fmt.Fprintln(w, userMessage(err))
		_, _ = fmt.Fprint(w, cmd.UsageString())
	default:
		_, _ = fmt.Fprintf(w, MsgErrFormat, userMessage(err))
	}

	return errors.ExitCode(err)
}

// userMessage drops the error code and the path prefix the os package adds,
// leaving "<message>: <os description>".
func userMessage(err error) string {
	var bsErr *errors.BrokensymError
	if !stderrors.As(err, &bsErr) {
		return err.Error()
	}
	if bsErr.Wrapped == nil {
		return bsErr.Message
	}
	return bsErr.Message + ": " + errors.Describe(bsErr.Wrapped)
}

// Execute runs the command line args and returns the process exit status
func Execute(ctx context.Context, args []string, streams Streams) int {
	// Errors from flag parsing and config loading are reported before run
	// configures logging from the config.
	logging.Setup(logging.Options{Console: streams.Err, NoColor: true})
	defer func() { _ = logging.Close() }()

	rootCmd := NewRootCmdWithStreams(streams)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	return ReportError(rootCmd, streams.Err, err)
}
