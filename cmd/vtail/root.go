// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for vtail.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/vtail/internal/config"
	"github.com/invowk/vtail/internal/issue"
	"github.com/invowk/vtail/internal/tailcmd"
	"github.com/invowk/vtail/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree around app. The root command itself
// is tail; config, sh and issue are subcommands.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vtail [flags] [FILE]...",
		Short: "Print the last part of files",
		Long: TitleStyle.Render("vtail") + SubtitleStyle.Render(" - print the last part of files") + `

Print the last 10 lines of each FILE to standard output. With more than one
FILE, precede each with a header giving the file name. With no FILE, or when
FILE is -, read standard input.

` + SubtitleStyle.Render("Counts:") + `
  -n 5, -n -5     the last 5 lines
  -n +5           from line 5 to the end
  -n +0           everything
  -c 100          the last 100 bytes

` + SubtitleStyle.Render("Examples:") + `
  vtail app.log                 Last 10 lines of app.log
  vtail -n +2 data.csv          Skip the CSV header row
  vtail -q -n 1 *.log           Last line of every log, no headers
  cat notes.txt | vtail -c 64   Last 64 bytes of standard input`,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: app.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTail(cmd, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&app.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/vtail/config.cue)")
	pf.BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging and full error chains")
	pf.StringVar(&app.logLevel, "log-level", "", "minimum log level: debug, info, warn, error")

	f := rootCmd.Flags()
	f.StringP("lines", "n", "10", "output the last `COUNT` lines, or use +COUNT to start at line COUNT")
	f.StringP("bytes", "c", "", "output the last `COUNT` bytes, or use +COUNT to start at byte COUNT")
	f.BoolP("quiet", "q", false, "never print headers giving file names")
	f.Bool("lossy", false, "replace invalid UTF-8 in the output with U+FFFD")
	rootCmd.MarkFlagsMutuallyExclusive("lines", "bytes")

	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newShCommand(app))
	rootCmd.AddCommand(newIssueCommand(app))

	rootCmd.SetIn(app.Stdin)
	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with the process streams and exits with its status.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// setup loads configuration and builds the logger before any command runs.
// A broken config file is reported as a warning and the defaults apply.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := a.Config.Load(cmd.Context(), a.loadOptions())
	if err != nil {
		a.cfgErr = err
		fmt.Fprintln(a.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
	} else {
		a.cfg = cfg
	}

	level, err := a.resolveLogLevel()
	if err != nil {
		return err
	}
	a.logger = log.NewWithOptions(a.Stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	a.logger.Debug("configuration loaded", "file", a.cfgFile, "verbose", a.verbose, "level", level)
	return nil
}

// resolveLogLevel applies --verbose, then --log-level, then the config file.
func (a *App) resolveLogLevel() (log.Level, error) {
	cfg := a.settings()
	if a.verbose || cfg.UI.Verbose {
		return log.DebugLevel, nil
	}

	name := cfg.UI.LogLevel
	if a.logLevel != "" {
		name = config.LogLevel(a.logLevel)
	}
	if valid, errs := name.IsValid(); !valid {
		return log.WarnLevel, errs[0]
	}
	return log.ParseLevel(name.String())
}

// runTail is the root command: tail FILEs with flag values layered over the
// configuration.
func (a *App) runTail(cmd *cobra.Command, files []string) error {
	cfg := a.settings()
	flags := cmd.Flags()

	lines := cfg.Lines.String()
	if flags.Changed("lines") {
		lines, _ = flags.GetString("lines")
	}
	bytes, _ := flags.GetString("bytes")

	mode, count, err := tailcmd.ResolveCount(lines, flags.Changed("lines"), bytes, flags.Changed("bytes"))
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	opts := tailcmd.Options{
		Mode:          mode,
		Count:         count,
		Quiet:         boolFlagOr(cmd, "quiet", cfg.Quiet),
		Lossy:         boolFlagOr(cmd, "lossy", cfg.Lossy),
		IndexInterval: int64(cfg.LineIndexInterval),
	}

	runner := &tailcmd.Runner{
		Fs:     a.Fs,
		Stdin:  a.Stdin,
		Stdout: a.Stdout,
		Stderr: a.Stderr,
		Logger: a.log(),
	}
	err = runner.Run(cmd.Context(), opts, files)

	var countErr *tailcmd.IllegalCountError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &countErr):
		// Plain text, like the per-file warnings, so scripts can match it.
		fmt.Fprintf(a.Stderr, "%s: %v\n", config.AppName, countErr)
		a.log().Debug("rejected count", "count", countErr.Text, "err", countErr.Err)
		return &ExitError{Code: types.ExitFailure}
	default:
		return &ExitError{Code: types.ExitFailure, Err: err}
	}
}

// boolFlagOr returns the flag value when it was set on the command line and
// fallback otherwise.
func boolFlagOr(cmd *cobra.Command, name string, fallback bool) bool {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fallback
	}
	return v
}

// handleError prints errors returned by command handlers. ExitErrors without
// a cause were already reported and stay silent.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(a.verbose))
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors include their suggestions, and in verbose mode the full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
