// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/invowk/vtail/internal/issue"
	"github.com/invowk/vtail/internal/vshell"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// newShCommand creates `vtail sh`, a POSIX shell whose tail is built in.
func newShCommand(app *App) *cobra.Command {
	var (
		script       string
		listBuiltins bool
	)

	shCmd := &cobra.Command{
		Use:   "sh [-c SCRIPT | FILE] [ARG]...",
		Short: "Run a shell script with tail built in",
		Long: `Run a POSIX shell script with the mvdan/sh interpreter.

The tail command inside the script is vtail itself, so scripts behave the
same on every platform. Other commands are looked up on PATH. With neither
-c nor FILE, the script is read from standard input.`,
		Example: `  vtail sh -c 'printf "a\nb\nc\n" | tail -n 2'
  vtail sh rotate.sh app.log`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listBuiltins {
				return app.listBuiltins()
			}
			return app.runShell(cmd, script, cmd.Flags().Changed("command"), args)
		},
	}
	shCmd.Flags().StringVarP(&script, "command", "c", "", "read the script from `SCRIPT` instead of a file")
	shCmd.Flags().BoolVar(&listBuiltins, "builtins", false, "list built-in commands and their flags")
	// Everything after FILE belongs to the script.
	shCmd.Flags().SetInterspersed(false)

	return shCmd
}

func (a *App) runShell(cmd *cobra.Command, script string, inline bool, args []string) error {
	name := "-c"
	switch {
	case inline:
	case len(args) > 0:
		name = args[0]
		args = args[1:]
		data, err := afero.ReadFile(a.Fs, name)
		if err != nil {
			return issue.WrapWithContext(err, "read script", name)
		}
		script = string(data)
	default:
		name = "<stdin>"
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return issue.WrapWithContext(err, "read script", name)
		}
		script = string(data)
	}

	sh := &vshell.Shell{
		Fs:     a.Fs,
		Stdin:  a.Stdin,
		Stdout: a.Stdout,
		Stderr: a.Stderr,
	}
	code, err := sh.Run(cmd.Context(), script, name, args)
	a.log().Debug("script finished", "script", name, "args", len(args), "exit", code)
	if err != nil {
		scriptErr := issue.NewErrorContext().
			WithOperation("run script").
			WithResource(name).
			WithSuggestion(fmt.Sprintf("See 'vtail issue %d' for help with scripts", issue.ScriptFailedId)).
			Wrap(err).
			BuildError()
		return &ExitError{Code: code, Err: scriptErr}
	}
	if !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}

func (a *App) listBuiltins() error {
	for _, name := range vshell.DefaultRegistry.Names() {
		cmd, _ := vshell.DefaultRegistry.Lookup(name)
		fmt.Fprintln(a.Stdout, TitleStyle.Render(name))
		for _, f := range cmd.SupportedFlags() {
			fmt.Fprintf(a.Stdout, "  %-22s %s\n", CmdStyle.Render(flagUsage(f)), f.Description)
		}
	}
	return nil
}

func flagUsage(f vshell.FlagInfo) string {
	var sb strings.Builder
	if f.ShortName != "" {
		sb.WriteString("-" + f.ShortName + ", ")
	}
	sb.WriteString("--" + f.Name)
	if f.TakesValue {
		sb.WriteString(" N")
	}
	return sb.String()
}
