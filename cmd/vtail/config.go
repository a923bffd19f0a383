// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/vtail/internal/config"
	"github.com/invowk/vtail/internal/issue"
	"github.com/invowk/vtail/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `vtail config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vtail configuration",
		Long: `Manage vtail configuration.

Configuration is stored in:
  - Linux: $XDG_CONFIG_HOME/vtail/config.cue (~/.config/vtail/config.cue)
  - macOS: ~/Library/Application Support/vtail/config.cue
  - Windows: %APPDATA%\vtail\config.cue

VTAIL_* environment variables override file values (VTAIL_LINES,
VTAIL_QUIET, VTAIL_UI_LOG_LEVEL, ...) and flags override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", "cue", "output format: cue or toml")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.initConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfigPath()
		},
	})

	return cfgCmd
}

func (a *App) showConfig(format string) error {
	if a.cfgErr != nil {
		// setup already printed the error itself.
		if rendered, err := issue.Get(issue.ConfigLoadFailedId).Render(a.glamourStyle()); err == nil {
			fmt.Fprint(a.Stderr, rendered)
		}
		return &ExitError{Code: types.ExitFailure}
	}

	cfg := a.settings()
	switch format {
	case "cue":
		fmt.Fprint(a.Stdout, config.GenerateCUE(cfg))
	case "toml":
		out, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(a.Stdout, out)
	default:
		return fmt.Errorf("unsupported format %q (valid: cue, toml)", format)
	}
	return nil
}

func (a *App) initConfig() error {
	path, created, err := config.CreateDefaultConfig(config.LoadOptions{ConfigDirPath: a.ConfigDir})
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if created {
		fmt.Fprintf(a.Stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	} else {
		fmt.Fprintf(a.Stdout, "%s Configuration already exists at %s\n", SubtitleStyle.Render("•"), path)
	}
	a.log().Debug("config init", "path", path, "created", created)
	return nil
}

func (a *App) showConfigPath() error {
	path, exists, err := config.ResolvePath(a.loadOptions())
	if err != nil {
		return err
	}

	fmt.Fprintln(a.Stdout, path)
	if !exists {
		fmt.Fprintln(a.Stderr, SubtitleStyle.Render("(not created yet, run 'vtail config init')"))
	}
	return nil
}

// glamourStyle maps ui.color_scheme to a glamour standard style.
func (a *App) glamourStyle() string {
	switch a.settings().UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}
