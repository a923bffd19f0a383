// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/invowk/vtail/internal/config"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// App wires the CLI to its streams, filesystem and configuration source.
	// Every cobra handler receives the App instead of reaching for os.* directly.
	App struct {
		Config config.Provider
		Fs     afero.Fs
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// ConfigDir overrides the platform config directory when set.
		ConfigDir string

		// Global flag values, bound by newRootCommand.
		cfgFile  string
		verbose  bool
		logLevel string

		cfg    *config.Config
		cfgErr error
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.Provider
		Fs        afero.Fs
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
		ConfigDir string
	}
)

// NewApp builds an App, filling unset dependencies with the OS defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		Fs:        deps.Fs,
		Stdin:     deps.Stdin,
		Stdout:    deps.Stdout,
		Stderr:    deps.Stderr,
		ConfigDir: deps.ConfigDir,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Fs == nil {
		app.Fs = afero.NewOsFs()
	}
	if app.Stdin == nil {
		app.Stdin = os.Stdin
	}
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	return app
}

// loadOptions returns the config loading inputs for the current invocation.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: a.cfgFile,
		ConfigDirPath:  a.ConfigDir,
	}
}

// settings returns the loaded configuration, or the defaults when loading failed.
func (a *App) settings() *config.Config {
	if a.cfg == nil {
		return config.DefaultConfig()
	}
	return a.cfg
}

// log returns the App logger, discarding records before setup.
func (a *App) log() *log.Logger {
	if a.logger == nil {
		return log.New(io.Discard)
	}
	return a.logger
}
