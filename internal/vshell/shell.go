// SPDX-License-Identifier: MPL-2.0

package vshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/invowk/vtail/pkg/types"

	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Shell interprets scripts with built-in commands taking precedence over
// binaries on PATH.
type Shell struct {
	// Registry resolves built-in commands. Nil means DefaultRegistry.
	Registry *Registry
	// Dir is the initial working directory. Empty means the process's.
	Dir string
	// Env is the initial environment in KEY=VALUE form. Nil means os.Environ().
	Env []string
	// Fs is handed to built-ins for opening files. Nil means the OS filesystem.
	Fs afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run parses and executes script. name is used in parse error positions and
// args become the positional parameters.
//
// A script that runs to completion returns its exit status and a nil error,
// even when the status is non-zero. Errors are returned only for scripts that
// fail to parse or for interpreter failures.
func (s *Shell) Run(ctx context.Context, script, name string, args []string) (types.ExitCode, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return types.ExitUsage, fmt.Errorf("failed to parse script: %w", err)
	}

	env := s.Env
	if env == nil {
		env = os.Environ()
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(s.Stdin, s.Stdout, s.Stderr),
		interp.ExecHandlers(s.execHandler),
		interp.Params(append([]string{"--"}, args...)...),
	}
	if s.Dir != "" {
		opts = append(opts, interp.Dir(s.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return types.ExitFailure, fmt.Errorf("failed to create interpreter: %w", err)
	}

	err = runner.Run(ctx, file)
	if err == nil {
		return types.ExitSuccess, nil
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return types.ExitCode(status), nil
	}
	return types.ExitFailure, err
}

// execHandler is the interp middleware that routes registered names to
// built-ins and everything else to the next handler.
func (s *Shell) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) == 0 {
			return next(ctx, args)
		}
		reg := s.registry()
		if _, ok := reg.Lookup(args[0]); !ok {
			return next(ctx, args)
		}

		hc := ExtractHandlerContext(ctx)
		hc.Fs = s.Fs
		err := reg.Run(WithHandlerContext(ctx, hc), args[0], args)
		if err == nil {
			return nil
		}
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return err
		}
		// A built-in failure is a command failure, not an interpreter fault.
		fmt.Fprintln(hc.Stderr, err)
		return interp.NewExitStatus(1)
	}
}

func (s *Shell) registry() *Registry {
	if s.Registry == nil {
		return DefaultRegistry
	}
	return s.Registry
}
