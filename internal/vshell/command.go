// SPDX-License-Identifier: MPL-2.0

package vshell

import "context"

type (
	// Command is a built-in utility that can replace a host binary inside a
	// virtual shell script.
	Command interface {
		// Name returns the command name (e.g., "tail").
		Name() string

		// Run executes the command. The context carries the HandlerContext
		// with stdin/stdout/stderr. args[0] is the command name and args[1:]
		// are its arguments. Errors are prefixed with "[vtail] <cmd>:".
		Run(ctx context.Context, args []string) error

		// SupportedFlags returns the flags this implementation accepts.
		SupportedFlags() []FlagInfo
	}

	// FlagInfo describes a supported flag of a built-in command.
	FlagInfo struct {
		// Name is the long flag name without dashes (e.g., "lines").
		Name string
		// ShortName is the single-character alias (e.g., "n"), empty if none.
		ShortName string
		// Description explains what the flag does.
		Description string
		// TakesValue indicates if the flag requires a value (e.g., -n 10).
		TakesValue bool
	}
)
