// SPDX-License-Identifier: MPL-2.0

package vshell

import (
	"context"
	"io"

	"github.com/invowk/vtail/internal/tailcmd"
	"github.com/invowk/vtail/pkg/tail"

	"github.com/spf13/pflag"
)

// tailCommand is the built-in tail.
type tailCommand struct {
	name          string
	indexInterval int64
	flags         []FlagInfo
}

func init() {
	RegisterDefault(newTailCommand())
}

func newTailCommand() *tailCommand {
	return &tailCommand{
		name:          "tail",
		indexInterval: tail.DefaultIndexInterval,
		flags: []FlagInfo{
			{Name: "lines", ShortName: "n", Description: "output the last N lines, or from line N with +N", TakesValue: true},
			{Name: "bytes", ShortName: "c", Description: "output the last N bytes, or from byte N with +N", TakesValue: true},
			{Name: "quiet", ShortName: "q", Description: "never print file name headers"},
			{Name: "lossy", Description: "replace invalid UTF-8 with U+FFFD"},
		},
	}
}

// Name returns the command name.
func (c *tailCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *tailCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

// Run executes tail against the shell's working directory and streams.
func (c *tailCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := pflag.NewFlagSet(c.name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(true)
	lines := fs.StringP("lines", "n", "10", "")
	bytes := fs.StringP("bytes", "c", "", "")
	quiet := fs.BoolP("quiet", "q", false, "")
	lossy := fs.Bool("lossy", false, "")

	if err := fs.Parse(args[1:]); err != nil {
		return wrapError(c.name, err)
	}

	mode, count, err := tailcmd.ResolveCount(*lines, fs.Changed("lines"), *bytes, fs.Changed("bytes"))
	if err != nil {
		return wrapError(c.name, err)
	}

	runner := &tailcmd.Runner{
		Fs:     hc.Fs,
		Dir:    hc.Dir,
		Stdin:  hc.Stdin,
		Stdout: hc.Stdout,
		Stderr: hc.Stderr,
	}
	opts := tailcmd.Options{
		Mode:          mode,
		Count:         count,
		Quiet:         *quiet,
		Lossy:         *lossy,
		IndexInterval: c.indexInterval,
	}
	return wrapError(c.name, runner.Run(ctx, opts, fs.Args()))
}
