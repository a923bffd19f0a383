// SPDX-License-Identifier: MPL-2.0

package vshell

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/interp"
)

type (
	// HandlerContext is the execution environment of a built-in command.
	HandlerContext struct {
		// Stdin is the input stream for the command.
		Stdin io.Reader
		// Stdout is the output stream for the command.
		Stdout io.Writer
		// Stderr is the error output stream for the command.
		Stderr io.Writer
		// Dir is the shell's current working directory.
		Dir string
		// Fs is the filesystem file arguments are opened from.
		// Nil means the OS filesystem.
		Fs afero.Fs
	}

	handlerContextKey struct{}
)

// ExtractHandlerContext builds a HandlerContext from mvdan/sh's handler context.
func ExtractHandlerContext(ctx context.Context) *HandlerContext {
	hc := interp.HandlerCtx(ctx)
	return &HandlerContext{
		Stdin:  hc.Stdin,
		Stdout: hc.Stdout,
		Stderr: hc.Stderr,
		Dir:    hc.Dir,
	}
}

// WithHandlerContext stores a HandlerContext in the context.
func WithHandlerContext(ctx context.Context, hc *HandlerContext) context.Context {
	return context.WithValue(ctx, handlerContextKey{}, hc)
}

// GetHandlerContext returns the HandlerContext stored with WithHandlerContext,
// or extracts one from mvdan/sh's handler context.
func GetHandlerContext(ctx context.Context) *HandlerContext {
	if hc, ok := ctx.Value(handlerContextKey{}).(*HandlerContext); ok {
		return hc
	}
	return ExtractHandlerContext(ctx)
}
