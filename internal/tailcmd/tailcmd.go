// SPDX-License-Identifier: MPL-2.0

// Package tailcmd runs the tail engine over a list of files the way the
// command line does: one count for every file, headers between files, and a
// warning (not an abort) for any file that cannot be read.
package tailcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/invowk/vtail/pkg/tail"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// StdinName is the file argument that stands for standard input.
const StdinName = "-"

var (
	// ErrIllegalCount is the sentinel error wrapped by IllegalCountError.
	ErrIllegalCount = errors.New("illegal count")
	// ErrConflictingCounts is returned when both a line and a byte count are given.
	ErrConflictingCounts = errors.New("line and byte counts are mutually exclusive")
)

type (
	// Options configures one invocation.
	Options struct {
		// Mode selects lines (-n) or bytes (-c).
		Mode tail.Mode
		// Count is the raw count argument, e.g. "10", "+3" or "-0".
		Count string
		// Quiet suppresses the per-file headers.
		Quiet bool
		// Lossy replaces invalid UTF-8 in the output with U+FFFD.
		Lossy bool
		// IndexInterval is the line-index checkpoint spacing; 0 disables it.
		IndexInterval int64
	}

	// Runner holds the I/O endpoints of an invocation.
	Runner struct {
		// Fs is the filesystem files are opened from. Defaults to the OS filesystem.
		Fs afero.Fs
		// Dir resolves relative file arguments. Empty means the process working directory.
		Dir string
		// Stdin is read for the "-" argument or when no files are given.
		Stdin io.Reader
		// Stdout receives headers and selected content.
		Stdout io.Writer
		// Stderr receives per-file warnings.
		Stderr io.Writer
		// Logger receives debug records. Nil discards them.
		Logger *log.Logger
	}

	// IllegalCountError reports a count argument that does not parse.
	// It is fatal: no file is read.
	IllegalCountError struct {
		Mode tail.Mode
		Text string
		Err  error
	}
)

// ResolveCount picks the mode and raw count from the line and byte flags.
// The byte count wins when set; setting both is ErrConflictingCounts.
func ResolveCount(lines string, linesSet bool, bytes string, bytesSet bool) (tail.Mode, string, error) {
	switch {
	case bytesSet && linesSet:
		return tail.Lines, "", ErrConflictingCounts
	case bytesSet:
		return tail.Bytes, bytes, nil
	default:
		return tail.Lines, lines, nil
	}
}

// Run tails every file in order. With no files it reads Stdin.
//
// A bad count is returned as *IllegalCountError before anything is opened.
// Files that cannot be opened or read produce a "NAME: ERROR" warning on
// Stderr and processing continues; they do not make Run fail.
func (r *Runner) Run(ctx context.Context, opts Options, files []string) error {
	spec, err := tail.Parse(opts.Count)
	if err != nil {
		return &IllegalCountError{Mode: opts.Mode, Text: opts.Count, Err: err}
	}

	if len(files) == 0 {
		files = []string{StdinName}
	}

	out := r.Stdout
	var lossy io.WriteCloser
	if opts.Lossy {
		lossy = tail.LossyWriter(r.Stdout)
		out = lossy
	}

	req := tail.Request{Mode: opts.Mode, Spec: spec, IndexInterval: opts.IndexInterval}
	logger := r.logger()
	logger.Debug("parsed count", "mode", opts.Mode, "count", spec, "files", len(files))

	for i, name := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.tailFile(out, name, i, len(files), req, opts.Quiet)
	}

	if lossy != nil {
		if err := lossy.Close(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	}
	return nil
}

// tailFile processes one argument. Errors are reported, not returned.
func (r *Runner) tailFile(w io.Writer, name string, index, total int, req tail.Request, quiet bool) {
	src, closeFn, err := r.open(name)
	if err != nil {
		r.warn(name, err)
		return
	}
	defer func() {
		if closeErr := closeFn(); closeErr != nil {
			r.warn(name, closeErr)
		}
	}()

	if total > 1 && !quiet {
		if index > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "==> %s <==\n", name)
	}

	res, err := tail.Tail(w, src, req)
	if err != nil {
		r.warn(name, err)
		return
	}

	r.logger().Debug("tailed",
		"file", name,
		"lines", res.Totals.Lines,
		"bytes", res.Totals.Bytes,
		"selection", res.Selection,
		"checkpoints", res.Checkpoints,
	)
}

// open returns a seekable view of the named argument and its release func.
func (r *Runner) open(name string) (io.ReadSeeker, func() error, error) {
	noop := func() error { return nil }

	if name == StdinName {
		if r.Stdin == nil {
			return nil, noop, errors.New("standard input is not available")
		}
		rs, err := tail.Seekable(r.Stdin)
		if err != nil {
			return nil, noop, err
		}
		return rs, noop, nil
	}

	path := name
	if !filepath.IsAbs(path) && r.Dir != "" {
		path = filepath.Join(r.Dir, path)
	}

	fsys := r.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, noop, err
	}

	// Named pipes and character devices open fine but cannot seek.
	rs, err := tail.Seekable(f)
	if err != nil {
		_ = f.Close() // Already failing; the read error is the one to report
		return nil, noop, err
	}
	return rs, f.Close, nil
}

// warn prints "NAME: ERROR" to Stderr. Path errors are reduced to their
// cause since the name is already in the message.
func (r *Runner) warn(name string, err error) {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	if r.Stderr != nil {
		fmt.Fprintf(r.Stderr, "%s: %v\n", name, err)
	}
	r.logger().Debug("skipped file", "file", name, "err", err)
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}

// Error implements the error interface.
func (e *IllegalCountError) Error() string {
	return fmt.Sprintf("illegal %s count -- %s", e.Mode, e.Text)
}

// Unwrap returns ErrIllegalCount and the parse error, so errors.Is matches
// both ErrIllegalCount and tail.ErrNotANumber.
func (e *IllegalCountError) Unwrap() []error {
	return []error{ErrIllegalCount, e.Err}
}
