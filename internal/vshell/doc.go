// SPDX-License-Identifier: MPL-2.0

// Package vshell runs POSIX shell scripts with mvdan/sh, resolving selected
// command names to built-in Go implementations instead of host binaries.
//
// The only built-in shipped by default is tail, backed by the same engine as
// the vtail command line. Scripts such as
//
//	printf 'a\nb\nc\n' | tail -n 2
//	tail -c +4 notes.txt > rest.txt
//
// therefore behave identically on every platform, with or without a system
// tail on PATH. Names not found in the Registry fall through to the
// interpreter's default exec handler.
//
// # Error Format
//
// Errors from built-ins are prefixed with "[vtail] <cmd>:" and written to the
// script's stderr; the command then exits with status 1 so that shell
// constructs like "||" and "set -e" see an ordinary failure:
//
//	[vtail] tail: illegal line count -- foo
package vshell
