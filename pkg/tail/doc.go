// SPDX-License-Identifier: MPL-2.0

// Package tail implements the selection engine behind the tail utility.
//
// A count argument is parsed into a CountSpec, Select combines it with the
// number of units in a resource to produce a Selection, and the extractors
// stream the selected suffix to a writer:
//
//	spec, err := tail.Parse("+2")
//	if err != nil {
//		return err
//	}
//	_, err = tail.Tail(os.Stdout, f, tail.Request{Mode: tail.Lines, Spec: spec})
//
// # Units
//
// A line is the maximal run of bytes up to and including the next '\n', or
// to the end of the resource for a final unterminated line. '\r' is line
// content. Bytes are raw and never realigned to UTF-8 boundaries; use
// LossyWriter to replace invalid sequences at print time.
//
// # Passes
//
// Byte mode seeks directly to its start offset. Line mode needs the line
// total before it can select, so it makes a counting pre-pass (Measure)
// and then a second pass from the start line. The pre-pass can record a
// sparse LineIndex so the second pass seeks close to its start line.
// Non-seekable input goes through Seekable, which buffers it once.
package tail
