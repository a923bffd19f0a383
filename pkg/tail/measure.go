// SPDX-License-Identifier: MPL-2.0

package tail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// readBufferSize is the bufio buffer size used by both passes.
const readBufferSize = 64 * 1024

// Totals holds the unit counts of one resource.
type Totals struct {
	// Lines is the number of lines, counting an unterminated final line.
	Lines int64
	// Bytes is the size of the resource in bytes.
	Bytes int64
}

// Of returns the total for the given mode.
func (t Totals) Of(mode Mode) int64 {
	if mode == Bytes {
		return t.Bytes
	}
	return t.Lines
}

// Measure is the counting pre-pass: it reads r to EOF and returns the number
// of lines and bytes in it.
func Measure(r io.Reader) (Totals, error) {
	return measure(r, nil)
}

// MeasureIndexed is Measure plus a LineIndex holding a checkpoint every
// interval lines. An interval <= 0 returns a nil index.
func MeasureIndexed(r io.Reader, interval int64) (Totals, *LineIndex, error) {
	if interval <= 0 {
		t, err := measure(r, nil)
		return t, nil, err
	}
	idx := newLineIndex(interval)
	t, err := measure(r, idx)
	if err != nil {
		return t, nil, err
	}
	return t, idx, nil
}

func measure(r io.Reader, idx *LineIndex) (Totals, error) {
	br := bufio.NewReaderSize(r, readBufferSize)

	var (
		t Totals
		// pending is set while bytes have been read past the last '\n'.
		pending bool
	)
	for {
		chunk, err := br.ReadSlice('\n')
		t.Bytes += int64(len(chunk))
		if n := len(chunk); n > 0 {
			if chunk[n-1] == '\n' {
				t.Lines++
				pending = false
				idx.observe(t.Lines, t.Bytes)
			} else {
				pending = true
			}
		}

		if err != nil {
			if errors.Is(err, bufio.ErrBufferFull) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return t, fmt.Errorf("reading input: %w", err)
		}
	}
	if pending {
		t.Lines++
	}
	return t, nil
}
