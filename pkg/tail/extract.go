// SPDX-License-Identifier: MPL-2.0

package tail

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ExtractBytes seeks r to the selected byte offset and copies everything
// after it to w verbatim. Offsets are not aligned to UTF-8 boundaries.
func ExtractBytes(w io.Writer, r io.ReadSeeker, sel Selection) error {
	start, ok := sel.Start()
	if !ok {
		return nil
	}
	if _, err := r.Seek(int64(start), io.SeekStart); err != nil {
		return fmt.Errorf("seeking to byte %d: %w", start, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying bytes: %w", err)
	}
	return nil
}

// ExtractLines rewinds r and writes every line whose zero-based index is at
// or after the selected start, terminators included. A final line without a
// trailing '\n' is written as-is.
func ExtractLines(w io.Writer, r io.ReadSeeker, sel Selection) error {
	return ExtractLinesIndexed(w, r, sel, nil)
}

// ExtractLinesIndexed is ExtractLines starting from the nearest checkpoint of
// idx instead of from byte 0. A nil idx scans from the beginning.
func ExtractLinesIndexed(w io.Writer, r io.ReadSeeker, sel Selection, idx *LineIndex) error {
	start, ok := sel.Start()
	if !ok {
		return nil
	}
	target := int64(start)

	line, offset := idx.Nearest(target)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to line %d: %w", line, err)
	}

	br := bufio.NewReaderSize(r, readBufferSize)
	for line < target {
		_, err := br.ReadSlice('\n')
		switch {
		case err == nil:
			line++
		case errors.Is(err, bufio.ErrBufferFull):
			// Same line, keep skipping.
		case errors.Is(err, io.EOF):
			return nil
		default:
			return fmt.Errorf("reading input: %w", err)
		}
	}

	// Every remaining line is selected, so the rest is copied unchanged.
	if _, err := br.WriteTo(w); err != nil {
		return fmt.Errorf("copying lines: %w", err)
	}
	return nil
}

// LossyWriter wraps w so that ill-formed UTF-8 is replaced with U+FFFD as it
// is written. Close must be called to flush trailing partial sequences; it
// does not close w.
func LossyWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, runes.ReplaceIllFormed())
}
