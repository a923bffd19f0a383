// SPDX-License-Identifier: MPL-2.0

package tail

import (
	"bytes"
	"fmt"
	"io"
)

const (
	// Lines selects by '\n'-terminated line.
	Lines Mode = iota
	// Bytes selects by byte.
	Bytes
)

type (
	// Mode is the unit extraction operates on.
	Mode int

	// Request describes one extraction.
	Request struct {
		Mode Mode
		Spec CountSpec
		// IndexInterval is the line-index checkpoint spacing for line mode.
		// Zero or negative disables the index.
		IndexInterval int64
	}

	// Result reports what Tail measured and selected, for diagnostics.
	Result struct {
		Totals    Totals
		Selection Selection
		// Checkpoints is the number of line-index checkpoints recorded.
		Checkpoints int
	}
)

// String returns the unit name, as used in messages ("line count").
func (m Mode) String() string {
	if m == Bytes {
		return "byte"
	}
	return "line"
}

// Tail runs the whole selection for one resource: measure, select, extract.
//
// Byte mode takes the size from Seek(0, io.SeekEnd) and seeks straight to the
// start offset. Line mode runs the counting pre-pass over r and then a second
// streaming pass from the start line.
func Tail(w io.Writer, r io.ReadSeeker, req Request) (Result, error) {
	var (
		res Result
		idx *LineIndex
	)

	if req.Mode == Bytes {
		size, err := r.Seek(0, io.SeekEnd)
		if err != nil {
			return res, fmt.Errorf("measuring size: %w", err)
		}
		res.Totals.Bytes = size
	} else {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return res, fmt.Errorf("rewinding input: %w", err)
		}
		totals, index, err := MeasureIndexed(r, req.IndexInterval)
		if err != nil {
			return res, err
		}
		res.Totals, idx = totals, index
		res.Checkpoints = idx.Len()
	}

	res.Selection = Select(req.Spec, res.Totals.Of(req.Mode))
	if res.Selection.IsEmpty() {
		return res, nil
	}
	if req.Mode == Bytes {
		return res, ExtractBytes(w, r, res.Selection)
	}
	return res, ExtractLinesIndexed(w, r, res.Selection, idx)
}

// Seekable returns r as an io.ReadSeeker. Readers that can already seek (a
// regular *os.File) are returned unchanged; anything else, such as a pipe on
// standard input, is read to EOF once and served from memory.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		if _, err := rs.Seek(0, io.SeekCurrent); err == nil {
			return rs, nil
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
