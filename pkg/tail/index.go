// SPDX-License-Identifier: MPL-2.0

package tail

import "github.com/gobwas/avl"

// DefaultIndexInterval is the checkpoint spacing used when none is configured.
const DefaultIndexInterval = 1024

type (
	// LineIndex is a sparse map from line number to byte offset, recorded
	// during the counting pre-pass. It lets the line extractor seek close to
	// its start line instead of rescanning the resource from byte 0.
	//
	// A nil *LineIndex is valid and behaves as an empty index.
	LineIndex struct {
		interval int64
		tree     avl.Tree
		size     int
	}

	// checkpoint records that line number line (zero-based) begins at offset.
	checkpoint struct {
		line   int64
		offset int64
	}

	// lineKey is a search key for the checkpoint tree.
	lineKey int64
)

func newLineIndex(interval int64) *LineIndex {
	return &LineIndex{interval: interval}
}

// Len returns the number of recorded checkpoints.
func (x *LineIndex) Len() int {
	if x == nil {
		return 0
	}
	return x.size
}

// Nearest returns the last checkpoint at or before line: the zero-based line
// number it marks and the byte offset where that line starts. Without a
// suitable checkpoint it returns (0, 0), the start of the resource.
func (x *LineIndex) Nearest(line int64) (at, offset int64) {
	if x == nil || line <= 0 {
		return 0, 0
	}
	if item := x.tree.Search(lineKey(line)); item != nil {
		c := item.(*checkpoint)
		return c.line, c.offset
	}
	if item := x.tree.Predecessor(lineKey(line)); item != nil {
		c := item.(*checkpoint)
		return c.line, c.offset
	}
	return 0, 0
}

// observe is called by the pre-pass each time a line terminator is consumed:
// completed lines have been read and the next line starts at offset.
func (x *LineIndex) observe(completed, offset int64) {
	if x == nil || completed%x.interval != 0 {
		return
	}
	var existing avl.Item
	x.tree, existing = x.tree.Insert(&checkpoint{line: completed, offset: offset})
	if existing != nil {
		panic("tail: line index checkpoint recorded twice")
	}
	x.size++
}

func (c *checkpoint) Compare(x avl.Item) int {
	return compare(c.line, x.(*checkpoint).line)
}

func (k lineKey) Compare(x avl.Item) int {
	return compare(int64(k), x.(*checkpoint).line)
}

func compare(a, b int64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
