// SPDX-License-Identifier: MPL-2.0

package tail

import "strconv"

// Selection is the outcome of Select: either emit every unit from a
// zero-based offset through the end of the resource, or emit nothing.
// The zero value is EmitNothing.
type Selection struct {
	start uint64
	emit  bool
}

// EmitNothing is the selection that produces no output.
var EmitNothing = Selection{}

// StartAt returns the selection that emits from the zero-based offset.
func StartAt(offset uint64) Selection {
	return Selection{start: offset, emit: true}
}

// Start returns the zero-based start offset and whether anything is emitted.
func (s Selection) Start() (uint64, bool) {
	return s.start, s.emit
}

// IsEmpty reports whether s emits nothing.
func (s Selection) IsEmpty() bool { return !s.emit }

// String returns a short human-readable form, used in debug logs.
func (s Selection) String() string {
	if !s.emit {
		return "nothing"
	}
	return "from " + strconv.FormatUint(s.start, 10)
}

// Select maps a count and the total number of units (lines or bytes) in a
// resource to the offset extraction should start from.
//
// Rules:
//   - PlusZero starts at 0 unless the resource is empty.
//   - Num(0) and any count against an empty resource emit nothing.
//   - Num(+n) starts at n-1, or emits nothing when n is past the end.
//   - Num(-n) starts at total-n, clamped to 0 when n exceeds the total.
func Select(spec CountSpec, total int64) Selection {
	if spec.plusZero {
		if total > 0 {
			return StartAt(0)
		}
		return EmitNothing
	}

	n := spec.n
	if n == 0 || total <= 0 || n > total {
		return EmitNothing
	}

	var start int64
	if n < 0 {
		// total > 0 here, so total+n cannot overflow even for math.MinInt64.
		start = total + n
	} else {
		start = n - 1
	}
	if start < 0 {
		start = 0
	}
	return StartAt(uint64(start))
}
