// SPDX-License-Identifier: MPL-2.0

package tail

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func TestMeasure(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 3*readBufferSize+17)

	tests := []struct {
		name  string
		input string
		want  Totals
	}{
		{name: "empty", input: "", want: Totals{}},
		{name: "one terminated", input: "a\n", want: Totals{Lines: 1, Bytes: 2}},
		{name: "one unterminated", input: "a", want: Totals{Lines: 1, Bytes: 1}},
		{name: "three", input: "a\nb\nc\n", want: Totals{Lines: 3, Bytes: 6}},
		{name: "trailing fragment", input: "a\nb\nc", want: Totals{Lines: 3, Bytes: 5}},
		{name: "blank lines", input: "\n\n\n", want: Totals{Lines: 3, Bytes: 3}},
		{name: "crlf", input: "a\r\nb\r\n", want: Totals{Lines: 2, Bytes: 6}},
		{name: "lone cr", input: "a\rb\r", want: Totals{Lines: 1, Bytes: 4}},
		{name: "long line", input: long + "\nend\n", want: Totals{Lines: 2, Bytes: int64(len(long)) + 5}},
		{name: "long unterminated", input: long, want: Totals{Lines: 1, Bytes: int64(len(long))}},
		{name: "invalid utf8", input: "\xff\xfe\n\xc3", want: Totals{Lines: 2, Bytes: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Measure(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Measure() returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Measure() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMeasure_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Measure(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Errorf("Measure() error = %v, want wrapping %v", err, boom)
	}
}

func TestMeasureIndexed_Checkpoints(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for i := range 10 {
		sb.WriteString(strings.Repeat("y", i))
		sb.WriteByte('\n')
	}
	input := sb.String()

	totals, idx, err := MeasureIndexed(strings.NewReader(input), 3)
	if err != nil {
		t.Fatalf("MeasureIndexed() returned error: %v", err)
	}
	if totals.Lines != 10 {
		t.Errorf("Lines = %d, want 10", totals.Lines)
	}
	if idx.Len() != 3 {
		t.Fatalf("index Len() = %d, want 3 (lines 3, 6, 9)", idx.Len())
	}

	// Line k starts after lines 0..k-1, whose lengths are i+1 bytes.
	startOf := func(k int64) int64 {
		var off int64
		for i := range k {
			off += i + 1
		}
		return off
	}

	tests := []struct {
		line     int64
		wantLine int64
	}{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 3},
		{5, 3},
		{6, 6},
		{8, 6},
		{9, 9},
		{100, 9},
	}
	for _, tt := range tests {
		at, off := idx.Nearest(tt.line)
		if at != tt.wantLine {
			t.Errorf("Nearest(%d) line = %d, want %d", tt.line, at, tt.wantLine)
		}
		if want := startOf(at); off != want {
			t.Errorf("Nearest(%d) offset = %d, want %d", tt.line, off, want)
		}
	}
}

func TestMeasureIndexed_Disabled(t *testing.T) {
	t.Parallel()

	totals, idx, err := MeasureIndexed(strings.NewReader("a\nb\n"), 0)
	if err != nil {
		t.Fatalf("MeasureIndexed() returned error: %v", err)
	}
	if idx != nil {
		t.Error("interval 0 should return a nil index")
	}
	if totals.Lines != 2 {
		t.Errorf("Lines = %d, want 2", totals.Lines)
	}

	// A nil index is usable.
	if at, off := idx.Nearest(5); at != 0 || off != 0 {
		t.Errorf("nil Nearest(5) = (%d, %d), want (0, 0)", at, off)
	}
	if idx.Len() != 0 {
		t.Error("nil index should report zero Len")
	}
}

func TestTotals_Of(t *testing.T) {
	t.Parallel()

	totals := Totals{Lines: 3, Bytes: 40}
	if got := totals.Of(Lines); got != 3 {
		t.Errorf("Of(Lines) = %d, want 3", got)
	}
	if got := totals.Of(Bytes); got != 40 {
		t.Errorf("Of(Bytes) = %d, want 40", got)
	}
}
