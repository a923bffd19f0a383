// SPDX-License-Identifier: MPL-2.0

package tail

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestParse_SignConvention(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want CountSpec
	}{
		{"3", Num(-3)},
		{"+3", Num(3)},
		{"-3", Num(-3)},
		{"0", Num(0)},
		{"-0", Num(0)},
		{"+0", PlusZero},
		{"+000", PlusZero},
		{"007", Num(-7)},
		{"+007", Num(7)},
		{"10", Num(-10)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParse_PlusZeroIsDistinctFromZero(t *testing.T) {
	t.Parallel()

	plus := MustParse("+0")
	zero := MustParse("0")

	if plus == zero {
		t.Fatal("Parse(\"+0\") and Parse(\"0\") must differ")
	}
	if !plus.IsPlusZero() {
		t.Error("Parse(\"+0\").IsPlusZero() = false, want true")
	}
	if zero.IsPlusZero() {
		t.Error("Parse(\"0\").IsPlusZero() = true, want false")
	}
	if plus.N() != 0 || zero.N() != 0 {
		t.Errorf("N() = %d and %d, want 0 for both", plus.N(), zero.N())
	}
}

func TestParse_Boundaries(t *testing.T) {
	t.Parallel()

	maxText := strconv.FormatInt(math.MaxInt64, 10)
	minText := strconv.FormatInt(math.MinInt64, 10)

	tests := []struct {
		name    string
		text    string
		want    CountSpec
		wantErr bool
	}{
		{name: "bare max inverts", text: maxText, want: Num(math.MinInt64 + 1)},
		{name: "plus max", text: "+" + maxText, want: Num(math.MaxInt64)},
		{name: "min", text: minText, want: Num(math.MinInt64)},
		{name: "bare max+1 is min", text: "9223372036854775808", want: Num(math.MinInt64)},
		{name: "plus max+1 overflows", text: "+9223372036854775808", wantErr: true},
		{name: "min-1 overflows", text: "-9223372036854775809", wantErr: true},
		{name: "huge overflows", text: "99999999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.text, got)
				}
				if !errors.Is(err, ErrNotANumber) {
					t.Errorf("error does not wrap ErrNotANumber: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"+",
		"-",
		"foo",
		"3.5",
		" 3",
		"3 ",
		"+-3",
		"++3",
		"--3",
		"0x10",
		"1e3",
		"3a",
		"٣", // ARABIC-INDIC DIGIT THREE
		"١٠",
	}

	for _, text := range inputs {
		t.Run(strconv.Quote(text), func(t *testing.T) {
			t.Parallel()

			_, err := Parse(text)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", text)
			}

			var nan *NotANumberError
			if !errors.As(err, &nan) {
				t.Fatalf("error should be *NotANumberError, got %T", err)
			}
			if nan.Text != text {
				t.Errorf("NotANumberError.Text = %q, want %q", nan.Text, text)
			}
		})
	}
}

func TestParse_TotalOverDigitStrings(t *testing.T) {
	t.Parallel()

	for _, sign := range []string{"", "+", "-"} {
		for n := int64(0); n < 2000; n += 7 {
			text := sign + strconv.FormatInt(n, 10)
			if _, err := Parse(text); err != nil {
				t.Errorf("Parse(%q) returned error: %v", text, err)
			}
		}
	}
}

func TestCountSpec_StringRoundTrip(t *testing.T) {
	t.Parallel()

	specs := []CountSpec{
		PlusZero,
		Num(0),
		Num(5),
		Num(-5),
		Num(math.MaxInt64),
		Num(math.MinInt64),
	}

	for _, spec := range specs {
		got, err := Parse(spec.String())
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", spec.String(), err)
			continue
		}
		if got != spec {
			t.Errorf("Parse(%v.String()) = %v", spec, got)
		}
	}
}

func TestMustParse_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustParse(\"x\") should panic")
		}
	}()
	MustParse("x")
}
