// SPDX-License-Identifier: MPL-2.0

package tail

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrNotANumber is the sentinel error wrapped by NotANumberError.
var ErrNotANumber = errors.New("not a number")

// countPattern is the whole grammar of a count argument: an optional sign
// followed by one or more ASCII digits.
var countPattern = regexp.MustCompile(`^([+-])?([0-9]+)$`)

type (
	// CountSpec is a parsed -n/-c count argument.
	//
	// It has two variants. PlusZero is the literal "+0" and means "start at the
	// first unit", which prints everything from a non-empty resource. Every
	// other value is Num(n): negative n selects the last |n| units, positive n
	// starts at the 1-indexed unit n, and zero selects nothing.
	//
	// The zero value is Num(0).
	CountSpec struct {
		plusZero bool
		n        int64
	}

	// NotANumberError is returned by Parse when the text is not a signed
	// integer token or does not fit in an int64 once its sign is applied.
	NotANumberError struct {
		Text string
	}
)

// PlusZero is the "+0" count: start at the first unit.
var PlusZero = CountSpec{plusZero: true}

// Num returns the numeric count n.
func Num(n int64) CountSpec {
	return CountSpec{n: n}
}

// Parse turns a textual count into a CountSpec.
//
// A bare digit string is negative ("10" means the last 10 units), a leading
// '+' makes it positive and a leading '-' keeps it negative. "+0" (any number
// of zeros) yields PlusZero, while "0" and "-0" yield Num(0).
//
// The sign is applied before range checking, so a bare
// "9223372036854775808" is accepted as math.MinInt64 while the same digits
// with a '+' prefix are rejected.
func Parse(text string) (CountSpec, error) {
	m := countPattern.FindStringSubmatch(text)
	if m == nil {
		return CountSpec{}, &NotANumberError{Text: text}
	}

	sign := m[1]
	if sign == "" {
		sign = "-"
	}

	n, err := strconv.ParseInt(sign+m[2], 10, 64)
	if err != nil {
		return CountSpec{}, &NotANumberError{Text: text}
	}

	if sign == "+" && n == 0 {
		return PlusZero, nil
	}
	return Num(n), nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(text string) CountSpec {
	spec, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return spec
}

// IsPlusZero reports whether s is the "+0" variant.
func (s CountSpec) IsPlusZero() bool { return s.plusZero }

// N returns the signed count. It is 0 for PlusZero.
func (s CountSpec) N() int64 { return s.n }

// String renders s back in argument form. Negative counts are rendered with
// an explicit '-' so that the result parses to the same value.
func (s CountSpec) String() string {
	if s.plusZero {
		return "+0"
	}
	if s.n > 0 {
		return "+" + strconv.FormatInt(s.n, 10)
	}
	if s.n == 0 {
		return "0"
	}
	return strconv.FormatInt(s.n, 10)
}

// Error implements the error interface.
func (e *NotANumberError) Error() string {
	return fmt.Sprintf("%q is not a number", e.Text)
}

// Unwrap returns ErrNotANumber for errors.Is() compatibility.
func (e *NotANumberError) Unwrap() error { return ErrNotANumber }
