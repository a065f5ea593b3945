package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCount converts user input into a requested count.
// Non-integer input is rejected with ErrInvalidCount; zero and negative
// values are accepted and later yield an empty sequence.
func ParseCount(s string) (int, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidCount)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidCount, s)
	}
	return n, nil
}

// MaxFibonacciCount is the largest Fibonacci count whose values all fit in
// an int64: F(0) through F(92).
const MaxFibonacciCount = 93

// CountLimit returns the effective upper bound on count for kind.
// Fibonacci counts never exceed MaxFibonacciCount, whatever limit says.
func CountLimit(kind SourceKind, limit int) int {
	if kind == KindFibonacci && (limit <= 0 || limit > MaxFibonacciCount) {
		return MaxFibonacciCount
	}
	return limit
}

// CheckCount validates count for kind against an upper limit.
// A limit of zero or less disables the configured check.
func CheckCount(kind SourceKind, count, limit int) error {
	if bound := CountLimit(kind, limit); bound > 0 && count > bound {
		return fmt.Errorf("%w: %d exceeds limit %d for %s", ErrCountTooLarge, count, bound, kind)
	}
	return nil
}
