package sequence

import (
	"math/big"
	"strconv"
	"strings"
)

// Sequence is an ordered list of integers produced for one request.
type Sequence []int64

// Len returns the number of elements.
func (s Sequence) Len() int {
	return len(s)
}

// Sum returns the exact total of all elements. The total of 93 Fibonacci
// values already exceeds int64, so it is computed as a big.Int.
func (s Sequence) Sum() *big.Int {
	total := new(big.Int)
	var v big.Int
	for _, n := range s {
		total.Add(total, v.SetInt64(n))
	}
	return total
}

// Join renders the elements separated by sep, in order.
func (s Sequence) Join(sep string) string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, sep)
}

// String renders the sequence the way the results table shows it.
func (s Sequence) String() string {
	return s.Join(", ")
}

// Clone returns an independent copy.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Average returns the arithmetic mean of seq.
// The average of an empty sequence is defined as 0.
func Average(seq Sequence) float64 {
	if len(seq) == 0 {
		return 0
	}
	// Accumulate in float64 so large Fibonacci values cannot overflow the sum.
	var sum float64
	for _, v := range seq {
		sum += float64(v)
	}
	return sum / float64(len(seq))
}
