package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

// FibonacciSource fetches Fibonacci numbers from GET <base>/<count>.
// The body is a JSON array of integers and is passed through unchanged.
type FibonacciSource struct {
	baseURL string
	client  HTTPDoer
}

// NewFibonacciSource creates a Fibonacci source.
func NewFibonacciSource(baseURL string, client HTTPDoer) *FibonacciSource {
	return &FibonacciSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Kind returns the source kind.
func (s *FibonacciSource) Kind() sequence.SourceKind {
	return sequence.KindFibonacci
}

// URL returns the endpoint for count.
func (s *FibonacciSource) URL(count int) string {
	return s.baseURL + "/" + strconv.Itoa(count)
}

// Fetch performs exactly one GET. No retries. Counts above
// sequence.MaxFibonacciCount are rejected without a request because
// F(93) and later do not fit in an int64.
func (s *FibonacciSource) Fetch(ctx context.Context, count int) (sequence.Sequence, error) {
	if err := sequence.CheckCount(sequence.KindFibonacci, count, 0); err != nil {
		return nil, sequence.FetchError(sequence.KindFibonacci, "request", err)
	}
	body, err := get(ctx, s.client, sequence.KindFibonacci, s.URL(count), "application/json")
	if err != nil {
		return nil, err
	}
	seq, err := ParseFibonacciBody(body)
	if err != nil {
		return nil, sequence.FetchError(sequence.KindFibonacci, "decode", err)
	}
	return seq, nil
}

// ParseFibonacciBody decodes a JSON array of integers. An element outside
// the int64 range is reported with its index.
func ParseFibonacciBody(body []byte) (sequence.Sequence, error) {
	var nums []json.Number
	if err := json.Unmarshal(body, &nums); err != nil {
		return nil, fmt.Errorf("decode json array: %w", err)
	}
	if nums == nil {
		// JSON null is not a sequence.
		return nil, fmt.Errorf("decode json array: body is null")
	}

	seq := make(sequence.Sequence, len(nums))
	for i, n := range nums {
		v, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode json array: element %d: %w", i, err)
		}
		seq[i] = v
	}
	return seq, nil
}
