package source

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

// RandomSource fetches random integers as newline-delimited plain text.
type RandomSource struct {
	baseURL string
	min     int
	max     int
	client  HTTPDoer
}

// NewRandomSource creates a random integer source drawing from [min, max].
func NewRandomSource(baseURL string, min, max int, client HTTPDoer) *RandomSource {
	return &RandomSource{baseURL: baseURL, min: min, max: max, client: client}
}

// Kind returns the source kind.
func (s *RandomSource) Kind() sequence.SourceKind {
	return sequence.KindRandom
}

// URL returns the endpoint requesting count integers, one per line.
func (s *RandomSource) URL(count int) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("num", strconv.Itoa(count))
	q.Set("min", strconv.Itoa(s.min))
	q.Set("max", strconv.Itoa(s.max))
	q.Set("col", "1")
	q.Set("base", "10")
	q.Set("format", "plain")
	q.Set("rnd", "new")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch performs exactly one GET. No retries.
func (s *RandomSource) Fetch(ctx context.Context, count int) (sequence.Sequence, error) {
	rawURL, err := s.URL(count)
	if err != nil {
		return nil, sequence.FetchError(sequence.KindRandom, "url", err)
	}
	body, err := get(ctx, s.client, sequence.KindRandom, rawURL, "text/plain")
	if err != nil {
		return nil, err
	}
	seq, err := ParseRandomBody(string(body))
	if err != nil {
		return nil, sequence.FetchError(sequence.KindRandom, "parse", err)
	}
	return seq, nil
}

// ParseRandomBody splits body on newlines, drops empty lines and parses each
// remaining line as a base-10 integer.
func ParseRandomBody(body string) (sequence.Sequence, error) {
	seq := sequence.Sequence{}
	for i, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q is not an integer", i+1, line)
		}
		seq = append(seq, n)
	}
	return seq, nil
}
