package source

import (
	"context"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

// LocalSource generates prime or even sequences in process.
type LocalSource struct {
	kind sequence.SourceKind
}

// NewLocalSource creates a local source for KindPrime or KindEven.
func NewLocalSource(kind sequence.SourceKind) *LocalSource {
	return &LocalSource{kind: kind}
}

// Kind returns the source kind.
func (s *LocalSource) Kind() sequence.SourceKind {
	return s.kind
}

// Fetch generates the sequence synchronously. The context is not consulted.
func (s *LocalSource) Fetch(_ context.Context, count int) (sequence.Sequence, error) {
	seq, err := sequence.Generate(s.kind, count)
	if err != nil {
		return nil, &sequence.Error{Kind: sequence.ErrorKindInvalidSourceKind, Source: s.kind, Op: "generate", Err: err}
	}
	return seq, nil
}
