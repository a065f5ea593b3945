// Package usecase provides sequence resolution and request orchestration.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
	"github.com/whhaicheng/AverageCalc/internal/infra/metrics"
	"github.com/whhaicheng/AverageCalc/internal/infra/source"
)

// SequenceResolver resolves a (kind, count) request into a sequence.
type SequenceResolver interface {
	Resolve(ctx context.Context, kind sequence.SourceKind, count int) (sequence.Sequence, error)
}

// SequenceUseCase dispatches requests to the registered local or remote source.
type SequenceUseCase struct {
	registry *source.Registry
	metrics  *metrics.Metrics
}

// NewSequenceUseCase creates a new sequence use case. m may be nil.
func NewSequenceUseCase(registry *source.Registry, m *metrics.Metrics) *SequenceUseCase {
	return &SequenceUseCase{
		registry: registry,
		metrics:  m,
	}
}

// Resolve returns the sequence for kind and count.
// Unrecognized kinds fail with sequence.ErrInvalidSourceKind; any source
// failure is reported as sequence.ErrFetchFailed. A count of zero or less
// yields an empty sequence without consulting the source.
func (uc *SequenceUseCase) Resolve(ctx context.Context, kind sequence.SourceKind, count int) (sequence.Sequence, error) {
	if !kind.IsValid() {
		return nil, &sequence.Error{Kind: sequence.ErrorKindInvalidSourceKind, Source: kind, Op: "resolve"}
	}

	src := uc.registry.Get(kind)
	if src == nil {
		return nil, &sequence.Error{Kind: sequence.ErrorKindInvalidSourceKind, Source: kind, Op: "resolve: no source registered"}
	}

	if count <= 0 {
		slog.Debug("Sequence: non-positive count, returning empty sequence", "kind", kind, "count", count)
		return sequence.Sequence{}, nil
	}

	start := time.Now()
	seq, err := src.Fetch(ctx, count)
	uc.metrics.ObserveResolve(kind, time.Since(start), err)
	if err != nil {
		var seqErr *sequence.Error
		if !errors.As(err, &seqErr) {
			err = sequence.FetchError(kind, "fetch", err)
		}
		return nil, err
	}

	slog.Debug("Sequence: resolved",
		"kind", kind,
		"count", count,
		"returned", seq.Len(),
		"duration_ms", time.Since(start).Milliseconds())
	return seq, nil
}
