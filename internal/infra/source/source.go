// Package source provides sequence sources: local generators and the
// remote Fibonacci and random integer services.
package source

import (
	"context"
	"net/http"
	"sort"

	"github.com/whhaicheng/AverageCalc/internal/domain/config"
	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

// Source produces a sequence of count integers for one kind.
// Each source kind implements this interface.
type Source interface {
	// Kind returns the kind this source serves.
	Kind() sequence.SourceKind

	// Fetch returns up to count integers. Local sources always return exactly
	// count; remote sources may return fewer if the service does.
	// Failures are returned as *sequence.Error.
	Fetch(ctx context.Context, count int) (sequence.Sequence, error)
}

// Registry manages sources by kind.
type Registry struct {
	sources map[sequence.SourceKind]Source
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[sequence.SourceKind]Source),
	}
}

// NewDefaultRegistry registers the two local generators and the two remote
// services described by cfg.
func NewDefaultRegistry(cfg config.RemoteConfig, client HTTPDoer) *Registry {
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}
	r := NewRegistry()
	r.Register(NewLocalSource(sequence.KindPrime))
	r.Register(NewLocalSource(sequence.KindEven))
	r.Register(NewFibonacciSource(cfg.FibonacciURL, client))
	r.Register(NewRandomSource(cfg.RandomURL, cfg.RandomMin, cfg.RandomMax, client))
	return r
}

// Register registers a source, replacing any previous one of the same kind.
func (r *Registry) Register(src Source) {
	r.sources[src.Kind()] = src
}

// Get returns the source for kind.
// Returns nil if no source is registered.
func (r *Registry) Get(kind sequence.SourceKind) Source {
	return r.sources[kind]
}

// List returns all registered kinds, sorted.
func (r *Registry) List() []sequence.SourceKind {
	kinds := make([]sequence.SourceKind, 0, len(r.sources))
	for kind := range r.sources {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// HTTPDoer performs an HTTP request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}
