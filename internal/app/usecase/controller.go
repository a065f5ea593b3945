package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/whhaicheng/AverageCalc/internal/domain/execution"
	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
	"github.com/whhaicheng/AverageCalc/internal/infra/metrics"
)

var (
	// ErrControllerClosed is returned when parameters change after Close.
	ErrControllerClosed = errors.New("controller closed")
)

// StateListener receives every published state.
type StateListener func(execution.Snapshot)

// ControllerOptions configures a RequestController.
type ControllerOptions struct {
	Kind     sequence.SourceKind // Initial kind
	Count    int                 // Initial count
	MaxCount int                 // Upper bound on the count; 0 leaves only the per-kind cap
	Metrics  *metrics.Metrics    // Optional
}

// RequestController drives the request lifecycle. It re-runs whenever the
// kind or count changes, and only the latest run may update the state.
type RequestController struct {
	resolver SequenceResolver
	maxCount int
	metrics  *metrics.Metrics
	now      func() time.Time

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu      sync.Mutex
	kind    sequence.SourceKind
	count   int
	token   uint64
	cancel  context.CancelFunc // cancels the in-flight run
	state   execution.Snapshot
	last    *execution.Result // last succeeded result, kept for display while loading
	version uint64
	started bool
	closed  bool
	nextSub int
	subs    map[int]StateListener

	notifyMu  sync.Mutex
	delivered uint64
}

// NewRequestController creates a controller in the Idle state.
// Call Start to issue the initial request.
func NewRequestController(resolver SequenceResolver, opts ControllerOptions) *RequestController {
	ctx, stop := context.WithCancel(context.Background())
	return &RequestController{
		resolver: resolver,
		maxCount: opts.MaxCount,
		metrics:  opts.Metrics,
		now:      time.Now,
		ctx:      ctx,
		stop:     stop,
		kind:     opts.Kind,
		count:    opts.Count,
		state:    execution.IdleSnapshot(),
		subs:     make(map[int]StateListener),
	}
}

// Subscribe registers fn for state updates and returns a function that
// removes it. fn is called from the goroutine that produced the update and
// never receives an older state after a newer one. fn must not change the
// controller parameters synchronously.
func (c *RequestController) Subscribe(fn StateListener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Start issues the initial request with the configured parameters.
// Subsequent calls are no-ops.
func (c *RequestController) Start() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.runLocked()
	c.mu.Unlock()

	c.publish()
	return nil
}

// SetSourceKind changes the kind and re-runs if it differs from the current one.
// A kind whose cap is below the current count is rejected and leaves
// parameters unchanged.
func (c *RequestController) SetSourceKind(kind sequence.SourceKind) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if kind == c.kind {
		c.mu.Unlock()
		return nil
	}
	if err := sequence.CheckCount(kind, c.count, c.maxCount); err != nil {
		c.mu.Unlock()
		return err
	}
	c.kind = kind
	c.runLocked()
	c.mu.Unlock()

	c.publish()
	return nil
}

// SetRequestedCount changes the count and re-runs if it differs from the
// current one. Counts above the limit are rejected and leave parameters unchanged.
func (c *RequestController) SetRequestedCount(count int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if count == c.count {
		c.mu.Unlock()
		return nil
	}
	if err := sequence.CheckCount(c.kind, count, c.maxCount); err != nil {
		c.mu.Unlock()
		return err
	}
	c.count = count
	c.runLocked()
	c.mu.Unlock()

	c.publish()
	return nil
}

// Run sets both parameters and issues a request unconditionally.
func (c *RequestController) Run(kind sequence.SourceKind, count int) (uint64, error) {
	if err := sequence.CheckCount(kind, count, c.maxCount); err != nil {
		return 0, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, ErrControllerClosed
	}
	c.kind = kind
	c.count = count
	token := c.runLocked()
	c.mu.Unlock()

	c.publish()
	return token, nil
}

// Trigger re-runs with the current parameters.
func (c *RequestController) Trigger() (uint64, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, ErrControllerClosed
	}
	token := c.runLocked()
	c.mu.Unlock()

	c.publish()
	return token, nil
}

// State returns the current snapshot.
func (c *RequestController) State() execution.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Params returns the current kind and count.
func (c *RequestController) Params() (sequence.SourceKind, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind, c.count
}

// Wait blocks until no run is in flight.
func (c *RequestController) Wait() {
	c.wg.Wait()
}

// Close cancels any in-flight run and waits for it to exit.
// Its result, if any, is discarded.
func (c *RequestController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.token++ // no in-flight run owns the state any more
	c.mu.Unlock()

	c.stop()
	c.wg.Wait()
}

// runLocked supersedes any in-flight run and starts a new one.
// c.mu must be held.
func (c *RequestController) runLocked() uint64 {
	if c.cancel != nil {
		c.cancel()
	}

	c.token++
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancel = cancel

	req := &execution.Request{
		ID:        uuid.New().String(),
		Token:     c.token,
		Kind:      c.kind,
		Count:     c.count,
		StartedAt: c.now(),
	}

	c.setStateLocked(execution.LoadingSnapshot(req, c.last))

	slog.Info("Controller: request started",
		"request_id", req.ID,
		"token", req.Token,
		"kind", req.Kind,
		"count", req.Count)

	c.wg.Add(1)
	go c.execute(ctx, cancel, req)
	return req.Token
}

// execute resolves one request. This runs in a goroutine.
func (c *RequestController) execute(ctx context.Context, cancel context.CancelFunc, req *execution.Request) {
	defer c.wg.Done()
	defer cancel()

	seq, err := c.resolver.Resolve(ctx, req.Kind, req.Count)

	c.mu.Lock()
	if req.Token != c.token {
		c.mu.Unlock()
		c.metrics.IncSuperseded()
		slog.Debug("Controller: discarding superseded result",
			"request_id", req.ID,
			"token", req.Token,
			"kind", req.Kind)
		return
	}

	done := *req
	done.Complete(c.now())
	c.cancel = nil

	if err != nil {
		c.last = nil
		c.setStateLocked(execution.FailedSnapshot(&done, err))
		c.mu.Unlock()

		slog.Error("Controller: request failed",
			"request_id", done.ID,
			"kind", done.Kind,
			"count", done.Count,
			"error_kind", sequence.KindOf(err),
			"error", err)
		c.publish()
		return
	}

	result := execution.NewResult(seq)
	c.last = result
	c.setStateLocked(execution.SucceededSnapshot(&done, result))
	c.mu.Unlock()

	slog.Info("Controller: request succeeded",
		"request_id", done.ID,
		"kind", done.Kind,
		"count", done.Count,
		"returned", seq.Len(),
		"average", result.Average,
		"duration_ms", done.Duration.Milliseconds())
	c.publish()
}

// setStateLocked replaces the state if the transition is allowed.
// c.mu must be held.
func (c *RequestController) setStateLocked(next execution.Snapshot) {
	if !c.state.State.CanTransitionTo(next.State) {
		slog.Error("Controller: rejected state change",
			"error", &execution.InvalidStateTransitionError{From: c.state.State, To: next.State})
		return
	}
	c.state = next
	c.version++
}

// publish delivers the current state to subscribers. Deliveries are
// serialized and a state older than one already delivered is dropped.
func (c *RequestController) publish() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	snap := c.state
	version := c.version
	listeners := make([]StateListener, 0, len(c.subs))
	for _, fn := range c.subs {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	if version <= c.delivered {
		return
	}
	c.delivered = version

	for _, fn := range listeners {
		fn(snap)
	}
}
