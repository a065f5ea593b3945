package execution

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

// Request records one end-to-end run of the controller.
type Request struct {
	ID    string              `json:"id"`    // UUID, used for log correlation
	Token uint64              `json:"token"` // Monotonic; the latest token owns the state
	Kind  sequence.SourceKind `json:"kind"`
	Count int                 `json:"count"`

	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Duration    *time.Duration `json:"duration,omitempty"`
}

// Complete stamps the completion time and duration.
func (r *Request) Complete(at time.Time) {
	r.CompletedAt = &at
	d := at.Sub(r.StartedAt)
	r.Duration = &d
}

// Result is the payload of a succeeded request.
type Result struct {
	Sequence sequence.Sequence `json:"sequence"`
	Average  float64           `json:"average"`
}

// NewResult builds a result, deriving the average from seq.
func NewResult(seq sequence.Sequence) *Result {
	return &Result{Sequence: seq, Average: sequence.Average(seq)}
}

// Snapshot is an immutable view of the controller state.
// Result is set only when State is StateSucceeded and ErrorKind only when
// State is StateFailed. Previous holds the last succeeded result while a
// new request is loading, for display continuity.
type Snapshot struct {
	State     RequestState       `json:"state"`
	Request   *Request           `json:"request,omitempty"`
	Result    *Result            `json:"result,omitempty"`
	Previous  *Result            `json:"previous,omitempty"`
	ErrorKind sequence.ErrorKind `json:"error_kind,omitempty"`
	Err       error              `json:"-"` // Internal detail for logging and tests
}

// IdleSnapshot is the state before the first request.
func IdleSnapshot() Snapshot {
	return Snapshot{State: StateIdle}
}

// LoadingSnapshot builds the state of an in-flight request.
func LoadingSnapshot(req *Request, previous *Result) Snapshot {
	return Snapshot{State: StateLoading, Request: req, Previous: previous}
}

// SucceededSnapshot builds the state of a completed request.
func SucceededSnapshot(req *Request, result *Result) Snapshot {
	return Snapshot{State: StateSucceeded, Request: req, Result: result}
}

// FailedSnapshot builds the state of a failed request. Any partial sequence is dropped.
func FailedSnapshot(req *Request, err error) Snapshot {
	return Snapshot{
		State:     StateFailed,
		Request:   req,
		ErrorKind: sequence.KindOf(err),
		Err:       err,
	}
}

// IsLoading reports whether a request is in flight.
func (s Snapshot) IsLoading() bool {
	return s.State == StateLoading
}

// Message returns the user-facing error message, empty unless failed.
func (s Snapshot) Message() string {
	if s.State != StateFailed {
		return ""
	}
	return sequence.UserMessage(s.ErrorKind)
}

// Display returns the result to render: the active one, or the previous
// one while loading.
func (s Snapshot) Display() *Result {
	switch s.State {
	case StateSucceeded:
		return s.Result
	case StateLoading:
		return s.Previous
	default:
		return nil
	}
}

// Validate checks that the payload matches the state tag.
func (s Snapshot) Validate() error {
	if !s.State.IsValid() {
		return fmt.Errorf("invalid state: %q", s.State)
	}
	switch s.State {
	case StateSucceeded:
		if s.Result == nil || s.ErrorKind != sequence.ErrorKindNone {
			return &InvalidSnapshotError{State: s.State, Reason: "succeeded requires a result and no error"}
		}
	case StateFailed:
		if s.Result != nil || s.ErrorKind == sequence.ErrorKindNone {
			return &InvalidSnapshotError{State: s.State, Reason: "failed requires an error kind and no result"}
		}
	default:
		if s.Result != nil || s.ErrorKind != sequence.ErrorKindNone {
			return &InvalidSnapshotError{State: s.State, Reason: "unexpected payload"}
		}
	}
	return nil
}

// ToJSON serializes the snapshot to JSON.
func (s Snapshot) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}

// InvalidStateTransitionError represents an invalid state transition.
type InvalidStateTransitionError struct {
	From RequestState
	To   RequestState
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: %s -> %s", e.From, e.To)
}

// InvalidSnapshotError represents a snapshot whose payload contradicts its state.
type InvalidSnapshotError struct {
	State  RequestState
	Reason string
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("invalid %s snapshot: %s", e.State, e.Reason)
}
