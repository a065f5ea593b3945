// Package execution provides the request lifecycle domain model.
package execution

// RequestState represents the lifecycle state of a sequence request.
type RequestState string

const (
	StateIdle      RequestState = "idle"      // No request issued yet
	StateLoading   RequestState = "loading"   // Resolving a sequence
	StateSucceeded RequestState = "succeeded" // Sequence and average available
	StateFailed    RequestState = "failed"    // Request failed
)

// IsValid checks if the state is valid.
func (s RequestState) IsValid() bool {
	switch s {
	case StateIdle, StateLoading, StateSucceeded, StateFailed:
		return true
	default:
		return false
	}
}

// IsTerminal checks if the state settles a request.
func (s RequestState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// CanTransitionTo checks if a transition from current state to target state is valid.
// Loading -> Loading is allowed: a new request supersedes the one in flight.
func (s RequestState) CanTransitionTo(target RequestState) bool {
	transitions := map[RequestState][]RequestState{
		StateIdle:      {StateLoading},
		StateLoading:   {StateLoading, StateSucceeded, StateFailed},
		StateSucceeded: {StateLoading},
		StateFailed:    {StateLoading},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == target {
			return true
		}
	}
	return false
}

// String implements Stringer interface.
func (s RequestState) String() string {
	return string(s)
}
