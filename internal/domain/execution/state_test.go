// Package execution provides unit tests for the request state machine.
package execution

import (
	"testing"
)

// TestRequestState_IsValid tests valid state detection.
func TestRequestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state RequestState
		want  bool
	}{
		{"idle is valid", StateIdle, true},
		{"loading is valid", StateLoading, true},
		{"succeeded is valid", StateSucceeded, true},
		{"failed is valid", StateFailed, true},
		{"invalid state", RequestState("invalid"), false},
		{"empty state", RequestState(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.want {
				t.Errorf("RequestState.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestRequestState_IsTerminal tests terminal state detection.
func TestRequestState_IsTerminal(t *testing.T) {
	tests := []struct {
		name  string
		state RequestState
		want  bool
	}{
		{"succeeded is terminal", StateSucceeded, true},
		{"failed is terminal", StateFailed, true},
		{"idle is not terminal", StateIdle, false},
		{"loading is not terminal", StateLoading, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.want {
				t.Errorf("RequestState.IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestRequestState_CanTransitionTo tests valid state transitions.
func TestRequestState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   RequestState
		to     RequestState
		wantOk bool
	}{
		{"idle -> loading", StateIdle, StateLoading, true},
		{"loading -> succeeded", StateLoading, StateSucceeded, true},
		{"loading -> failed", StateLoading, StateFailed, true},
		{"loading -> loading (superseded)", StateLoading, StateLoading, true},
		{"succeeded -> loading", StateSucceeded, StateLoading, true},
		{"failed -> loading", StateFailed, StateLoading, true},

		{"idle -> succeeded (skip)", StateIdle, StateSucceeded, false},
		{"idle -> failed (skip)", StateIdle, StateFailed, false},
		{"succeeded -> failed", StateSucceeded, StateFailed, false},
		{"failed -> succeeded", StateFailed, StateSucceeded, false},
		{"loading -> idle", StateLoading, StateIdle, false},
		{"unknown -> loading", RequestState("x"), StateLoading, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.wantOk {
				t.Errorf("RequestState.CanTransitionTo() = %v, want %v", got, tt.wantOk)
			}
		})
	}
}

// TestRequestState_String tests string representation.
func TestRequestState_String(t *testing.T) {
	tests := []struct {
		state RequestState
		want  string
	}{
		{StateIdle, "idle"},
		{StateLoading, "loading"},
		{StateSucceeded, "succeeded"},
		{StateFailed, "failed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("RequestState.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
