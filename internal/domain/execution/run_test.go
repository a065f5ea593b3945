package execution

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

func newTestRequest() *Request {
	return &Request{
		ID:        "req-1",
		Token:     1,
		Kind:      sequence.KindEven,
		Count:     3,
		StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// TestRequest_Complete tests duration calculation.
func TestRequest_Complete(t *testing.T) {
	req := newTestRequest()
	req.Complete(req.StartedAt.Add(250 * time.Millisecond))

	require.NotNil(t, req.CompletedAt)
	require.NotNil(t, req.Duration)
	assert.Equal(t, 250*time.Millisecond, *req.Duration)
}

// TestNewResult tests that the average is derived from the sequence.
func TestNewResult(t *testing.T) {
	res := NewResult(sequence.Sequence{2, 4, 6})
	assert.Equal(t, 4.0, res.Average)

	empty := NewResult(sequence.Sequence{})
	assert.Equal(t, 0.0, empty.Average)
}

// TestSnapshots tests the tagged variant constructors.
func TestSnapshots(t *testing.T) {
	req := newTestRequest()
	prev := NewResult(sequence.Sequence{1, 3})

	idle := IdleSnapshot()
	assert.NoError(t, idle.Validate())
	assert.Nil(t, idle.Display())
	assert.Equal(t, "", idle.Message())

	loading := LoadingSnapshot(req, prev)
	assert.NoError(t, loading.Validate())
	assert.True(t, loading.IsLoading())
	assert.Same(t, prev, loading.Display())

	ok := SucceededSnapshot(req, NewResult(sequence.Sequence{2, 4, 6}))
	assert.NoError(t, ok.Validate())
	assert.Equal(t, sequence.Sequence{2, 4, 6}, ok.Display().Sequence)

	failed := FailedSnapshot(req, sequence.FetchError(sequence.KindRandom, "GET", errors.New("boom")))
	assert.NoError(t, failed.Validate())
	assert.Nil(t, failed.Display())
	assert.Equal(t, sequence.ErrorKindFetchFailed, failed.ErrorKind)
	assert.Equal(t, "Failed to fetch data. Please try again.", failed.Message())
}

// TestSnapshot_Validate tests rejection of impossible combinations.
func TestSnapshot_Validate(t *testing.T) {
	res := NewResult(sequence.Sequence{1})
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"loading with result", Snapshot{State: StateLoading, Result: res}},
		{"succeeded without result", Snapshot{State: StateSucceeded}},
		{"failed without kind", Snapshot{State: StateFailed}},
		{"failed with result", Snapshot{State: StateFailed, Result: res, ErrorKind: sequence.ErrorKindFetchFailed}},
		{"unknown state", Snapshot{State: "bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.snap.Validate())
		})
	}
}

// TestSnapshot_ToJSON tests serialization.
func TestSnapshot_ToJSON(t *testing.T) {
	snap := SucceededSnapshot(newTestRequest(), NewResult(sequence.Sequence{2, 4, 6}))
	data, err := snap.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "succeeded", decoded["state"])
	assert.Equal(t, 4.0, decoded["result"].(map[string]any)["average"])
}

// TestInvalidStateTransitionError tests the error message.
func TestInvalidStateTransitionError(t *testing.T) {
	err := &InvalidStateTransitionError{From: StateIdle, To: StateSucceeded}
	assert.Equal(t, "invalid state transition: idle -> succeeded", err.Error())
}
