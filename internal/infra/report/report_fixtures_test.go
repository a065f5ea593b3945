package report

import (
	"errors"
	"time"

	"github.com/whhaicheng/AverageCalc/internal/domain/execution"
	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func succeeded(kind sequence.SourceKind, seq sequence.Sequence) execution.Snapshot {
	req := &execution.Request{ID: "req-ok", Token: 1, Kind: kind, Count: len(seq), StartedAt: testStart}
	req.Complete(testStart.Add(250 * time.Millisecond))
	return execution.SucceededSnapshot(req, execution.NewResult(seq))
}

func failed() execution.Snapshot {
	req := &execution.Request{ID: "req-fail", Token: 2, Kind: sequence.KindRandom, Count: 4, StartedAt: testStart}
	req.Complete(testStart.Add(time.Second))
	return execution.FailedSnapshot(req, sequence.FetchError(sequence.KindRandom, "GET https://example.invalid", errors.New("connection refused")))
}
