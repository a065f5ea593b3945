package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

// maxBodySize caps how much of a remote response is read.
const maxBodySize = 8 << 20

// NewHTTPClient returns a pooled HTTP client bounded by timeout.
// A timeout of zero leaves the client without a deadline.
func NewHTTPClient(timeout time.Duration) *http.Client {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	return client
}

// get issues one GET and returns the body of a 2xx response.
// Every failure is reported as a fetch error for kind.
func get(ctx context.Context, client HTTPDoer, kind sequence.SourceKind, rawURL, accept string) ([]byte, error) {
	op := "GET " + rawURL

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, sequence.FetchError(kind, op, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", accept)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, sequence.FetchError(kind, op, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	slog.Debug("Source: remote response",
		"kind", kind,
		"url", rawURL,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, sequence.FetchError(kind, op, &StatusError{StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, sequence.FetchError(kind, op, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

// StatusError reports a non-success HTTP status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
