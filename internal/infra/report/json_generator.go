package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/whhaicheng/AverageCalc/internal/domain/report"
)

// JSONGenerator generates JSON format reports.
type JSONGenerator struct{}

// NewJSONGenerator creates a new JSON generator.
func NewJSONGenerator() *JSONGenerator {
	return &JSONGenerator{}
}

// Generate generates a JSON report.
func (g *JSONGenerator) Generate(data *report.GenerateContext) (*report.Report, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	output := g.buildJSON(data)

	content, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}

	return &report.Report{
		Format:      report.FormatJSON,
		Content:     content,
		GeneratedAt: time.Now(),
		RequestID:   data.RequestID,
	}, nil
}

// Format returns the format this generator produces.
func (g *JSONGenerator) Format() report.ReportFormat {
	return report.FormatJSON
}

// jsonReport represents the JSON report structure.
type jsonReport struct {
	Meta    jsonMeta     `json:"meta"`
	Summary jsonSummary  `json:"summary"`
	Result  *jsonResult  `json:"result,omitempty"`
	Request *jsonRequest `json:"request,omitempty"`
}

// jsonMeta represents report metadata.
type jsonMeta struct {
	RequestID   string `json:"request_id"`
	Format      string `json:"format"`
	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}

// jsonSummary represents the summary section.
type jsonSummary struct {
	Status    string `json:"status"`
	Kind      string `json:"kind"`
	Count     int    `json:"count"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

// jsonResult carries the fetched numbers. Numbers is never null.
type jsonResult struct {
	Numbers []int64 `json:"numbers"`
	Average float64 `json:"average"`
}

// jsonRequest represents request timing.
type jsonRequest struct {
	StartedAt   string `json:"started_at,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	Duration    string `json:"duration"`
}

// buildJSON builds the JSON report structure.
func (g *JSONGenerator) buildJSON(data *report.GenerateContext) *jsonReport {
	summary := jsonSummary{
		Status: data.State.String(),
		Kind:   data.Kind.String(),
		Count:  data.Count,
	}
	if data.IsFailed() {
		summary.ErrorKind = string(data.ErrorKind)
		summary.Error = data.ErrorMessage
	}

	r := &jsonReport{
		Meta: jsonMeta{
			RequestID:   data.RequestID,
			Format:      report.FormatJSON.String(),
			GeneratedAt: time.Now().Format(time.RFC3339),
			Version:     "1.0",
		},
		Summary: summary,
	}

	if !data.IsFailed() {
		numbers := make([]int64, len(data.Sequence))
		copy(numbers, data.Sequence)
		r.Result = &jsonResult{Numbers: numbers, Average: data.Average}
	}

	if data.Config.IncludeRequest {
		req := &jsonRequest{Duration: data.GetDuration()}
		if data.StartedAt != nil {
			req.StartedAt = report.GetTimestamp(data.StartedAt)
		}
		if data.CompletedAt != nil {
			req.CompletedAt = report.GetTimestamp(data.CompletedAt)
		}
		r.Request = req
	}

	return r
}
