// Package report provides the models for rendering a completed request.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/whhaicheng/AverageCalc/internal/domain/execution"
	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

// ErrNoRequest is returned when a snapshot has no request to report on.
var ErrNoRequest = errors.New("snapshot has no request")

// ReportFormat represents the output format for a report.
type ReportFormat string

const (
	// FormatText generates plain text reports.
	FormatText ReportFormat = "text"
	// FormatMarkdown generates Markdown format reports.
	FormatMarkdown ReportFormat = "markdown"
	// FormatJSON generates JSON format reports.
	FormatJSON ReportFormat = "json"
)

// AllFormats lists the supported formats.
var AllFormats = []ReportFormat{FormatText, FormatMarkdown, FormatJSON}

// String returns the string representation of the format.
func (f ReportFormat) String() string {
	return string(f)
}

// Validate checks if the format is valid.
func (f ReportFormat) Validate() error {
	switch f {
	case FormatText, FormatMarkdown, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid report format: %s", f)
	}
}

// FileExtension returns the file extension for this format.
func (f ReportFormat) FileExtension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ParseFormat accepts a format name or the "md" shorthand.
func ParseFormat(s string) (ReportFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "md" {
		return FormatMarkdown, nil
	}
	f := ReportFormat(s)
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// ReportConfig represents configuration for report generation.
type ReportConfig struct {
	// Format is the output format.
	Format ReportFormat

	// IncludeChart renders a bar chart of the sequence values.
	IncludeChart bool

	// IncludeRequest includes the request identity and timing section.
	IncludeRequest bool

	// ChartWidth is the width for text-based charts (default: 60).
	ChartWidth int

	// Title is the custom report title (optional).
	Title string
}

// DefaultConfig returns a default report configuration.
func DefaultConfig(format ReportFormat) *ReportConfig {
	return &ReportConfig{
		Format:         format,
		IncludeChart:   false,
		IncludeRequest: true,
		ChartWidth:     60,
	}
}

// Report represents a generated report.
type Report struct {
	Format      ReportFormat
	Content     []byte
	GeneratedAt time.Time
	RequestID   string
}

// Generator is the interface for report generators.
type Generator interface {
	// Generate generates a report from the provided data.
	Generate(ctx *GenerateContext) (*Report, error)

	// Format returns the format this generator produces.
	Format() ReportFormat
}

// GenerateContext contains data for report generation.
type GenerateContext struct {
	RequestID string
	Kind      sequence.SourceKind
	Count     int
	State     execution.RequestState

	StartedAt   *time.Time
	CompletedAt *time.Time
	Duration    *time.Duration

	// ErrorKind and ErrorMessage are set when the request failed.
	// ErrorMessage is the generic user-facing text.
	ErrorKind    sequence.ErrorKind
	ErrorMessage string

	Sequence sequence.Sequence
	Average  float64

	Config *ReportConfig
}

// NewGenerateContext builds a context from a settled snapshot.
func NewGenerateContext(snap execution.Snapshot, config *ReportConfig) (*GenerateContext, error) {
	if snap.Request == nil {
		return nil, ErrNoRequest
	}
	req := snap.Request
	started := req.StartedAt

	ctx := &GenerateContext{
		RequestID:    req.ID,
		Kind:         req.Kind,
		Count:        req.Count,
		State:        snap.State,
		StartedAt:    &started,
		CompletedAt:  req.CompletedAt,
		Duration:     req.Duration,
		ErrorKind:    snap.ErrorKind,
		ErrorMessage: snap.Message(),
		Sequence:     sequence.Sequence{},
		Config:       config,
	}
	if snap.Result != nil {
		ctx.Sequence = snap.Result.Sequence
		ctx.Average = snap.Result.Average
	}
	return ctx, nil
}

// Validate validates the generate context.
func (ctx *GenerateContext) Validate() error {
	if ctx.RequestID == "" {
		return fmt.Errorf("request_id is required")
	}
	if ctx.Config == nil {
		return fmt.Errorf("config is required")
	}
	if err := ctx.Config.Format.Validate(); err != nil {
		return err
	}
	if !ctx.State.IsTerminal() {
		return fmt.Errorf("request %s has not settled (state %s)", ctx.RequestID, ctx.State)
	}
	return nil
}

// IsFailed checks if the request failed.
func (ctx *GenerateContext) IsFailed() bool {
	return ctx.State == execution.StateFailed
}

// HasSequence reports whether there are values to show.
func (ctx *GenerateContext) HasSequence() bool {
	return len(ctx.Sequence) > 0
}

// GetDuration returns the formatted duration string.
func (ctx *GenerateContext) GetDuration() string {
	if ctx.Duration != nil {
		return ctx.Duration.String()
	}
	if ctx.StartedAt != nil && ctx.CompletedAt != nil {
		d := ctx.CompletedAt.Sub(*ctx.StartedAt)
		return d.String()
	}
	return "N/A"
}

// GetTimestamp returns the formatted timestamp for a time pointer.
func GetTimestamp(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(time.RFC3339)
}

// FormatAverage renders an average with the shortest exact representation.
func FormatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', -1, 64)
}
