package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/whhaicheng/AverageCalc/internal/domain/report"
)

// TextGenerator generates plain text reports for terminals.
type TextGenerator struct {
	chartGen *ChartGenerator
}

// NewTextGenerator creates a new text generator.
func NewTextGenerator() *TextGenerator {
	return &TextGenerator{
		chartGen: NewChartGenerator(),
	}
}

// Generate generates a text report.
func (g *TextGenerator) Generate(data *report.GenerateContext) (*report.Report, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var sb strings.Builder

	if data.Config.Title != "" {
		sb.WriteString(data.Config.Title)
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "Number type:     %s\n", data.Kind.Label())
	fmt.Fprintf(&sb, "Requested count: %d\n", data.Count)

	if data.IsFailed() {
		fmt.Fprintf(&sb, "Error:           %s\n", data.ErrorMessage)
	} else {
		fmt.Fprintf(&sb, "Fetched numbers: %s\n", data.Sequence.String())
		fmt.Fprintf(&sb, "Average:         %s\n", report.FormatAverage(data.Average))
		if data.HasSequence() {
			fmt.Fprintf(&sb, "Sum:             %s\n", humanize.BigComma(data.Sequence.Sum()))
		}
	}

	if data.Config.IncludeRequest {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Request ID:      %s\n", data.RequestID)
		fmt.Fprintf(&sb, "Duration:        %s\n", data.GetDuration())
	}

	if data.Config.IncludeChart && data.HasSequence() {
		sb.WriteString("\n")
		sb.WriteString(g.chartGen.GenerateSequenceChart(data.Sequence, data.Average, data.Config.ChartWidth))
	}

	return &report.Report{
		Format:      report.FormatText,
		Content:     []byte(sb.String()),
		GeneratedAt: time.Now(),
		RequestID:   data.RequestID,
	}, nil
}

// Format returns the format this generator produces.
func (g *TextGenerator) Format() report.ReportFormat {
	return report.FormatText
}
