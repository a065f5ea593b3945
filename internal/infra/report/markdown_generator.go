package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/whhaicheng/AverageCalc/internal/domain/report"
)

// MarkdownGenerator generates Markdown format reports.
type MarkdownGenerator struct {
	chartGen *ChartGenerator
}

// NewMarkdownGenerator creates a new Markdown generator.
func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{
		chartGen: NewChartGenerator(),
	}
}

// Generate generates a Markdown report.
func (g *MarkdownGenerator) Generate(data *report.GenerateContext) (*report.Report, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var sb strings.Builder

	// Title
	g.writeTitle(&sb, data)

	// Summary
	g.writeSummary(&sb, data)

	// Results
	if !data.IsFailed() {
		g.writeResults(&sb, data)
	}

	// Chart
	if data.Config.IncludeChart && data.HasSequence() {
		g.writeChart(&sb, data)
	}

	// Request
	if data.Config.IncludeRequest {
		g.writeRequest(&sb, data)
	}

	// Footer
	g.writeFooter(&sb)

	return &report.Report{
		Format:      report.FormatMarkdown,
		Content:     []byte(sb.String()),
		GeneratedAt: time.Now(),
		RequestID:   data.RequestID,
	}, nil
}

// Format returns the format this generator produces.
func (g *MarkdownGenerator) Format() report.ReportFormat {
	return report.FormatMarkdown
}

// writeTitle writes the report title.
func (g *MarkdownGenerator) writeTitle(sb *strings.Builder, data *report.GenerateContext) {
	title := data.Config.Title
	if title == "" {
		title = fmt.Sprintf("Average of %d %s", data.Count, strings.ToLower(data.Kind.Label()))
	}
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
}

// writeSummary writes the summary section.
func (g *MarkdownGenerator) writeSummary(sb *strings.Builder, data *report.GenerateContext) {
	sb.WriteString("## Summary\n\n")

	status := "✅ Succeeded"
	if data.IsFailed() {
		status = "❌ Failed"
	}
	sb.WriteString(fmt.Sprintf("- **Status**: %s\n", status))
	sb.WriteString(fmt.Sprintf("- **Number type**: %s\n", data.Kind.Label()))
	sb.WriteString(fmt.Sprintf("- **Requested count**: %d\n", data.Count))

	if data.IsFailed() {
		sb.WriteString(fmt.Sprintf("- **Error**: %s\n", data.ErrorMessage))
	}

	sb.WriteString("\n")
}

// writeResults writes the results table.
func (g *MarkdownGenerator) writeResults(sb *strings.Builder, data *report.GenerateContext) {
	sb.WriteString("## Results\n\n")

	if !data.HasSequence() {
		sb.WriteString("*No numbers returned*\n\n")
		return
	}

	sb.WriteString("| Fetched Numbers | Average |\n")
	sb.WriteString("|-----------------|---------|\n")
	sb.WriteString(fmt.Sprintf("| %s | %s |\n", data.Sequence.String(), report.FormatAverage(data.Average)))
	sb.WriteString("\n")
}

// writeChart writes the chart section.
func (g *MarkdownGenerator) writeChart(sb *strings.Builder, data *report.GenerateContext) {
	sb.WriteString("## Chart\n\n")
	sb.WriteString("```\n")
	sb.WriteString(g.chartGen.GenerateSequenceChart(data.Sequence, data.Average, data.Config.ChartWidth))
	sb.WriteString("```\n\n")
}

// writeRequest writes the request section.
func (g *MarkdownGenerator) writeRequest(sb *strings.Builder, data *report.GenerateContext) {
	sb.WriteString("## Request\n\n")
	sb.WriteString("| Property | Value |\n")
	sb.WriteString("|----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Request ID | `%s` |\n", data.RequestID))
	sb.WriteString(fmt.Sprintf("| State | %s |\n", data.State))
	sb.WriteString(fmt.Sprintf("| Started | %s |\n", report.GetTimestamp(data.StartedAt)))
	sb.WriteString(fmt.Sprintf("| Completed | %s |\n", report.GetTimestamp(data.CompletedAt)))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", data.GetDuration()))
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (g *MarkdownGenerator) writeFooter(sb *strings.Builder) {
	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("*Generated by AverageCalc at %s*\n", time.Now().Format(time.RFC1123)))
}
