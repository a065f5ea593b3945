package report

import (
	"fmt"

	"github.com/whhaicheng/AverageCalc/internal/domain/execution"
	"github.com/whhaicheng/AverageCalc/internal/domain/report"
)

// NewGenerator returns the generator for format.
func NewGenerator(format report.ReportFormat) (report.Generator, error) {
	switch format {
	case report.FormatText:
		return NewTextGenerator(), nil
	case report.FormatMarkdown:
		return NewMarkdownGenerator(), nil
	case report.FormatJSON:
		return NewJSONGenerator(), nil
	default:
		return nil, fmt.Errorf("no generator for format %q", format)
	}
}

// Render builds a report for a settled snapshot in one call.
func Render(snap execution.Snapshot, cfg *report.ReportConfig) (*report.Report, error) {
	gen, err := NewGenerator(cfg.Format)
	if err != nil {
		return nil, err
	}
	data, err := report.NewGenerateContext(snap, cfg)
	if err != nil {
		return nil, err
	}
	return gen.Generate(data)
}
