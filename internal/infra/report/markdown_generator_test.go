// Package report provides unit tests for markdown generator.
package report

import (
	"strings"
	"testing"

	"github.com/whhaicheng/AverageCalc/internal/domain/report"
	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

// TestMarkdownGenerator_Format tests format detection.
func TestMarkdownGenerator_Format(t *testing.T) {
	gen := NewMarkdownGenerator()
	if gen.Format() != report.FormatMarkdown {
		t.Errorf("Format() = %v, want %v", gen.Format(), report.FormatMarkdown)
	}
}

// TestMarkdownGenerator_Generate tests report generation.
func TestMarkdownGenerator_Generate(t *testing.T) {
	gen := NewMarkdownGenerator()
	cfg := report.DefaultConfig(report.FormatMarkdown)
	cfg.IncludeChart = true

	data, err := report.NewGenerateContext(succeeded(sequence.KindEven, sequence.Sequence{2, 4, 6}), cfg)
	if err != nil {
		t.Fatalf("NewGenerateContext() error = %v", err)
	}

	rep, err := gen.Generate(data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	content := string(rep.Content)
	expected := []string{
		"# Average of 3 even numbers",
		"## Summary",
		"- **Status**: ✅ Succeeded",
		"- **Number type**: Even numbers",
		"| Fetched Numbers | Average |",
		"| 2, 4, 6 | 4 |",
		"## Chart",
		"## Request",
		"| Request ID | `req-ok` |",
		"| Started | 2024-03-01T12:00:00Z |",
		"Generated by AverageCalc",
	}
	for _, s := range expected {
		if !strings.Contains(content, s) {
			t.Errorf("Report should contain %q", s)
		}
	}
}

// TestMarkdownGenerator_Failed tests a failed request report.
func TestMarkdownGenerator_Failed(t *testing.T) {
	gen := NewMarkdownGenerator()
	cfg := report.DefaultConfig(report.FormatMarkdown)
	cfg.Title = "Nightly check"

	data, err := report.NewGenerateContext(failed(), cfg)
	if err != nil {
		t.Fatalf("NewGenerateContext() error = %v", err)
	}

	rep, err := gen.Generate(data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	content := string(rep.Content)
	if !strings.HasPrefix(content, "# Nightly check\n") {
		t.Error("Custom title should be used")
	}
	if !strings.Contains(content, "❌ Failed") {
		t.Error("Failed report should show failure status")
	}
	if !strings.Contains(content, "- **Error**: Failed to fetch data. Please try again.") {
		t.Error("Failed report should show the user-facing error")
	}
	if strings.Contains(content, "## Results") {
		t.Error("Failed report should not have a results section")
	}
}

// TestMarkdownGenerator_EmptySequence tests a zero-count request.
func TestMarkdownGenerator_EmptySequence(t *testing.T) {
	gen := NewMarkdownGenerator()
	data, err := report.NewGenerateContext(succeeded(sequence.KindPrime, sequence.Sequence{}), report.DefaultConfig(report.FormatMarkdown))
	if err != nil {
		t.Fatalf("NewGenerateContext() error = %v", err)
	}

	rep, err := gen.Generate(data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(string(rep.Content), "*No numbers returned*") {
		t.Error("Empty sequence should be reported as such")
	}
}

// TestMarkdownGenerator_InvalidContext tests validation failures.
func TestMarkdownGenerator_InvalidContext(t *testing.T) {
	gen := NewMarkdownGenerator()
	if _, err := gen.Generate(&report.GenerateContext{}); err == nil {
		t.Error("Generate() should fail for an empty context")
	}
}
