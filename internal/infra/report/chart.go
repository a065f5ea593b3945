// Package report provides text, Markdown and JSON renderers for a settled request.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

// ChartGenerator generates text-based charts for reports.
type ChartGenerator struct{}

// NewChartGenerator creates a new chart generator.
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// GenerateSequenceChart draws one bar per element, labelled by position,
// with a marker line at the average.
func (g *ChartGenerator) GenerateSequenceChart(seq sequence.Sequence, average float64, width int) string {
	if len(seq) == 0 {
		return ""
	}

	labels := make([]string, len(seq))
	values := make([]float64, len(seq))
	for i, v := range seq {
		labels[i] = "#" + strconv.Itoa(i+1)
		values[i] = float64(v)
	}

	var sb strings.Builder
	sb.WriteString(g.GenerateBarChart(labels, values, width))
	sb.WriteString(fmt.Sprintf("%*s │ avg %s\n", g.maxLabelLen(labels), "", strconv.FormatFloat(average, 'f', 2, 64)))
	return sb.String()
}

// GenerateBarChart generates a simple horizontal bar chart.
// Negative values are drawn as empty bars.
func (g *ChartGenerator) GenerateBarChart(labels []string, values []float64, width int) string {
	if len(labels) != len(values) || len(labels) == 0 {
		return ""
	}

	_, max := g.minMax(values)
	if max <= 0 {
		max = 1
	}

	maxLabelLen := g.maxLabelLen(labels)

	var sb strings.Builder
	barWidth := width - maxLabelLen - 10
	if barWidth < 10 {
		barWidth = 10
	}

	for i, label := range labels {
		value := values[i]
		barLength := 0
		if value > 0 {
			barLength = int(value / max * float64(barWidth))
		}
		bar := strings.Repeat("█", barLength)
		sb.WriteString(fmt.Sprintf("%*s │%s%s %s\n",
			maxLabelLen, label, bar, strings.Repeat(" ", barWidth-barLength),
			strconv.FormatFloat(value, 'f', -1, 64)))
	}

	return sb.String()
}

func (g *ChartGenerator) maxLabelLen(labels []string) int {
	n := 0
	for _, l := range labels {
		if len(l) > n {
			n = len(l)
		}
	}
	return n
}

// minMax finds the minimum and maximum values in a slice.
func (g *ChartGenerator) minMax(values []float64) (float64, float64) {
	min := math.Inf(1)
	max := math.Inf(-1)

	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if math.IsInf(min, 1) || math.IsInf(max, -1) {
		return 0, 1
	}

	return min, max
}
