// Package report renders analysis reports as terminal tables, spreadsheets
// and JSON documents.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/pipeline"
)

// Placeholder shown in place of the scores of a failed metric
const NotAvailable = "n/a"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	metricStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// TableOptions controls the centrality table
type TableOptions struct {
	Precision int      // digits after the decimal point; 0 means 4
	Proteins  []string // column subset; empty means every protein
}

func (o TableOptions) precision() int {
	if o.Precision <= 0 {
		return 4
	}
	return o.Precision
}

// Rows returns the centrality table as plain strings: a header row naming
// the proteins, ranked by the report's primary metric, then one row per metric in display order. A failed metric
// gets NotAvailable in every protein column.
func Rows(r *pipeline.Report, opts TableOptions) (header []string, rows [][]string) {
	proteins := opts.Proteins
	if len(proteins) == 0 {
		proteins = r.RankedProteins()
	}

	header = append([]string{"Metric"}, proteins...)
	for _, metric := range algorithms.AllMetrics {
		scores, ok := r.Centralities[string(metric)]
		if !ok {
			if _, failed := r.MetricErrors[string(metric)]; !failed {
				continue
			}
		}
		row := make([]string, 0, len(header))
		row = append(row, string(metric))
		for _, p := range proteins {
			if !ok {
				row = append(row, NotAvailable)
				continue
			}
			row = append(row, strconv.FormatFloat(scores[p], 'f', opts.precision(), 64))
		}
		rows = append(rows, row)
	}
	return header, rows
}

// Table renders the centrality table with metrics as rows and proteins as
// columns.
func Table(r *pipeline.Report, opts TableOptions) string {
	header, rows := Rows(r, opts)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return metricStyle
			case row >= 0 && row < len(rows) && rows[row][col] == NotAvailable:
				return failedStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

// Summary renders the run header and any metric failures.
func Summary(r *pipeline.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", r.ProteinID, r.Source)))
	b.WriteString("\n")

	line := func(label, value string) {
		b.WriteString(labelStyle.Render(label + ": "))
		b.WriteString(value)
		b.WriteString("\n")
	}
	line("Run", r.RunID)
	if r.PrimaryMetric != "" {
		line("Ranked by", string(r.PrimaryMetric))
	}
	line("Proteins", strconv.Itoa(r.Statistics.NodeCount))
	line("Interactions", strconv.Itoa(r.Statistics.EdgeCount))
	line("Components", strconv.Itoa(r.Statistics.ComponentCount))
	line("Triangles", strconv.Itoa(r.Triangles))
	line("Average clustering", strconv.FormatFloat(r.AverageClustering, 'f', 4, 64))

	for _, metric := range algorithms.AllMetrics {
		if msg, ok := r.MetricErrors[string(metric)]; ok {
			b.WriteString(failedStyle.UnsetPadding().Render("Error computing " + string(metric) + ": " + msg))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Legend explains each centrality measure in one line.
func Legend() string {
	var b strings.Builder
	for _, metric := range algorithms.AllMetrics {
		b.WriteString(labelStyle.Render(string(metric) + ": "))
		b.WriteString(metric.Description())
		b.WriteString("\n")
	}
	return b.String()
}

// WriteTable writes the summary, the centrality table and the legend.
func WriteTable(w io.Writer, r *pipeline.Report, opts TableOptions) error {
	if _, err := io.WriteString(w, Summary(r)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n\n%s", Table(r, opts), Legend())
	return err
}
