package report

import (
	"fmt"
	"io"

	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/pipeline"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the XLSX export
const (
	SheetCentrality   = "Centrality"
	SheetInteractions = "Interactions"
	SheetSummary      = "Summary"
)

// NewWorkbook builds a workbook with the centrality table, the interaction
// list and a run summary. The caller must Close it.
func NewWorkbook(r *pipeline.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetCentrality); err != nil {
		f.Close()
		return nil, err
	}
	for _, sheet := range []string{SheetInteractions, SheetSummary} {
		if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := writeCentralitySheet(f, r); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeInteractionsSheet(f, r); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummarySheet(f, r); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeCentralitySheet(f *excelize.File, r *pipeline.Report) error {
	proteins := r.RankedProteins()
	header := make([]any, 0, len(proteins)+1)
	header = append(header, "Metric")
	for _, p := range proteins {
		header = append(header, p)
	}
	if err := f.SetSheetRow(SheetCentrality, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, metric := range algorithms.AllMetrics {
		scores, ok := r.Centralities[string(metric)]
		_, failed := r.MetricErrors[string(metric)]
		if !ok && !failed {
			continue
		}
		values := make([]any, 0, len(header))
		values = append(values, string(metric))
		for _, p := range proteins {
			if ok {
				values = append(values, scores[p])
			} else {
				values = append(values, NotAvailable)
			}
		}
		if err := f.SetSheetRow(SheetCentrality, cell(1, row), &values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeInteractionsSheet(f *excelize.File, r *pipeline.Report) error {
	if err := f.SetSheetRow(SheetInteractions, "A1", &[]any{"ProteinA", "ProteinB"}); err != nil {
		return err
	}
	for i, e := range r.Interactions {
		if err := f.SetSheetRow(SheetInteractions, cell(1, i+2), &[]any{e.A, e.B}); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r *pipeline.Report) error {
	rows := [][]any{
		{"Run", r.RunID},
		{"Protein", r.ProteinID},
		{"Source", r.Source.String()},
		{"Proteins", r.Statistics.NodeCount},
		{"Interactions", r.Statistics.EdgeCount},
		{"Components", r.Statistics.ComponentCount},
		{"Triangles", r.Triangles},
		{"Average clustering", r.AverageClustering},
		{"Created", r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")},
	}
	for _, metric := range algorithms.AllMetrics {
		if msg, ok := r.MetricErrors[string(metric)]; ok {
			rows = append(rows, []any{"Error: " + string(metric), msg})
		}
	}
	for i, values := range rows {
		if err := f.SetSheetRow(SheetSummary, cell(1, i+1), &values); err != nil {
			return err
		}
	}
	return nil
}

func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		// col and row are always positive here
		panic(fmt.Sprintf("report: invalid cell %d,%d: %v", col, row, err))
	}
	return name
}

// WriteXLSX writes the workbook to w.
func WriteXLSX(w io.Writer, r *pipeline.Report) error {
	f, err := NewWorkbook(r)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path.
func SaveXLSX(path string, r *pipeline.Report) error {
	f, err := NewWorkbook(r)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
