// Package report exports the weight table and recorded runs to Excel
// workbooks.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"dimuplot/internal/catalog"
	"dimuplot/internal/results"
)

const (
	WeightsSheet = "Weights"
	RunsSheet    = "Runs"
	ValuesSheet  = "Values"
)

// workbook wraps a new file whose first sheet is named first.
func workbook(first string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", first); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func save(f *excelize.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func fitCategory(c catalog.Category) string {
	if c == catalog.Exclusive {
		return "exclusive"
	}
	return "dissociative"
}

// WriteWeights writes one row per process: its weight at w.Luminosity,
// its normalization group and its fit category.
func WriteWeights(path string, w catalog.Weights) error {
	f, err := workbook(WeightsSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	groups := catalog.NormProcesses(w)
	cats := catalog.FitProcesses(w)
	rows := [][]any{{"process", "weight", "group", "fit category", "luminosity"}}
	for i, p := range groups {
		rows = append(rows, []any{p.Name, p.Weight, int(p.Category), fitCategory(cats[i].Category), w.Luminosity})
	}
	if err := writeRows(f, WeightsSheet, rows); err != nil {
		return err
	}
	return save(f, path)
}

// WriteRuns writes the runs to one sheet and their values, one per row,
// to a second.
func WriteRuns(path string, runs []*results.Run) error {
	f, err := workbook(RunsSheet)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.NewSheet(ValuesSheet); err != nil {
		return err
	}

	runRows := [][]any{{"id", "command", "distribution", "region", "data file", "started at"}}
	valueRows := [][]any{{"run id", "name", "value"}}
	for _, r := range runs {
		runRows = append(runRows, []any{r.ID, r.Command, r.Distribution, r.Region, r.DataFile, r.StartedAt.UTC().Format(time.RFC3339)})
		for _, name := range r.Names() {
			valueRows = append(valueRows, []any{r.ID, name, r.Values[name]})
		}
	}
	if err := writeRows(f, RunsSheet, runRows); err != nil {
		return err
	}
	if err := writeRows(f, ValuesSheet, valueRows); err != nil {
		return err
	}
	return save(f, path)
}
