// Package export writes normalized nights to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/normalizer"
	"github.com/xuri/excelize/v2"
)

const (
	SleepsSheet  = "Sleeps"
	SummarySheet = "Summary"
)

var sleepHeaders = []string{
	"date", "duration", "duration_min", "mean_hr", "bedtime", "waketime", "score", "bedtime_full", "waketime_full",
}

// WriteXLSX renders the batch as a workbook with one row per night and a
// summary sheet. Missing values are left as empty cells.
func WriteXLSX(w io.Writer, data domain.NormalizedData) error {
	f, err := build(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path.
func SaveXLSX(path string, data domain.NormalizedData) error {
	f, err := build(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func build(data domain.NormalizedData) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SleepsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, h := range sleepHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SleepsSheet, cell, h); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header %s: %w", cell, err)
		}
	}

	for r, rec := range data.Sleeps {
		for c, v := range row(rec) {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(SleepsSheet, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := writeSummary(f, data); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// row returns the cell values in header order; nil marks a missing value.
func row(r domain.NormalizedSleepRecord) []any {
	values := []any{r.Date, nil, nil, nil, nil, nil, nil, nil, nil}
	if r.Duration != nil {
		values[1] = *r.Duration
	}
	if r.DurationMinutes != nil {
		values[2] = *r.DurationMinutes
	}
	if r.MeanHeartRate != nil {
		values[3] = *r.MeanHeartRate
	}
	if r.Bedtime != nil {
		values[4] = *r.Bedtime
	}
	if r.Waketime != nil {
		values[5] = *r.Waketime
	}
	if r.Score != nil {
		values[6] = *r.Score
	}
	if r.BedtimeFull != nil {
		values[7] = r.BedtimeFull.String()
	}
	if r.WaketimeFull != nil {
		values[8] = r.WaketimeFull.String()
	}
	return values
}

func writeSummary(f *excelize.File, data domain.NormalizedData) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	report := normalizer.Summarize(data.Sleeps)
	rows := [][]any{
		{"firstname", data.User.FirstName},
		{"lastname", data.User.LastName},
		{"records", report.Records},
		{"complete", report.Complete},
		{"duration_unparsed", report.DurationUnparsed},
		{"date_unparsed", report.DateUnparsed},
		{"times_unresolved", report.TimesUnresolved},
	}
	for i, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return nil
}
