// Package export builds Excel workbooks of a caregiver's schedule for the
// marketplace back office.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"carebook/internal/model"
)

// Workbook accumulates sheets of tabular data and writes an .xlsx file.
type Workbook struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{file: excelize.NewFile()}
}

// AddSheet adds a new sheet with the given name and makes it current.
func (w *Workbook) AddSheet(name string) error {
	// Excel caps sheet names at 31 chars.
	if len(name) > 31 {
		name = name[:31]
	}

	if w.currentSheet == "" {
		w.file.SetSheetName("Sheet1", name)
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

// WriteHeader writes bold column headers to the current sheet.
func (w *Workbook) WriteHeader(columns []string) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, col); err != nil {
			return err
		}
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow)
		_ = w.file.SetCellStyle(w.currentSheet, startCell, endCell, style)
	}

	w.currentRow++
	return nil
}

// WriteRow writes a data row to the current sheet.
func (w *Workbook) WriteRow(row []interface{}) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}

	w.currentRow++
	return nil
}

// Save writes the workbook to wr.
func (w *Workbook) Save(wr io.Writer) error {
	return w.file.Write(wr)
}

// Close releases resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// BuildScheduleWorkbook renders the weekly availability template and the
// caregiver's bookings into a two-sheet workbook.
func BuildScheduleWorkbook(avail model.WeeklyAvailability, bookings []model.Booking) (*Workbook, error) {
	w := NewWorkbook()

	if err := w.AddSheet("Weekly Schedule"); err != nil {
		return nil, err
	}
	if err := w.WriteHeader([]string{"Day", "Enabled", "Ranges"}); err != nil {
		return nil, err
	}
	for _, day := range model.Weekdays {
		daily := avail[day]
		if err := w.WriteRow([]interface{}{
			day.Label(),
			daily.Enabled,
			rangesText(daily.Ranges),
		}); err != nil {
			return nil, err
		}
	}

	if err := w.AddSheet("Bookings"); err != nil {
		return nil, err
	}
	if err := w.WriteHeader([]string{"ID", "Date", "Start", "End", "Status"}); err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if err := w.WriteRow([]interface{}{
			b.ID, b.Date, b.StartTime, b.EndTime, string(b.Status),
		}); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func rangesText(ranges []model.TimeRange) string {
	if len(ranges) == 0 {
		return "—"
	}
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.Start.String() + "–" + r.End.String()
	}
	return strings.Join(parts, ", ")
}
