// Package export writes meter readings to spreadsheets
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"dhmeter/host/meter"
)

// TimeLayout is the format of the time column
const TimeLayout = "2006-01-02 15:04:05.000"

var headers = []string{"Time", "Seq", "Mode", "Pulses", "Ticks", "Hz", "Gate (ms)", "Missed"}

// Workbook collects readings on a single sheet
type Workbook struct {
	f     *excelize.File
	sheet string
	row   int
}

// NewWorkbook creates a workbook whose last column holds the derived
// value labelled with unit
func NewWorkbook(sheet, unit string) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	w := &Workbook{f: f, sheet: sheet, row: 1}
	if err := w.setRow(append(append([]interface{}{}, toAny(headers)...), unit)); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err == nil {
		last, _ := cellName(len(headers)+1, 1)
		err = f.SetCellStyle(sheet, "A1", last, bold)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	w.row++
	return w, nil
}

// Add appends one reading
func (w *Workbook) Add(r meter.Reading) error {
	err := w.setRow([]interface{}{
		r.Time.Format(TimeLayout),
		r.Seq,
		r.Mode.String(),
		r.Pulses,
		r.Ticks,
		r.Hz,
		r.GateMillis,
		r.Missed,
		r.Derived,
	})
	if err != nil {
		return err
	}
	w.row++
	return nil
}

// Rows returns the number of readings added
func (w *Workbook) Rows() int {
	return w.row - 2
}

// SaveAs writes the workbook to path
func (w *Workbook) SaveAs(path string) error {
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Close releases the workbook
func (w *Workbook) Close() error {
	return w.f.Close()
}

func (w *Workbook) setRow(values []interface{}) error {
	for i, v := range values {
		cell, err := cellName(i+1, w.row)
		if err != nil {
			return err
		}
		if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	return nil
}

func cellName(col, row int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("cell %d,%d: %w", col, row, err)
	}
	return name, nil
}

func toAny(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
