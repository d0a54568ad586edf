package export

import (
	"fitu/dashboard/internal/domain"
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the roster in XLSX exports.
const SheetName = "Roster"

// WriteRosterXLSX writes the roster as a single-sheet workbook.
func WriteRosterXLSX(w io.Writer, students []domain.StudentProfile) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("WARN: closing xlsx workbook: %v", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	for i, p := range students {
		if err := setRow(f, i+2, row(p)); err != nil {
			return err
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", n, err)
	}
	return nil
}
