package core

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the worksheet name used for XLSX exports.
const ExportSheetName = "Data"

// WriteCSV writes headers and rows as comma-separated text.
func WriteCSV(w io.Writer, headers []string, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(headers))
	for i, row := range rows {
		for j, h := range headers {
			record[j] = row[h]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes headers and rows to a single-sheet workbook.
// Cells are written as text so values round-trip exactly.
func WriteXLSX(w io.Writer, headers []string, rows []Row) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close() // nothing on disk to release
	}()

	// NewFile always starts with a single default sheet.
	if err := f.SetSheetName(f.GetSheetList()[0], ExportSheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := setRow(f, 1, headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(headers))
	for i, row := range rows {
		for j, h := range headers {
			record[j] = row[h]
		}
		if err := setRow(f, i+2, record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(ExportSheetName, cell, &cells)
}
