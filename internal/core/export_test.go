package core

import (
	"bytes"
	"encoding/csv"
	"io"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func exportFixture() ([]string, []Row) {
	headers := []string{"name", "note", "amount"}
	rows := []Row{
		{"name": "Bob", "note": "likes, commas", "amount": "0012"},
		{"name": "Al", "note": "says \"hi\"", "amount": "3.50"},
		{"name": "Cy"},
	}
	return headers, rows
}

func TestWriteCSV(t *testing.T) {
	headers, rows := exportFixture()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, headers, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	want := [][]string{
		{"name", "note", "amount"},
		{"Bob", "likes, commas", "0012"},
		{"Al", "says \"hi\"", "3.50"},
		{"Cy", "", ""},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %q, want %q", records, want)
	}
}

func TestWriteCSV_Reparses(t *testing.T) {
	headers, rows := exportFixture()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, headers, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	ds, err := ParseCSV(t.Context(), &buf, SourceInfo{FileName: "export.csv"})
	if err != nil {
		t.Fatalf("ParseCSV(export) error = %v", err)
	}
	if !reflect.DeepEqual(ds.Headers, headers) {
		t.Errorf("Headers = %v, want %v", ds.Headers, headers)
	}
	if ds.Rows[1].Get("note") != `says "hi"` {
		t.Errorf("note = %q", ds.Rows[1].Get("note"))
	}
}

func TestWriteXLSX(t *testing.T) {
	headers, rows := exportFixture()

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, headers, rows); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	got := readXLSX(t, &buf)
	// Trailing empty cells are dropped by the row iterator.
	want := [][]string{
		{"name", "note", "amount"},
		{"Bob", "likes, commas", "0012"},
		{"Al", "says \"hi\"", "3.50"},
		{"Cy"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %q, want %q", got, want)
	}
}

// readXLSX returns every row of the workbook's only sheet, which must be
// named ExportSheetName.
func readXLSX(t *testing.T, r io.Reader) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(r)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{ExportSheetName}) {
		t.Fatalf("sheets = %v, want [%s]", got, ExportSheetName)
	}

	iter, err := f.Rows(ExportSheetName)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	defer iter.Close()

	var rows [][]string
	for iter.Next() {
		row, err := iter.Columns()
		if err != nil {
			t.Fatalf("Columns() error = %v", err)
		}
		rows = append(rows, row)
	}
	return rows
}
