package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ctxCheckInterval is how many records are parsed between context checks.
const ctxCheckInterval = 1024

var (
	// ErrInvalidFileType is returned for files whose name does not end in .csv.
	ErrInvalidFileType = errors.New("invalid file type: expected a .csv file")

	// ErrEmptyFile is returned when the stream holds no header row.
	ErrEmptyFile = errors.New("empty file: no header row found")
)

// ParseError reports a structural problem in the CSV text.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid csv: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("invalid csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CheckFileName rejects names that do not carry the .csv extension.
func CheckFileName(name string) error {
	if !strings.HasSuffix(name, ".csv") {
		return fmt.Errorf("%q: %w", name, ErrInvalidFileType)
	}
	return nil
}

// ParseCSV reads a comma-delimited stream whose first record is the header.
// Empty lines are skipped; every other record must have as many fields as the
// header. A malformed stream yields a *ParseError and no dataset.
//
// If src.Size is zero it is filled with the number of bytes read.
func ParseCSV(ctx context.Context, r io.Reader, src SourceInfo) (*Dataset, error) {
	body, counter := wrapForIngest(r)

	cr := csv.NewReader(body)
	cr.Comma = ','
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, toParseError(err)
	}
	headers := uniqueHeaders(header)

	var rows []Row
	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}

		row := make(Row, len(headers))
		for i, h := range headers {
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}

	if src.Size == 0 {
		src.Size = counter.BytesRead()
	}
	return &Dataset{Headers: headers, Rows: rows, Source: src}, nil
}

func toParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}

// uniqueHeaders makes header names unique by suffixing repeats with _1, _2, ...
// A blank header cell is named after its position (column_1, column_2, ...),
// so every column can be addressed by the controls.
func uniqueHeaders(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = "column_" + strconv.Itoa(i+1)
		}
		name := h
		for n := 1; seen[name]; n++ {
			name = h + "_" + strconv.Itoa(n)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}
