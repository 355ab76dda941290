package core

// Row is one parsed CSV record keyed by header name.
// Rows with missing keys are tolerated; a missing cell reads as "".
type Row map[string]string

// Get returns the value stored under column, or "" when the row has no such key.
func (r Row) Get(column string) string {
	return r[column]
}

// SourceInfo describes where a dataset came from.
type SourceInfo struct {
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Sample   bool   `json:"sample"`
}

// SizeKB returns the source size in kilobytes for display.
func (s SourceInfo) SizeKB() float64 {
	return float64(s.Size) / 1024
}

// Dataset is the immutable result of ingesting one CSV file.
// A new ingestion replaces the dataset wholesale.
type Dataset struct {
	Headers []string
	Rows    []Row
	Source  SourceInfo
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// HasColumn reports whether column is one of the dataset headers.
func (d *Dataset) HasColumn(column string) bool {
	if d == nil {
		return false
	}
	return containsColumn(d.Headers, column)
}

// containsColumn checks if target exists in columns.
func containsColumn(columns []string, target string) bool {
	for _, c := range columns {
		if c == target {
			return true
		}
	}
	return false
}
