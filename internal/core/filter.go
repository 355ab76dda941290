package core

import "strings"

// FilterAllColumns is the filter column value that searches every cell.
const FilterAllColumns = "all"

// FilterState holds the table filter controls.
type FilterState struct {
	Column string `json:"column"`
	Query  string `json:"query"`
}

// Active reports whether the filter removes anything.
func (f FilterState) Active() bool {
	return f.Query != ""
}

// FilterRows returns the rows whose cells contain the query, ignoring case.
// With Column == FilterAllColumns any cell may match; otherwise only the
// named column is checked. Order is preserved and an empty query keeps all rows.
func FilterRows(rows []Row, f FilterState) []Row {
	if !f.Active() {
		return rows
	}

	q := strings.ToLower(f.Query)
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if rowMatches(row, f.Column, q) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row Row, column, lowerQuery string) bool {
	if column == FilterAllColumns || column == "" {
		for _, v := range row {
			if strings.Contains(strings.ToLower(v), lowerQuery) {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(row.Get(column)), lowerQuery)
}
