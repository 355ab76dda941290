package core

import (
	"slices"
	"strings"
)

// SortDirection is the order applied by the sort stage.
type SortDirection string

const (
	SortNone       SortDirection = ""
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

// SortState selects the column and direction of the table sort.
// A nil *SortState keeps ingestion order.
type SortState struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
}

// SortRows returns rows ordered by the state's key using plain string
// comparison ("10" sorts before "2"). Equal values keep their input order.
// The input slice is never modified.
func SortRows(rows []Row, state *SortState) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	if state == nil {
		return out
	}

	key := state.Key
	desc := state.Direction == SortDescending
	slices.SortStableFunc(out, func(a, b Row) int {
		c := strings.Compare(a.Get(key), b.Get(key))
		if desc {
			return -c
		}
		return c
	})
	return out
}

// ToggleSort returns the state after the user selects column.
// Selecting the current column flips the direction; a new column starts ascending.
func ToggleSort(current *SortState, column string) *SortState {
	if current != nil && current.Key == column {
		next := SortAscending
		if current.Direction == SortAscending {
			next = SortDescending
		}
		return &SortState{Key: column, Direction: next}
	}
	return &SortState{Key: column, Direction: SortAscending}
}

// Indicator returns the direction shown next to column's header.
func (s *SortState) Indicator(column string) SortDirection {
	if s == nil || s.Key != column {
		return SortNone
	}
	return s.Direction
}
