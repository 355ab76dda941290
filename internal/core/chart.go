package core

import (
	"errors"
	"fmt"
)

// DefaultChartItemLimit is the number of rows plotted after a dataset loads.
const DefaultChartItemLimit = 20

// ErrUnknownColumn is returned when a control names a column that is not
// a valid choice for it.
var ErrUnknownColumn = errors.New("unknown column")

// ChartAxisState holds the bar chart controls.
type ChartAxisState struct {
	XAxis     string `json:"xAxis"`
	YAxis     string `json:"yAxis"`
	ItemLimit int    `json:"itemLimit"`
}

// ChartPoint is one bar: a category label and its value.
type ChartPoint struct {
	Category string  `json:"name"`
	Value    float64 `json:"value"`
}

// ChartLimitOptions returns the item limits offered for a dataset of
// rowCount rows: the fixed steps plus "every row".
func ChartLimitOptions(rowCount int) []int {
	opts := []int{20, 50, 100}
	if rowCount > 0 && !containsInt(opts, rowCount) {
		opts = append(opts, rowCount)
	}
	return opts
}

// DefaultAxes derives the initial chart controls for a dataset:
// the first header as category and the first other numeric column as value.
func DefaultAxes(headers, numeric []string, itemLimit int) ChartAxisState {
	if itemLimit <= 0 {
		itemLimit = DefaultChartItemLimit
	}
	st := ChartAxisState{ItemLimit: itemLimit}
	if len(headers) > 0 {
		st.XAxis = headers[0]
	}
	st.YAxis = firstOther(numeric, st.XAxis)
	return st
}

// YAxisOptions lists the numeric columns that may be plotted against xAxis.
func YAxisOptions(numeric []string, xAxis string) []string {
	opts := make([]string, 0, len(numeric))
	for _, n := range numeric {
		if n != xAxis {
			opts = append(opts, n)
		}
	}
	return opts
}

// SelectXAxis sets the category column. When it collides with the value
// column, the value moves to the first other numeric column, or is cleared
// when none exists, so a column is never plotted against itself.
func SelectXAxis(st ChartAxisState, headers, numeric []string, column string) (ChartAxisState, error) {
	if !containsColumn(headers, column) {
		return st, fmt.Errorf("x axis %q: %w", column, ErrUnknownColumn)
	}
	st.XAxis = column
	if st.YAxis == column {
		st.YAxis = firstOther(numeric, column)
	}
	return st, nil
}

// SelectYAxis sets the value column. Only numeric columns other than the
// category column are accepted.
func SelectYAxis(st ChartAxisState, numeric []string, column string) (ChartAxisState, error) {
	if !containsColumn(YAxisOptions(numeric, st.XAxis), column) {
		return st, fmt.Errorf("y axis %q is not an available numeric column: %w", column, ErrUnknownColumn)
	}
	st.YAxis = column
	return st, nil
}

// RepairAxes re-establishes the axis invariants after the dataset changed:
// XAxis is a header, YAxis is a numeric column different from XAxis (or
// empty) and ItemLimit is positive.
func RepairAxes(st ChartAxisState, headers, numeric []string) ChartAxisState {
	if !containsColumn(headers, st.XAxis) {
		st.XAxis = ""
		if len(headers) > 0 {
			st.XAxis = headers[0]
		}
	}
	if st.YAxis == st.XAxis || !containsColumn(numeric, st.YAxis) {
		st.YAxis = firstOther(numeric, st.XAxis)
	}
	if st.ItemLimit <= 0 {
		st.ItemLimit = DefaultChartItemLimit
	}
	return st
}

// Project maps the first ItemLimit rows to chart points. Categories come from
// XAxis (missing -> ""); values are parsed from YAxis and default to 0 when a
// cell is not a number. Without a value column the series is empty.
func Project(rows []Row, st ChartAxisState) []ChartPoint {
	if st.YAxis == "" {
		return []ChartPoint{}
	}
	limit := st.ItemLimit
	if limit <= 0 || limit > len(rows) {
		limit = len(rows)
	}

	points := make([]ChartPoint, limit)
	for i, row := range rows[:limit] {
		v, _ := ParseNumber(row.Get(st.YAxis))
		points[i] = ChartPoint{Category: row.Get(st.XAxis), Value: v}
	}
	return points
}

func firstOther(columns []string, exclude string) string {
	for _, c := range columns {
		if c != exclude {
			return c
		}
	}
	return ""
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
