package core

import (
	"math"
	"strconv"
	"strings"
)

// NumericThreshold is the default share of values that must parse as numbers
// for a column to count as numeric.
const NumericThreshold = 0.8

// ParseNumber parses a cell as a finite float64.
// Empty or whitespace-only cells, NaN and infinities are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ClassifyNumeric returns, in header order, the columns where at least
// threshold of the rows hold a number. A threshold outside (0, 1] falls back
// to NumericThreshold. An empty dataset has no numeric columns.
func ClassifyNumeric(rows []Row, headers []string, threshold float64) []string {
	if len(rows) == 0 {
		return nil
	}
	if threshold <= 0 || threshold > 1 {
		threshold = NumericThreshold
	}

	var numeric []string
	total := float64(len(rows))
	for _, h := range headers {
		count := 0
		for _, row := range rows {
			if _, ok := ParseNumber(row.Get(h)); ok {
				count++
			}
		}
		if float64(count)/total >= threshold {
			numeric = append(numeric, h)
		}
	}
	return numeric
}
