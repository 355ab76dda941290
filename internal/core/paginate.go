package core

import (
	"strconv"
	"strings"
)

// DefaultPageSize is the number of table rows per page after a dataset loads.
const DefaultPageSize = 50

// PageSizeOptions are the page sizes offered in the UI.
var PageSizeOptions = []int{10, 25, 50, 100}

// PaginationState holds the pagination controls.
type PaginationState struct {
	PageSize    int `json:"pageSize"`
	CurrentPage int `json:"currentPage"`
}

// Page is one window of the filtered rows.
type Page struct {
	Rows        []Row `json:"rows"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalRows   int   `json:"totalRows"`
	// First and Last are the 1-based positions of the rows on this page,
	// both 0 when the page is empty.
	First int `json:"first"`
	Last  int `json:"last"`
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.CurrentPage < p.TotalPages }

// TotalPages returns ceil(rowCount/pageSize), never less than 1.
func TotalPages(rowCount, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (rowCount + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate slices rows into the requested page. An out-of-range page is
// clamped, so the returned CurrentPage always satisfies 1 <= page <= TotalPages.
func Paginate(rows []Row, pageSize, currentPage int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(rows), pageSize)
	current := ClampPage(currentPage, total)

	start := (current - 1) * pageSize
	end := start + pageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	p := Page{
		Rows:        rows[start:end],
		CurrentPage: current,
		TotalPages:  total,
		PageSize:    pageSize,
		TotalRows:   len(rows),
	}
	if end > start {
		p.First = start + 1
		p.Last = end
	}
	return p
}

// ParsePageInput validates a page number typed by the user.
// It returns the requested page and true only for a base-10 integer in
// [1, totalPages]; otherwise it returns current and false.
func ParsePageInput(input string, current, totalPages int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > totalPages {
		return current, false
	}
	return n, true
}

// MaxPageSize bounds page sizes requested outside the offered options.
const MaxPageSize = 1000

// ValidPageSize reports whether size can be used as a page size.
func ValidPageSize(size int) bool {
	return size > 0 && size <= MaxPageSize
}
