package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/csvview/internal/core"
)

// Title is the document title of the main page.
const Title = "CSV Visualizer"

// Page renders the whole application for vm.
func Page(vm core.ViewModel) templ.Component {
	return Layout(Title, component(func(ctx context.Context, h *writer) {
		h.raw(`<header><h1>`)
		h.text(Title)
		h.raw(`</h1><p class="muted">Upload a CSV file to visualize and analyze your data</p></header>`)

		if vm.Error != nil {
			h.render(ctx, ErrorAlert(vm.Error.Message, vm.Error.Action, vm.Error.Code))
		}
		h.render(ctx, Uploader(vm))

		switch {
		case vm.Loading:
			h.raw(`<section class="card loading" aria-busy="true"><p>Loading file…</p>`)
			h.raw(`<p><a href="/">Refresh</a></p></section>`)
		case vm.HasData:
			h.render(ctx, FileInfo(vm))
			h.render(ctx, DataTable(vm))
			h.render(ctx, ChartPanel(vm))
		}
	}))
}

// Uploader renders the file picker and the sample button.
func Uploader(vm core.ViewModel) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.raw(`<section class="card uploader">`)
		h.raw(`<form method="post" action="/upload" enctype="multipart/form-data">`)
		h.raw(`<label for="file">Choose a CSV file</label>`)
		h.raw(`<input type="file" id="file" name="file" accept=".csv" required`)
		if vm.Loading {
			h.raw(` disabled`)
		}
		h.raw(`><button type="submit">Upload</button></form>`)
		h.raw(`<form method="post" action="/sample"><button type="submit" class="secondary"`)
		if vm.Loading {
			h.raw(` disabled`)
		}
		h.raw(`>Load sample data</button></form></section>`)
	})
}

// FileInfo renders the loaded file's name, size and first rows.
func FileInfo(vm core.ViewModel) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.raw(`<section class="card file-info"><h2>`)
		h.text(vm.Source.FileName)
		h.raw(`</h2><p class="muted">`)
		h.text(strconv.FormatFloat(vm.Source.SizeKB(), 'f', 2, 64))
		h.rawf(` KB · %d rows · %d columns`, vm.RowCount, len(vm.Columns))
		if vm.Source.Sample {
			h.raw(` · sample data`)
		}
		h.raw(`</p>`)

		h.raw(`<details><summary>Preview</summary><div class="scroll"><table class="preview"><thead><tr>`)
		for _, c := range vm.Columns {
			h.raw(`<th>`)
			h.text(c.Name)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, row := range vm.Preview {
			writeRow(h, vm.Columns, row)
		}
		h.raw(`</tbody></table></div></details>`)
		h.raw(`<p class="exports"><a href="/export.csv">Export CSV</a> <a href="/export.xlsx">Export XLSX</a></p>`)
		h.raw(`</section>`)
	})
}

// DataTable renders the filter, the sortable table and pagination.
func DataTable(vm core.ViewModel) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.raw(`<section class="card table-panel"><h2>Data Table</h2>`)

		h.raw(`<div class="toolbar"><form method="post" action="/filter" class="filter">`)
		h.raw(`<select name="column" aria-label="Filter column">`)
		option(h, core.FilterAllColumns, "All columns", vm.Filter.Column == core.FilterAllColumns || vm.Filter.Column == "")
		for _, c := range vm.Columns {
			option(h, c.Name, c.Name, vm.Filter.Column == c.Name)
		}
		h.raw(`</select><input type="search" name="query" placeholder="Filter..."`)
		h.attr("value", vm.Filter.Query)
		h.raw(`><button type="submit">Filter</button></form>`)

		h.raw(`<form method="post" action="/page-size" class="page-size"><label>Rows per page: `)
		h.raw(`<select name="size" onchange="this.form.submit()">`)
		for _, n := range vm.PageSizeOptions {
			option(h, strconv.Itoa(n), strconv.Itoa(n), n == vm.Page.PageSize)
		}
		h.raw(`</select></label><noscript><button type="submit">Apply</button></noscript></form></div>`)

		h.raw(`<div class="scroll"><table class="data"><thead><tr>`)
		for _, c := range vm.Columns {
			h.raw(`<th><form method="post" action="/sort"><button type="submit" name="column" class="sort"`)
			h.attr("value", c.Name)
			h.raw(`>`)
			h.text(c.Name)
			switch c.Sort {
			case core.SortAscending:
				h.raw(` ↑`)
			case core.SortDescending:
				h.raw(` ↓`)
			}
			h.raw(`</button></form></th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		if len(vm.Page.Rows) == 0 {
			h.rawf(`<tr><td colspan="%d" class="empty">No results found</td></tr>`, max(1, len(vm.Columns)))
		}
		for _, row := range vm.Page.Rows {
			writeRow(h, vm.Columns, row)
		}
		h.raw(`</tbody></table></div>`)

		h.render(ctx, Pagination(vm.Page))
		h.raw(`</section>`)
	})
}

// Pagination renders the row range, page jump and prev/next buttons.
func Pagination(p core.Page) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.raw(`<nav class="pagination" aria-label="Pagination"><span class="muted">`)
		h.rawf(`Showing %d to %d of %d entries`, p.First, p.Last, p.TotalRows)
		h.raw(`</span>`)

		h.raw(`<form method="post" action="/page/prev"><button type="submit"`)
		if !p.HasPrev() {
			h.raw(` disabled`)
		}
		h.raw(`>Previous</button></form>`)

		h.raw(`<form method="post" action="/page" class="page-jump"><input type="text" name="page" inputmode="numeric" size="4" aria-label="Page number"`)
		h.attr("value", strconv.Itoa(p.CurrentPage))
		h.rawf(`><span class="muted"> of %d</span></form>`, p.TotalPages)

		h.raw(`<form method="post" action="/page/next"><button type="submit"`)
		if !p.HasNext() {
			h.raw(` disabled`)
		}
		h.raw(`>Next</button></form></nav>`)
	})
}

// ChartPanel renders the axis controls and the chart image.
func ChartPanel(vm core.ViewModel) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		cv := vm.Chart
		if !cv.Available {
			return
		}
		h.raw(`<section class="card chart-panel"><h2>Bar Chart Visualization</h2>`)
		h.raw(`<p class="muted">Visualize your data with a bar chart</p><div class="chart-controls">`)

		h.raw(`<form method="post" action="/chart/x"><label>X-Axis (Category) <select name="column" onchange="this.form.submit()">`)
		for _, c := range cv.XOptions {
			option(h, c, c, c == cv.XAxis)
		}
		h.raw(`</select></label><noscript><button type="submit">Apply</button></noscript></form>`)

		h.raw(`<form method="post" action="/chart/y"><label>Y-Axis (Value) <select name="column" onchange="this.form.submit()"`)
		if len(cv.YOptions) == 0 {
			h.raw(` disabled`)
		}
		h.raw(`>`)
		if len(cv.YOptions) == 0 {
			h.raw(`<option value="" disabled selected>No numeric columns available</option>`)
		}
		for _, c := range cv.YOptions {
			option(h, c, c, c == cv.YAxis)
		}
		h.raw(`</select></label><noscript><button type="submit">Apply</button></noscript></form>`)

		h.raw(`<form method="post" action="/chart/limit"><label>Items <select name="limit" onchange="this.form.submit()">`)
		for _, n := range cv.LimitOptions {
			option(h, strconv.Itoa(n), strconv.Itoa(n), n == cv.ItemLimit)
		}
		h.raw(`</select></label><noscript><button type="submit">Apply</button></noscript></form></div>`)

		switch {
		case cv.NoNumericColumns:
			h.raw(`<p class="notice">No numeric columns detected in your data. Charts require numeric data.</p>`)
		case cv.YAxis == "":
			h.raw(`<p class="notice">The only numeric column is the category axis. Pick another X-Axis column to plot values.</p>`)
		default:
			h.raw(`<img class="chart" src="/chart.svg" alt="Bar chart of `)
			h.text(cv.YAxis)
			h.raw(` by `)
			h.text(cv.XAxis)
			h.raw(`">`)
		}
		h.raw(`</section>`)
	})
}

func option(h *writer, value, label string, selected bool) {
	h.raw(`<option`)
	h.attr("value", value)
	if selected {
		h.raw(` selected`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</option>`)
}

func writeRow(h *writer, columns []core.ColumnView, row core.Row) {
	h.raw(`<tr>`)
	for _, c := range columns {
		if c.Numeric {
			h.raw(`<td class="num">`)
		} else {
			h.raw(`<td>`)
		}
		h.text(row.Get(c.Name))
		h.raw(`</td>`)
	}
	h.raw(`</tr>`)
}
