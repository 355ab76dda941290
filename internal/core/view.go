package core

// PreviewRows is the number of rows shown in the ingestion preview.
const PreviewRows = 10

// ViewOptions are the defaults applied whenever a dataset is (re)loaded.
type ViewOptions struct {
	PageSize         int
	ChartItemLimit   int
	NumericThreshold float64
}

// DefaultViewOptions returns the built-in view defaults.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		PageSize:         DefaultPageSize,
		ChartItemLimit:   DefaultChartItemLimit,
		NumericThreshold: NumericThreshold,
	}
}

// ViewState is the complete set of user controls for one dataset.
type ViewState struct {
	Sort       *SortState      `json:"sort,omitempty"`
	Filter     FilterState     `json:"filter"`
	Pagination PaginationState `json:"pagination"`
	Chart      ChartAxisState  `json:"chart"`
}

// DefaultViewState returns the controls a freshly loaded dataset starts with.
func DefaultViewState(headers, numeric []string, opts ViewOptions) ViewState {
	pageSize := opts.PageSize
	if !ValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	return ViewState{
		Filter:     FilterState{Column: FilterAllColumns},
		Pagination: PaginationState{PageSize: pageSize, CurrentPage: 1},
		Chart:      DefaultAxes(headers, numeric, opts.ChartItemLimit),
	}
}

// ColumnView describes one table column header.
type ColumnView struct {
	Name    string        `json:"name"`
	Sort    SortDirection `json:"sort,omitempty"`
	Numeric bool          `json:"numeric"`
}

// ChartView is everything the chart renderer and its controls need.
type ChartView struct {
	// Available is false for datasets with fewer than two columns.
	Available        bool         `json:"available"`
	XAxis            string       `json:"xAxis"`
	YAxis            string       `json:"yAxis"`
	ItemLimit        int          `json:"itemLimit"`
	XOptions         []string     `json:"xOptions"`
	YOptions         []string     `json:"yOptions"`
	LimitOptions     []int        `json:"limitOptions"`
	NoNumericColumns bool         `json:"noNumericColumns"`
	Points           []ChartPoint `json:"points"`
}

// ViewModel is the display-ready projection of a dataset.
type ViewModel struct {
	Loading         bool         `json:"loading"`
	HasData         bool         `json:"hasData"`
	Source          SourceInfo   `json:"source"`
	RowCount        int          `json:"rowCount"`
	Columns         []ColumnView `json:"columns"`
	NumericColumns  []string     `json:"numericColumns"`
	Preview         []Row        `json:"preview"`
	Sort            *SortState   `json:"sort,omitempty"`
	Filter          FilterState  `json:"filter"`
	Page            Page         `json:"page"`
	PageSizeOptions []int        `json:"pageSizeOptions"`
	Chart           ChartView    `json:"chart"`
	Error           *UserMessage `json:"error,omitempty"`
}

// VisibleRows runs the table stages (sort then filter) and returns the rows
// an export of the current view contains, all pages included.
func VisibleRows(ds *Dataset, st ViewState) []Row {
	if ds == nil {
		return nil
	}
	return FilterRows(SortRows(ds.Rows, st.Sort), st.Filter)
}

// BuildView runs the whole pipeline for ds under st:
// sort, filter, paginate for the table; repair axes and project for the chart.
// The returned state carries the clamped page and repaired axes; callers
// holding state store it back.
func BuildView(ds *Dataset, numeric []string, st ViewState) (ViewModel, ViewState) {
	vm := ViewModel{
		Sort:            st.Sort,
		Filter:          st.Filter,
		PageSizeOptions: PageSizeOptions,
	}
	if ds == nil {
		vm.Page = Paginate([]Row{}, st.Pagination.PageSize, 1)
		return vm, st
	}

	vm.HasData = true
	vm.Source = ds.Source
	vm.RowCount = len(ds.Rows)
	vm.NumericColumns = numeric
	vm.Columns = make([]ColumnView, len(ds.Headers))
	for i, h := range ds.Headers {
		vm.Columns[i] = ColumnView{
			Name:    h,
			Sort:    st.Sort.Indicator(h),
			Numeric: containsColumn(numeric, h),
		}
	}
	vm.Preview = append([]Row{}, ds.Rows[:min(PreviewRows, len(ds.Rows))]...)

	sorted := SortRows(ds.Rows, st.Sort)
	filtered := FilterRows(sorted, st.Filter)
	vm.Page = Paginate(filtered, st.Pagination.PageSize, st.Pagination.CurrentPage)
	st.Pagination.CurrentPage = vm.Page.CurrentPage
	st.Pagination.PageSize = vm.Page.PageSize

	st.Chart = RepairAxes(st.Chart, ds.Headers, numeric)
	vm.Chart = ChartView{
		Available:        len(ds.Headers) > 1,
		XAxis:            st.Chart.XAxis,
		YAxis:            st.Chart.YAxis,
		ItemLimit:        st.Chart.ItemLimit,
		XOptions:         ds.Headers,
		YOptions:         YAxisOptions(numeric, st.Chart.XAxis),
		LimitOptions:     ChartLimitOptions(len(ds.Rows)),
		NoNumericColumns: len(numeric) == 0,
		Points:           Project(sorted, st.Chart),
	}
	return vm, st
}
