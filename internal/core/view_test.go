package core

import (
	"reflect"
	"testing"
)

func peopleDataset() *Dataset {
	return &Dataset{
		Headers: []string{"name", "age", "score"},
		Rows: []Row{
			{"name": "Bob", "age": "30", "score": "7"},
			{"name": "Al", "age": "25", "score": "9"},
			{"name": "Cy", "age": "41", "score": "x"},
			{"name": "Di", "age": "35", "score": "8"},
			{"name": "Ed", "age": "28", "score": "6"},
		},
		Source: SourceInfo{FileName: "people.csv", Size: 2048},
	}
}

func TestBuildView_NoDataset(t *testing.T) {
	st := DefaultViewState(nil, nil, DefaultViewOptions())

	vm, _ := BuildView(nil, nil, st)
	if vm.HasData {
		t.Error("HasData = true without a dataset")
	}
	if vm.Page.CurrentPage != 1 || vm.Page.TotalPages != 1 {
		t.Errorf("page %d of %d, want 1 of 1", vm.Page.CurrentPage, vm.Page.TotalPages)
	}
}

func TestBuildView_Defaults(t *testing.T) {
	ds := peopleDataset()
	numeric := ClassifyNumeric(ds.Rows, ds.Headers, NumericThreshold)
	st := DefaultViewState(ds.Headers, numeric, DefaultViewOptions())

	vm, next := BuildView(ds, numeric, st)

	if !vm.HasData || vm.RowCount != 5 {
		t.Errorf("HasData, RowCount = %v, %d, want true, 5", vm.HasData, vm.RowCount)
	}
	if want := []string{"age", "score"}; !reflect.DeepEqual(vm.NumericColumns, want) {
		t.Errorf("NumericColumns = %v, want %v", vm.NumericColumns, want)
	}
	if !vm.Columns[1].Numeric || vm.Columns[0].Numeric {
		t.Errorf("Columns = %+v, want only age and score numeric", vm.Columns)
	}
	if vm.Filter.Column != FilterAllColumns {
		t.Errorf("Filter.Column = %q, want %q", vm.Filter.Column, FilterAllColumns)
	}
	if vm.Chart.XAxis != "name" || vm.Chart.YAxis != "age" {
		t.Errorf("chart axes = %q/%q, want name/age", vm.Chart.XAxis, vm.Chart.YAxis)
	}
	if !vm.Chart.Available {
		t.Error("Chart.Available = false")
	}
	if len(vm.Chart.Points) != 5 {
		t.Errorf("len(Points) = %d, want 5", len(vm.Chart.Points))
	}
	if next.Pagination.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", next.Pagination.PageSize, DefaultPageSize)
	}
	for i, c := range vm.Columns {
		if c.Name != ds.Headers[i] {
			t.Errorf("Columns[%d] = %q, want %q", i, c.Name, ds.Headers[i])
		}
	}
}

func TestBuildView_ClampsPageAfterFilter(t *testing.T) {
	ds := peopleDataset()
	numeric := ClassifyNumeric(ds.Rows, ds.Headers, NumericThreshold)
	st := DefaultViewState(ds.Headers, numeric, DefaultViewOptions())
	st.Pagination = PaginationState{PageSize: 2, CurrentPage: 3}
	st.Filter = FilterState{Column: "name", Query: "b"}

	vm, next := BuildView(ds, numeric, st)
	if vm.Page.TotalRows != 1 {
		t.Fatalf("TotalRows = %d, want 1", vm.Page.TotalRows)
	}
	if vm.Page.CurrentPage != 1 || next.Pagination.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d (state %d), want 1", vm.Page.CurrentPage, next.Pagination.CurrentPage)
	}
}

func TestBuildView_ChartUsesSortedUnfilteredRows(t *testing.T) {
	ds := peopleDataset()
	numeric := ClassifyNumeric(ds.Rows, ds.Headers, NumericThreshold)
	st := DefaultViewState(ds.Headers, numeric, DefaultViewOptions())
	st.Sort = &SortState{Key: "age", Direction: SortDescending}
	st.Filter = FilterState{Column: "name", Query: "al"}
	st.Chart.ItemLimit = 2

	vm, _ := BuildView(ds, numeric, st)

	if got := names(vm.Page.Rows, "name"); !reflect.DeepEqual(got, []string{"Al"}) {
		t.Errorf("table rows = %v, want [Al]", got)
	}
	want := []ChartPoint{{Category: "Cy", Value: 41}, {Category: "Di", Value: 35}}
	if !reflect.DeepEqual(vm.Chart.Points, want) {
		t.Errorf("Points = %v, want %v", vm.Chart.Points, want)
	}
	if vm.Columns[1].Sort != SortDescending {
		t.Errorf("age column sort = %q, want descending", vm.Columns[1].Sort)
	}
}

func TestBuildView_RepairsAxes(t *testing.T) {
	ds := peopleDataset()
	numeric := ClassifyNumeric(ds.Rows, ds.Headers, NumericThreshold)
	st := DefaultViewState(ds.Headers, numeric, DefaultViewOptions())
	st.Chart = ChartAxisState{XAxis: "gone", YAxis: "gone"}

	vm, next := BuildView(ds, numeric, st)
	if next.Chart.XAxis != "name" || next.Chart.YAxis != "age" || next.Chart.ItemLimit != DefaultChartItemLimit {
		t.Errorf("repaired chart = %+v", next.Chart)
	}
	if want := []string{"age", "score"}; !reflect.DeepEqual(vm.Chart.YOptions, want) {
		t.Errorf("YOptions = %v, want %v", vm.Chart.YOptions, want)
	}
}

func TestBuildView_SingleColumn(t *testing.T) {
	ds := &Dataset{Headers: []string{"only"}, Rows: []Row{{"only": "1"}}}
	numeric := ClassifyNumeric(ds.Rows, ds.Headers, NumericThreshold)

	vm, _ := BuildView(ds, numeric, DefaultViewState(ds.Headers, numeric, DefaultViewOptions()))
	if vm.Chart.Available {
		t.Error("Chart.Available = true for one column")
	}
	if vm.Chart.YAxis != "" || len(vm.Chart.Points) != 0 {
		t.Errorf("chart = %+v, want no value column", vm.Chart)
	}
}

func TestBuildView_PreviewLimited(t *testing.T) {
	ds := &Dataset{Headers: []string{"id"}, Rows: makeRows(PreviewRows + 5)}

	vm, _ := BuildView(ds, nil, DefaultViewState(ds.Headers, nil, DefaultViewOptions()))
	if len(vm.Preview) != PreviewRows {
		t.Errorf("len(Preview) = %d, want %d", len(vm.Preview), PreviewRows)
	}
	if !vm.Chart.NoNumericColumns {
		t.Error("NoNumericColumns = false for a dataset without numbers")
	}
}

func TestVisibleRows(t *testing.T) {
	ds := peopleDataset()
	st := ViewState{
		Sort:   &SortState{Key: "name", Direction: SortAscending},
		Filter: FilterState{Column: FilterAllColumns, Query: "d"},
	}

	got := names(VisibleRows(ds, st), "name")
	if want := []string{"Di", "Ed"}; !reflect.DeepEqual(got, want) {
		t.Errorf("VisibleRows() = %v, want %v", got, want)
	}
	if VisibleRows(nil, st) != nil {
		t.Error("VisibleRows(nil) != nil")
	}
}
