package core

import (
	"reflect"
	"testing"
)

func TestFilterRows(t *testing.T) {
	rows := []Row{
		{"name": "Bob", "city": "Boston"},
		{"name": "Al", "city": "Denver"},
		{"name": "Carla", "city": "Lisbon"},
	}

	tests := []struct {
		name   string
		filter FilterState
		want   []string
	}{
		{
			name:   "column match ignores case",
			filter: FilterState{Column: "name", Query: "bo"},
			want:   []string{"Bob"},
		},
		{
			name:   "column restricts search",
			filter: FilterState{Column: "name", Query: "bon"},
			want:   []string{},
		},
		{
			name:   "all columns",
			filter: FilterState{Column: FilterAllColumns, Query: "BO"},
			want:   []string{"Bob", "Carla"},
		},
		{
			name:   "empty column searches all",
			filter: FilterState{Query: "den"},
			want:   []string{"Al"},
		},
		{
			name:   "empty query keeps everything",
			filter: FilterState{Column: "name"},
			want:   []string{"Bob", "Al", "Carla"},
		},
		{
			name:   "unknown column matches nothing",
			filter: FilterState{Column: "missing", Query: "a"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(FilterRows(rows, tt.filter), "name")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterRows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterRows_Idempotent(t *testing.T) {
	rows := []Row{
		{"v": "apple"},
		{"v": "banana"},
		{"v": "grape"},
		{"v": "pineapple"},
	}
	f := FilterState{Column: "v", Query: "APP"}

	once := FilterRows(rows, f)
	twice := FilterRows(once, f)
	if !reflect.DeepEqual(names(once, "v"), names(twice, "v")) {
		t.Errorf("filter twice = %v, want %v", names(twice, "v"), names(once, "v"))
	}
	if want := []string{"apple", "pineapple"}; !reflect.DeepEqual(names(once, "v"), want) {
		t.Errorf("filter = %v, want %v", names(once, "v"), want)
	}
}

func TestFilterState_Active(t *testing.T) {
	if (FilterState{Column: "a"}).Active() {
		t.Error("Active() = true for empty query")
	}
	if !(FilterState{Query: "x"}).Active() {
		t.Error("Active() = false for non-empty query")
	}
}
