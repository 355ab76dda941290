package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvview/internal/chart"
	"github.com/JonMunkholm/csvview/internal/config"
	"github.com/JonMunkholm/csvview/internal/core"
	"github.com/JonMunkholm/csvview/internal/logging"
)

type inspectOptions struct {
	sort         string
	desc         bool
	filterColumn string
	filter       string
	pageSize     int
	page         string
	chartX       string
	chartY       string
	chartLimit   int
	chartOut     string
	export       string
}

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#8884D8"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9A9A9A"}
	borderColor = lipgloss.AdaptiveColor{Light: "#555", Dark: "#555"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numStyle    = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	borderStyle = lipgloss.NewStyle().Foreground(borderColor)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

func newInspectCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var o inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect FILE.csv",
		Short: "Print one page of a CSV file and optionally chart or export it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.desc && o.sort == "" {
				return fmt.Errorf("--desc needs --sort to name the column")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runInspect(cmd, cfg, args[0], o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.sort, "sort", "", "column to sort by (ascending)")
	f.BoolVar(&o.desc, "desc", false, "sort descending")
	f.StringVar(&o.filterColumn, "filter-column", core.FilterAllColumns, "column to filter, or \"all\"")
	f.StringVar(&o.filter, "filter", "", "case-insensitive substring to keep")
	f.IntVar(&o.pageSize, "page-size", 0, "rows per page (default from VIEW_PAGE_SIZE)")
	f.StringVar(&o.page, "page", "1", "page to show")
	f.StringVar(&o.chartX, "chart-x", "", "chart category column")
	f.StringVar(&o.chartY, "chart-y", "", "chart value column")
	f.IntVar(&o.chartLimit, "chart-limit", 0, "rows to plot (default from VIEW_CHART_ITEM_LIMIT)")
	f.StringVar(&o.chartOut, "chart-out", "", "write the bar chart to this .svg file")
	f.StringVar(&o.export, "export", "", "write the sorted and filtered rows to this .csv or .xlsx file")
	return cmd
}

func runInspect(cmd *cobra.Command, cfg *config.Config, path string, o inspectOptions) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx).With("file", path)

	if err := core.CheckFileName(filepath.Base(path)); err != nil {
		return userError(err)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	src := core.SourceInfo{FileName: filepath.Base(path)}
	if st, err := f.Stat(); err == nil {
		src.Size = st.Size()
	}

	svc := core.NewService(core.ServiceConfig{
		IngestTimeout: cfg.Upload.Timeout,
		MaxConcurrent: 1,
		View: core.ViewOptions{
			PageSize:         cfg.View.PageSize,
			ChartItemLimit:   cfg.View.ChartItemLimit,
			NumericThreshold: cfg.View.NumericThreshold,
		},
	}, nil)
	sess := svc.Sessions().Create()
	_ = svc.IngestUpload(ctx, sess, src.FileName, src.Size, f)
	if sess.Status() != core.StatusReady {
		return userError(sess.Err())
	}

	if err := applyControls(sess, o); err != nil {
		return userError(err)
	}
	if _, ok := sess.GoToPage(o.page); !ok {
		log.Warn("page out of range, showing current page", "page", o.page)
	}
	st := sess.State()
	log.Debug("controls applied",
		"sort", st.Sort,
		"filter", st.Filter,
		"page", st.Pagination.CurrentPage,
		"page_size", st.Pagination.PageSize,
		"chart", st.Chart,
	)

	vm := sess.View()
	out := cmd.OutOrStdout()
	footer := mutedStyle.Render(fmt.Sprintf("Showing %d to %d of %d entries · page %d of %d",
		vm.Page.First, vm.Page.Last, vm.Page.TotalRows, vm.Page.CurrentPage, vm.Page.TotalPages))
	fmt.Fprintln(out, lipgloss.JoinVertical(lipgloss.Left, summary(vm), renderTable(vm), footer))

	if o.chartOut != "" {
		if err := writeChart(o.chartOut, vm); err != nil {
			return err
		}
		fmt.Fprintf(out, "chart written to %s\n", o.chartOut)
	}
	if o.export != "" {
		if err := writeExport(o.export, sess); err != nil {
			return err
		}
		fmt.Fprintf(out, "rows exported to %s\n", o.export)
	}
	return nil
}

// applyControls replays the flags through the same controls the web view uses.
func applyControls(sess *core.Session, o inspectOptions) error {
	if o.sort != "" {
		if err := sess.ToggleSort(o.sort); err != nil {
			return err
		}
		if o.desc {
			if err := sess.ToggleSort(o.sort); err != nil {
				return err
			}
		}
	}
	if o.filter != "" || o.filterColumn != core.FilterAllColumns {
		if err := sess.SetFilter(o.filterColumn, o.filter); err != nil {
			return err
		}
	}
	if o.pageSize != 0 {
		if err := sess.SetPageSize(o.pageSize); err != nil {
			return err
		}
	}
	if o.chartX != "" {
		if err := sess.SetXAxis(o.chartX); err != nil {
			return err
		}
	}
	if o.chartY != "" {
		if err := sess.SetYAxis(o.chartY); err != nil {
			return err
		}
	}
	if o.chartLimit != 0 {
		if err := sess.SetChartLimit(o.chartLimit); err != nil {
			return err
		}
	}
	return nil
}

func summary(vm core.ViewModel) string {
	lines := []string{
		titleStyle.Render(vm.Source.FileName),
		mutedStyle.Render(fmt.Sprintf("%.2f KB · %d rows · %d columns", vm.Source.SizeKB(), vm.RowCount, len(vm.Columns))),
	}
	if len(vm.NumericColumns) > 0 {
		lines = append(lines, mutedStyle.Render("numeric: "+strings.Join(vm.NumericColumns, ", ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderTable draws the current page with lipgloss.
func renderTable(vm core.ViewModel) string {
	headers := make([]string, len(vm.Columns))
	for i, c := range vm.Columns {
		headers[i] = c.Name
		switch c.Sort {
		case core.SortAscending:
			headers[i] += " ↑"
		case core.SortDescending:
			headers[i] += " ↓"
		}
	}

	rows := make([][]string, 0, len(vm.Page.Rows))
	for _, r := range vm.Page.Rows {
		rec := make([]string, len(vm.Columns))
		for i, c := range vm.Columns {
			rec[i] = r.Get(c.Name)
		}
		rows = append(rows, rec)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col < len(vm.Columns) && vm.Columns[col].Numeric {
				return numStyle
			}
			return cellStyle
		})
	if len(rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, t.String(), mutedStyle.Render("No results found"))
	}
	return t.String()
}

func writeChart(path string, vm core.ViewModel) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = chart.RenderSVG(f, vm.Chart.Points, chart.Options{
		Title: fmt.Sprintf("%s by %s", vm.Chart.YAxis, vm.Chart.XAxis),
		YName: vm.Chart.YAxis,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("chart: %w", err)
	}
	return nil
}

func writeExport(path string, sess *core.Session) error {
	headers, rows, err := sess.VisibleRows()
	if err != nil {
		return err
	}

	var write func(io.Writer, []string, []core.Row) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = core.WriteCSV
	case ".xlsx":
		write = core.WriteXLSX
	default:
		return fmt.Errorf("export %s: unsupported extension, use .csv or .xlsx", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, headers, rows); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}

// userError wraps errors users can act on in a *core.UserError, which
// carries the mapped message, code and suggested action.
func userError(err error) error {
	if !core.IsUserFacing(err) {
		return err
	}
	return core.NewUserError(err)
}
