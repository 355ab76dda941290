package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/csvview/internal/chart"
	"github.com/JonMunkholm/csvview/internal/core"
	"github.com/JonMunkholm/csvview/internal/logging"
)

// handleChartSVG renders the chart projection of the current view.
func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	vm := session(r).View()
	log := logging.FromContext(r.Context())

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")

	msg := ""
	switch {
	case !vm.HasData:
		msg = "No data loaded"
	case !vm.Chart.Available:
		msg = "Charts need at least two columns"
	case vm.Chart.NoNumericColumns:
		msg = "No numeric columns detected in your data"
	}
	if msg == "" {
		title := fmt.Sprintf("%s by %s", vm.Chart.YAxis, vm.Chart.XAxis)
		err := chart.RenderSVG(w, vm.Chart.Points, chart.Options{Title: title, YName: vm.Chart.YAxis})
		if err == nil {
			return
		}
		if !errors.Is(err, chart.ErrNoData) {
			log.Error("render chart", "error", err)
		}
		msg = "Nothing to plot"
	}
	if err := chart.Placeholder(w, msg); err != nil {
		log.Error("write chart placeholder", "error", err)
	}
}

// handleExportCSV downloads the sorted and filtered rows as CSV.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	headers, rows, err := session(r).VisibleRows()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(session(r).Dataset(), ".csv"))
	if err := core.WriteCSV(w, headers, rows); err != nil {
		logging.FromContext(r.Context()).Error("export csv", "error", err)
	}
}

// handleExportXLSX downloads the sorted and filtered rows as a workbook.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	headers, rows, err := session(r).VisibleRows()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(session(r).Dataset(), ".xlsx"))
	if err := core.WriteXLSX(w, headers, rows); err != nil {
		logging.FromContext(r.Context()).Error("export xlsx", "error", err)
	}
}

// attachment builds a Content-Disposition value named after the source file.
func attachment(ds *core.Dataset, ext string) string {
	name := "export"
	if ds != nil && ds.Source.FileName != "" {
		name = strings.TrimSuffix(ds.Source.FileName, ".csv")
	}
	name = strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 {
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf(`attachment; filename="%s%s"`, name, ext)
}
