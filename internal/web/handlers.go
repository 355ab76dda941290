package web

import (
	"net/http"

	"github.com/JonMunkholm/csvview/internal/core"
	"github.com/JonMunkholm/csvview/internal/logging"
	"github.com/JonMunkholm/csvview/internal/web/templates"
)

// handlePage renders the application page for the caller's session.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	vm := session(r).View()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := templates.Page(vm).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleView returns the view-model as JSON.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, session(r).View())
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status        string                     `json:"status"`
	Sessions      int                        `json:"sessions"`
	SessionStates map[core.SessionStatus]int `json:"sessionStates"`
	Ingest        core.UploadLimiterStatus   `json:"ingest"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Sessions:      s.service.Sessions().Len(),
		SessionStates: s.service.Sessions().StatusCounts(),
		Ingest:        s.service.UploadLimiterStatus(),
	})
}

// handleSort applies the header-click rule to the posted column.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	column := r.FormValue("column")
	s.respondAction(w, r, "sort", session(r).ToggleSort(column))
}

// handleFilter replaces the filter; an empty column means all columns.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	column := r.FormValue("column")
	query := r.FormValue("query")
	s.respondAction(w, r, "filter", session(r).SetFilter(column, query))
}

func (s *Server) handlePageSize(w http.ResponseWriter, r *http.Request) {
	size, ok := formInt(r, "size")
	if !ok {
		s.respondAction(w, r, "page-size", core.ErrInvalidPageSize)
		return
	}
	s.respondAction(w, r, "page-size", session(r).SetPageSize(size))
}

// handleGoToPage jumps to the typed page. Invalid input keeps the current
// page and is not an error.
func (s *Server) handleGoToPage(w http.ResponseWriter, r *http.Request) {
	page, ok := session(r).GoToPage(r.FormValue("page"))
	if !ok {
		logging.FromContext(r.Context()).Debug("page input rejected", "input", r.FormValue("page"), "page", page)
	}
	s.respondView(w, r)
}

func (s *Server) handleNextPage(w http.ResponseWriter, r *http.Request) {
	s.respondAction(w, r, "next-page", session(r).NextPage())
}

func (s *Server) handlePrevPage(w http.ResponseWriter, r *http.Request) {
	s.respondAction(w, r, "prev-page", session(r).PrevPage())
}

func (s *Server) handleChartX(w http.ResponseWriter, r *http.Request) {
	s.respondAction(w, r, "chart-x", session(r).SetXAxis(r.FormValue("column")))
}

func (s *Server) handleChartY(w http.ResponseWriter, r *http.Request) {
	s.respondAction(w, r, "chart-y", session(r).SetYAxis(r.FormValue("column")))
}

func (s *Server) handleChartLimit(w http.ResponseWriter, r *http.Request) {
	limit, ok := formInt(r, "limit")
	if !ok {
		s.respondAction(w, r, "chart-limit", core.ErrInvalidItemLimit)
		return
	}
	s.respondAction(w, r, "chart-limit", session(r).SetChartLimit(limit))
}
