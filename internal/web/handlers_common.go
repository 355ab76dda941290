package web

// handlers_common.go holds the response helpers shared by the control
// handlers: a successful action answers 303 to the page for browsers and
// the fresh view-model for JSON clients.

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/csvview/internal/core"
	"github.com/JonMunkholm/csvview/internal/logging"
)

// respondView finishes a control request.
func (s *Server) respondView(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, session(r).View())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// respondAction finishes a control request whose action returned err.
// Controls are inert while no dataset is ready, so ErrNotReady is not
// reported to the user.
func (s *Server) respondAction(w http.ResponseWriter, r *http.Request, action string, err error) {
	switch {
	case err == nil:
		logging.FromContext(r.Context()).Debug("control applied", "action", action)
	case errors.Is(err, core.ErrNotReady):
		logging.FromContext(r.Context()).Debug("control ignored, no dataset ready", "action", action)
	default:
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.respondView(w, r)
}

// formString returns a trimmed form value; r.FormValue parses both the
// query string and urlencoded or multipart bodies.
func formString(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// formInt parses a positive integer form value.
func formInt(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(formString(r, name))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
