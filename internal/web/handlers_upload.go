package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/csvview/internal/core"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// multipartOverhead allows for form boundaries and headers on top of the file.
const multipartOverhead = 1 << 20

// handleUpload ingests the posted file into the caller's session.
// Browsers are redirected to the page, which shows the outcome; JSON clients
// get the view-model or an error body.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			err = fmt.Errorf("%w: %w", errFileTooLarge, err)
		} else {
			err = fmt.Errorf("%w: %v", errNoFile, err)
		}
		s.rejectUpload(w, r, sess, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.rejectUpload(w, r, sess, errNoFile)
		return
	}
	defer file.Close()

	if header.Size > s.cfg.Upload.MaxFileSize {
		s.rejectUpload(w, r, sess, fmt.Errorf("%w: %d bytes exceeds %d", errFileTooLarge, header.Size, s.cfg.Upload.MaxFileSize))
		return
	}

	err = s.service.IngestUpload(r.Context(), sess, header.Filename, header.Size, file)
	s.ingestDone(w, r, sess, err)
}

// handleSample loads the bundled sample dataset into the caller's session.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	err := s.service.LoadSample(r.Context(), sess)
	s.ingestDone(w, r, sess, err)
}

// rejectUpload records a failure that happened before the service ran, so
// the page can show it, and answers the request.
func (s *Server) rejectUpload(w http.ResponseWriter, r *http.Request, sess *core.Session, err error) {
	sess.Fail(err)
	s.ingestDone(w, r, sess, err)
}

// ingestDone answers an ingestion request. The service has already recorded
// the outcome on the session.
func (s *Server) ingestDone(w http.ResponseWriter, r *http.Request, sess *core.Session, err error) {
	if wantsJSON(r) {
		if err != nil {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, sess.View())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
