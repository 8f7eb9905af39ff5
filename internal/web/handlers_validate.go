package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/xovate/csvcheck/internal/core"
)

// handleValidate accepts a multipart CSV upload under the "file" field and
// returns the validation report as JSON. Files that cannot be ingested at
// all (wrong type, empty, unparseable) are rejected with 400; rule
// violations are reported inside a 200 response with status "fail".
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondError(w, r, errors.New("file too large or invalid form"), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errors.New("no file provided"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		respondError(w, r, errors.New("only csv uploads are supported"), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	result, err := s.service.ValidateCSV(r.Context(), header.Filename, data)
	if err != nil {
		respondError(w, r, err, statusForValidateError(err))
		return
	}

	writeJSON(w, r, result)
}

// statusForValidateError picks the HTTP status for a failed validation call.
// Ingestion problems are client errors; saturation maps to 429.
func statusForValidateError(err error) int {
	switch {
	case errors.Is(err, core.ErrTooManyValidations):
		return http.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		// Ingestion failures (empty file, missing header, invalid csv)
		// are client errors.
		return http.StatusBadRequest
	}
}
