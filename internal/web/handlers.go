package web

import (
	"net/http"

	"github.com/xovate/csvcheck/internal/core"
)

// handleIndex serves the embedded upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// healthResponse is the body returned by the health endpoint.
type healthResponse struct {
	Status      string             `json:"status"`
	Validations core.LimiterStatus `json:"validations"`
}

// handleHealthz reports service liveness and validation concurrency.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, healthResponse{
		Status:      "ok",
		Validations: s.service.LimiterStatus(),
	})
}
