package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/aaerminer/internal/report"
)

// handleGetResult returns the stored extraction for a document.
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	result, err := s.orchestrator.IndexClient().GetResult(r.Context(), docID)
	if err != nil {
		jsonError(w, "get result: "+err.Error(), http.StatusBadGateway)
		return
	}
	if result == nil {
		jsonError(w, "result not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleGetReport renders the extraction as Markdown, or HTML with
// ?format=html.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	result, err := s.orchestrator.IndexClient().GetResult(r.Context(), docID)
	if err != nil {
		jsonError(w, "get result: "+err.Error(), http.StatusBadGateway)
		return
	}
	if result == nil {
		jsonError(w, "result not found", http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		out, err := report.HTML(*result)
		if err != nil {
			jsonError(w, "render report: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(out))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(report.Markdown(*result)))
}
