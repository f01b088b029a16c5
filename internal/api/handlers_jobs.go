package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/aaerminer/internal/discover"
	"github.com/dgallion1/aaerminer/internal/docindex"
)

// handleDiscover fetches the release index page and registers every
// discovered document with the index.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if r.Body != nil {
		// Body is optional; an empty body uses the configured index URL.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	indexURL := req.URL
	if indexURL == "" {
		indexURL = s.cfg.IndexURL
	}

	page, err := s.orchestrator.Fetcher().Fetch(r.Context(), indexURL)
	if err != nil {
		jsonError(w, "fetch index: "+err.Error(), http.StatusBadGateway)
		return
	}

	releases, err := discover.ParseIndex(bytes.NewReader(page), indexURL)
	if err != nil {
		jsonError(w, "parse index: "+err.Error(), http.StatusBadGateway)
		return
	}

	docs := make([]docindex.Doc, 0, len(releases))
	for _, rel := range releases {
		docs = append(docs, docindex.Doc{
			DocID:       rel.ReleaseNo,
			URL:         rel.URL,
			Respondents: rel.Respondents,
		})
	}
	if len(docs) > 0 {
		if err := s.orchestrator.IndexClient().Register(r.Context(), docs); err != nil {
			jsonError(w, "register documents: "+err.Error(), http.StatusBadGateway)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"index_url":  indexURL,
		"discovered": len(docs),
	})
}

// handleScrape pulls pending documents from the index and queues an
// extraction job for each.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Limit int `json:"limit"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Limit <= 0 || req.Limit > s.cfg.MaxQueueSize {
		req.Limit = s.cfg.MaxQueueSize
	}

	pending, err := s.orchestrator.IndexClient().ListPending(r.Context(), req.Limit)
	if err != nil {
		jsonError(w, "list pending: "+err.Error(), http.StatusBadGateway)
		return
	}

	var jobs []map[string]any
	for _, doc := range pending {
		job := s.orchestrator.NewJob(doc.DocID, doc.URL)
		if err := s.orchestrator.Submit(job); err != nil {
			jobs = append(jobs, map[string]any{
				"doc_id": doc.DocID,
				"error":  err.Error(),
			})
			continue
		}
		jobs = append(jobs, map[string]any{
			"job_id":   job.ID,
			"doc_id":   job.DocID,
			"url":      job.URL,
			"status":   job.Status,
			"poll_url": fmt.Sprintf("/api/jobs/%s/status", job.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": jobs})
}

// handleExtract accepts a direct PDF upload and queues it, bypassing the
// fetch phase.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	job := s.orchestrator.NewJob(docID, filename)
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s/status", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	resp := map[string]any{
		"job_id":   snap.ID,
		"doc_id":   snap.DocID,
		"url":      snap.URL,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	}
	if result := job.Result(); result != nil {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
