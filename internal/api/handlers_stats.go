package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleParserStats(w http.ResponseWriter, r *http.Request) {
	parser := s.orchestrator.ParserClient()
	if parser == nil || parser.Stats == nil {
		jsonError(w, "parser stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       parser.Stats.Snapshot(),
	})
}
