package api

import (
	"net/http"

	"github.com/dgallion1/docoutline/internal/render"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.orchestrator.Stats()
	if stats == nil {
		jsonError(w, "stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = render.WriteJSON(w, map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"documents":   stats.Snapshot(),
	})
}
