package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// handleDebug writes a debug log entry on the session and applies a doubled
// time adjustment, for manual testing against a live lock.
func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string `json:"sessionId"`
		Time      int    `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId")
		return
	}

	if err := s.gateway.LogEntry(r.Context(), body.SessionID, "Debug", "Used API debug endpoint."); err != nil {
		log.Printf("[api] debug log entry for %s failed: %v", body.SessionID, err)
	}
	if err := s.gateway.SetTime(r.Context(), body.SessionID, body.Time*2); err != nil {
		log.Printf("[api] debug set time for %s failed: %v", body.SessionID, err)
		writeError(w, http.StatusInternalServerError, "time adjustment failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleDebugEvents lists recent webhook deliveries from the journal.
func (s *Server) handleDebugEvents(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		writeError(w, http.StatusNotFound, "journal disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.journal.Recent(limit)
	if err != nil {
		log.Printf("[api] journal query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "journal query failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"events":  entries,
	})
}

// handleResetTrigger manually runs the daily votes reset, for testing.
func (s *Server) handleResetTrigger(w http.ResponseWriter, r *http.Request) {
	if err := s.resetJob.Run(r.Context()); err != nil {
		log.Printf("[api] manual reset failed: %v", err)
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Daily votes reset executed",
	})
}
