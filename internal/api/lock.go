package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// handleToggleFreeze flips the lock's frozen state for the session resolved
// from the wearer token.
func (s *Server) handleToggleFreeze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		writeError(w, http.StatusBadRequest, "missing token")
		return
	}

	info, err := s.client.SessionAuth(r.Context(), body.Token)
	if err != nil {
		log.Printf("[api] session auth for token failed: %v", err)
		writeError(w, http.StatusInternalServerError, "session could not be resolved")
		return
	}
	if err := s.gateway.ToggleFreeze(r.Context(), info.SessionID); err != nil {
		log.Printf("[api] toggle freeze for %s failed: %v", info.SessionID, err)
		writeError(w, http.StatusInternalServerError, "toggle freeze failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "ToggleFreeze action successfully processed",
	})
}
