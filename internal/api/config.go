package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkvote-app/linkvote/internal/infra/validate"
)

// handleGetConfig returns the partner configuration for a config token.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "configToken")

	config, err := s.client.GetConfiguration(r.Context(), token)
	if err != nil {
		log.Printf("[api] get configuration failed: %v", err)
		writeError(w, http.StatusInternalServerError, "configuration could not be fetched")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"config":  config,
	})
}

// handleSetConfig replaces the partner configuration for a config token.
func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "configToken")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := validate.Check(validate.ConfigUpdate, body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid configuration: "+err.Error())
		return
	}
	var payload struct {
		Config map[string]any `json:"config"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid configuration")
		return
	}

	if err := s.client.UpdateConfiguration(r.Context(), token, payload.Config); err != nil {
		log.Printf("[api] update configuration failed: %v", err)
		writeError(w, http.StatusInternalServerError, "configuration could not be saved")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"res":     map[string]any{"success": true},
	})
}
