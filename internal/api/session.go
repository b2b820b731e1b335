package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkvote-app/linkvote/internal/domain"
	"github.com/linkvote-app/linkvote/internal/infra/validate"
)

// handleGetSession returns the session projection for the wearer's UI,
// including the read-only lock view.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "mainToken")

	info, err := s.client.SessionAuth(r.Context(), token)
	if err != nil {
		log.Printf("[api] session auth for token failed: %v", err)
		writeError(w, http.StatusInternalServerError, "session could not be resolved")
		return
	}
	session, err := s.client.GetSession(r.Context(), info.SessionID)
	if err != nil {
		log.Printf("[api] fetch session %s failed: %v", info.SessionID, err)
		writeError(w, http.StatusInternalServerError, "session could not be fetched")
		return
	}

	view := domain.Strip(session.Raw)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"config":  view,
	})
}

// handlePatchSession shallow-merges a partial update into the session's
// config/metadata/data and persists the result. Fields absent from the body
// are retained; nested objects are replaced wholesale.
func (s *Server) handlePatchSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "mainToken")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := validate.Check(validate.SessionPatch, body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid session patch: "+err.Error())
		return
	}
	var partial domain.Sections
	if err := json.Unmarshal(body, &partial); err != nil {
		writeError(w, http.StatusBadRequest, "invalid session patch")
		return
	}

	info, err := s.client.SessionAuth(r.Context(), token)
	if err != nil {
		log.Printf("[api] session auth for token failed: %v", err)
		writeError(w, http.StatusInternalServerError, "session could not be resolved")
		return
	}
	session, err := s.client.GetSession(r.Context(), info.SessionID)
	if err != nil {
		log.Printf("[api] fetch session %s failed: %v", info.SessionID, err)
		writeError(w, http.StatusInternalServerError, "session could not be fetched")
		return
	}

	current := domain.Strip(session.Raw).Sections()
	merged := domain.Merge(current, partial)

	patch := domain.SessionPatch{
		Config:   merged.Config,
		Metadata: merged.Metadata,
		Data:     merged.Data,
	}
	if err := s.client.PatchSession(r.Context(), info.SessionID, patch); err != nil {
		log.Printf("[api] patch session %s failed: %v", info.SessionID, err)
		writeError(w, http.StatusInternalServerError, "session could not be updated")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Configuration updated successfully",
	})
}
