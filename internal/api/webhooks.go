package api

import (
	"io"
	"log"
	"net/http"

	"github.com/linkvote-app/linkvote/internal/infra/journal"
)

// handleWebhook receives platform webhooks. The platform expects a 200
// regardless of internal outcome (anything else triggers retry storms), so
// the acknowledgment is unconditional and failures surface only in logs.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		log.Printf("[api] WARNING: unreadable webhook body: %v", err)
		writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
		return
	}

	result := s.dispatcher.Handle(r.Context(), body)

	if s.journal != nil {
		entry := journal.Entry{
			Event:      result.Event,
			ActionType: result.ActionType,
			SessionID:  result.SessionID,
			Outcome:    result.Outcome,
			Penalty:    result.Penalty,
		}
		if result.Err != nil {
			entry.Error = result.Err.Error()
		}
		if _, err := s.journal.Record(entry); err != nil {
			log.Printf("[api] journal record failed: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}
