// Package reset implements the daily quota check: sessions that missed
// their quota are penalized, and every session's daily counter is zeroed.
package reset

import (
	"context"
	"fmt"
	"log"

	"github.com/linkvote-app/linkvote/internal/app/game"
	"github.com/linkvote-app/linkvote/internal/app/lockops"
	"github.com/linkvote-app/linkvote/internal/domain"
	"github.com/linkvote-app/linkvote/internal/infra/chaster"
	"github.com/linkvote-app/linkvote/internal/infra/metrics"
)

// Job scans all locked sessions under the extension and applies the daily
// reset to each.
type Job struct {
	client        chaster.Client
	gateway       *lockops.Gateway
	extensionSlug string
}

// NewJob creates a reset Job.
func NewJob(client chaster.Client, gateway *lockops.Gateway, extensionSlug string) *Job {
	return &Job{client: client, gateway: gateway, extensionSlug: extensionSlug}
}

// Run executes one reset pass. Sessions are independent units of work: a
// failure on one is logged and counted, and the loop continues with the
// next. Run only fails outright when the session search itself fails.
func (j *Job) Run(ctx context.Context) error {
	log.Printf("[reset] searching for locked sessions")
	metrics.ResetRuns.Inc()

	sessions, err := j.client.SearchSessions(ctx, chaster.SearchCriteria{
		Status:        "locked",
		ExtensionSlug: j.extensionSlug,
	})
	if err != nil {
		metrics.RemoteErrors.WithLabelValues("search_sessions").Inc()
		return fmt.Errorf("search sessions: %w", err)
	}

	for i := range sessions {
		if err := j.resetSession(ctx, &sessions[i]); err != nil {
			metrics.ResetSessionFailures.Inc()
			log.Printf("[reset] session %s failed: %v", sessions[i].SessionID, err)
		}
	}
	log.Printf("[reset] processed %d sessions", len(sessions))
	return nil
}

// resetSession penalizes a missed quota, zeroes the daily counter, rebuilds
// metadata from only its schema fields, and persists in a single patch.
func (j *Job) resetSession(ctx context.Context, session *domain.Session) error {
	cfg := session.Config
	data := session.Data

	if data.Votes.Today < cfg.DailyQuota {
		missing := cfg.DailyQuota - data.Votes.Today
		penaltySeconds := int(float64(missing) * cfg.PunishMult * 3600)
		log.Printf("[reset] session %s missed quota: %d of %d, adding %ds penalty",
			session.SessionID, data.Votes.Today, cfg.DailyQuota, penaltySeconds)
		if err := j.gateway.SetTime(ctx, session.SessionID, penaltySeconds); err != nil {
			metrics.RemoteErrors.WithLabelValues("do_action").Inc()
			return fmt.Errorf("apply penalty: %w", err)
		}
	}

	data.Votes.Today = 0

	patch := domain.SessionPatch{
		Config:   cfg,
		Metadata: game.CleanMetadata(session.Metadata),
		Data:     data,
	}
	if err := j.client.PatchSession(ctx, session.SessionID, patch); err != nil {
		metrics.RemoteErrors.WithLabelValues("patch_session").Inc()
		return fmt.Errorf("patch session: %w", err)
	}
	return nil
}
