package events

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/linkvote-app/linkvote/internal/app/game"
	"github.com/linkvote-app/linkvote/internal/app/lockops"
	"github.com/linkvote-app/linkvote/internal/domain"
	"github.com/linkvote-app/linkvote/internal/infra/chaster"
	"github.com/linkvote-app/linkvote/internal/infra/metrics"
)

// Result summarizes one handled webhook for the journal. Err is informational:
// the webhook is acknowledged regardless, failures surface only in logs.
type Result struct {
	Event      string
	ActionType string
	SessionID  string
	Outcome    string
	Penalty    int
	Err        error
}

// Dispatcher routes inbound webhook events to their handlers. It is
// stateless; every call is independent.
type Dispatcher struct {
	client   chaster.Client
	gateway  *lockops.Gateway
	selector *game.Selector
}

// NewDispatcher creates a Dispatcher with an injected client, gateway and
// outcome selector.
func NewDispatcher(client chaster.Client, gateway *lockops.Gateway, selector *game.Selector) *Dispatcher {
	return &Dispatcher{client: client, gateway: gateway, selector: selector}
}

// Handle decodes and processes one webhook body. It never returns a fatal
// condition to the HTTP layer: unknown events are logged and treated as
// successful no-ops so the platform never retries.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) Result {
	ev, err := Parse(body)
	if err != nil {
		log.Printf("[events] WARNING: malformed webhook body: %v", err)
		return Result{Event: "malformed", Err: err}
	}

	metrics.WebhookEvents.WithLabelValues(ev.EventName()).Inc()

	switch e := ev.(type) {
	case SessionCreated:
		res := Result{Event: e.EventName(), SessionID: e.SessionID}
		if err := d.sessionCreated(ctx, e); err != nil {
			log.Printf("[events] session.created for %s failed: %v", e.SessionID, err)
			res.Err = err
		}
		return res

	case LinkTimeChanged:
		metrics.ActionLogs.WithLabelValues(ActionLinkTimeChanged).Inc()
		res := Result{Event: e.EventName(), ActionType: ActionLinkTimeChanged, SessionID: e.SessionID}
		outcome, penalty, err := d.linkTimeChanged(ctx, e)
		res.Outcome = outcome
		res.Penalty = penalty
		if err != nil {
			log.Printf("[events] link_time_changed for %s failed: %v", e.SessionID, err)
			res.Err = err
		}
		return res

	case Acknowledged:
		metrics.ActionLogs.WithLabelValues(e.Type).Inc()
		log.Printf("[events] %s for session %s: acknowledged, no action", e.Type, e.SessionID)
		return Result{Event: e.EventName(), ActionType: e.Type, SessionID: e.SessionID}

	case Unrecognized:
		if e.Type != "" {
			log.Printf("[events] WARNING: no handler for action log type %q", e.Type)
		} else {
			log.Printf("[events] WARNING: no handler for event %q", e.Event)
		}
		return Result{Event: e.Event, ActionType: e.Type}

	default:
		return Result{}
	}
}

// sessionCreated seeds the new session's metadata: the default unlock-blocking
// reasons, and the default home actions with their badge set to the daily
// quota. A quota of zero retains whatever home actions already exist.
func (d *Dispatcher) sessionCreated(ctx context.Context, e SessionCreated) error {
	session, err := d.client.GetSession(ctx, e.SessionID)
	if err != nil {
		metrics.RemoteErrors.WithLabelValues("get_session").Inc()
		return fmt.Errorf("fetch session: %w", err)
	}

	meta := domain.Metadata{
		ReasonsPreventingUnlocking: domain.DefaultReasonsPreventingUnlocking(),
		HomeActions:                session.Metadata.HomeActions,
	}
	if quota := session.Config.DailyQuota; quota > 0 {
		actions := domain.DefaultHomeActions()
		for i := range actions {
			actions[i].Badge = strconv.Itoa(quota)
		}
		meta.HomeActions = actions
	}

	patch := domain.SessionPatch{
		Config:   session.Config,
		Metadata: meta,
		Data:     session.Data,
	}
	if err := d.client.PatchSession(ctx, e.SessionID, patch); err != nil {
		metrics.RemoteErrors.WithLabelValues("patch_session").Inc()
		return fmt.Errorf("patch session: %w", err)
	}
	log.Printf("[events] initialized metadata for session %s", e.SessionID)
	return nil
}

// outcomeLog carries the flavor text written to the session's action log.
type outcomeLog struct {
	title       string
	description string
}

func flavorFor(outcome, username string) (outcomeLog, bool) {
	switch outcome {
	case domain.OutcomeInvert:
		return outcomeLog{"Mouse slip", fmt.Sprintf("%s clearly hit the wrong button.", username)}, true
	case domain.OutcomeDouble:
		return outcomeLog{"Lucky vote", fmt.Sprintf("Critical vote by %s. It counts twice!", username)}, true
	case domain.OutcomeDoubleInvert:
		return outcomeLog{"This doesn't look right...", fmt.Sprintf("Invalid vote by %s. It has been corrected.", username)}, true
	case domain.OutcomeJackpot:
		return outcomeLog{"Jackpot!", fmt.Sprintf("%s hit the Jackpot! Vote was multiplied by 10!", username)}, true
	}
	return outcomeLog{}, false
}

// linkTimeChanged runs the voting flow: fetch state, select an outcome,
// record the vote, persist, then push the time adjustment and log entry.
// The "nothing" outcome records the vote only.
func (d *Dispatcher) linkTimeChanged(ctx context.Context, e LinkTimeChanged) (string, int, error) {
	session, err := d.client.GetSession(ctx, e.SessionID)
	if err != nil {
		metrics.RemoteErrors.WithLabelValues("get_session").Inc()
		return "", 0, fmt.Errorf("fetch session: %w", err)
	}

	outcome := d.selector.Pick(session.Config.Difficulty)
	metrics.Outcomes.WithLabelValues(outcome).Inc()
	penalty := game.Penalty(outcome, e.Duration, session.Config.PunishMult)
	log.Printf("[events] vote on session %s by %s: outcome=%s penalty=%ds",
		e.SessionID, e.Username, outcome, penalty)

	data, meta := game.ApplyVote(session.Config, session.Data, session.Metadata)
	patch := domain.SessionPatch{
		Config:   session.Config,
		Metadata: game.CleanMetadata(meta),
		Data:     data,
	}
	if err := d.client.PatchSession(ctx, e.SessionID, patch); err != nil {
		metrics.RemoteErrors.WithLabelValues("patch_session").Inc()
		return outcome, penalty, fmt.Errorf("patch session: %w", err)
	}

	flavor, ok := flavorFor(outcome, e.Username)
	if !ok {
		// neutral or unknown outcome: the vote is recorded, nothing else
		return outcome, penalty, nil
	}

	if err := d.gateway.LogEntry(ctx, e.SessionID, flavor.title, flavor.description); err != nil {
		metrics.RemoteErrors.WithLabelValues("log_custom_action").Inc()
		return outcome, penalty, fmt.Errorf("create log entry: %w", err)
	}
	if err := d.gateway.SetTime(ctx, e.SessionID, penalty); err != nil {
		metrics.RemoteErrors.WithLabelValues("do_action").Inc()
		return outcome, penalty, fmt.Errorf("set time: %w", err)
	}
	metrics.PenaltySeconds.Observe(absSeconds(penalty))
	return outcome, penalty, nil
}

func absSeconds(n int) float64 {
	if n < 0 {
		return float64(-n)
	}
	return float64(n)
}
