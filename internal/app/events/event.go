// Package events decodes inbound platform webhooks into tagged variants and
// routes them to the voting game.
package events

import (
	"encoding/json"
	"fmt"
)

// Top-level webhook event types.
const (
	EventSessionCreated   = "session.created"
	EventActionLogCreated = "action_log.created"
)

// ActionLinkTimeChanged is the only action log type that changes state:
// someone voted on the wearer's shared link.
const ActionLinkTimeChanged = "link_time_changed"

// acknowledgedActions are action log types the platform sends that we
// recognize but deliberately do not act on.
var acknowledgedActions = map[string]bool{
	"locked":                         true,
	"unlocked":                       true,
	"deserted":                       true,
	"lock_frozen":                    true,
	"lock_unfrozen":                  true,
	"timer_hidden":                   true,
	"timer_revealed":                 true,
	"time_logs_hidden":               true,
	"time_logs_revealed":             true,
	"time_changed":                   true,
	"locktober_points_changed":       true,
	"combination_verified":           true,
	"combination_failed":             true,
	"session_offered":                true,
	"session_accepted":               true,
	"session_rejected":               true,
	"max_limit_date_increased":       true,
	"keyholder_trusted":              true,
	"verification_picture_submitted": true,
	"dice_rolled":                    true,
	"timer_guessed":                  true,
	"pillory_in":                     true,
	"pillory_out":                    true,
	"random_event":                   true,
	"tasks_task_assigned":            true,
	"tasks_vote_ended":               true,
	"tasks_task_completed":           true,
	"tasks_task_failed":              true,
	"temporary_opening_opened":       true,
	"temporary_opening_locked":       true,
	"temporary_opening_locked_late":  true,
	"wheel_of_fortune_turned":        true,
}

// Inbound is a decoded webhook event. Exactly one concrete variant exists
// per recognized event and action type pair, plus Unrecognized as the
// explicit fallback.
type Inbound interface {
	// EventName reports the top-level webhook event type.
	EventName() string
}

// SessionCreated fires when a wearer adds the extension to a lock.
type SessionCreated struct {
	SessionID string
}

func (SessionCreated) EventName() string { return EventSessionCreated }

// LinkTimeChanged fires when a vote lands on the wearer's shared link.
type LinkTimeChanged struct {
	SessionID string
	Duration  int
	Username  string
}

func (LinkTimeChanged) EventName() string { return EventActionLogCreated }

// Acknowledged is a recognized action log type that requires no state change.
type Acknowledged struct {
	SessionID string
	Type      string
}

func (Acknowledged) EventName() string { return EventActionLogCreated }

// Unrecognized is an event or action type nothing here handles. Webhooks
// carrying one are still acknowledged with success.
type Unrecognized struct {
	Event string
	Type  string
}

func (u Unrecognized) EventName() string { return u.Event }

// envelope mirrors the wire shape of a webhook body.
type envelope struct {
	Event     string          `json:"event"`
	SentAt    string          `json:"sentAt"`
	RequestID string          `json:"requestId"`
	Data      json.RawMessage `json:"data"`
}

type sessionCreatedData struct {
	Session struct {
		SessionID string `json:"sessionId"`
	} `json:"session"`
}

type actionLogData struct {
	SessionID string `json:"sessionId"`
	ActionLog struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
		User    *struct {
			Username string `json:"username"`
		} `json:"user"`
	} `json:"actionLog"`
}

// Parse decodes a raw webhook body into its tagged variant.
func Parse(body []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode webhook body: %w", err)
	}

	switch env.Event {
	case EventSessionCreated:
		var data sessionCreatedData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("decode %s data: %w", env.Event, err)
		}
		return SessionCreated{SessionID: data.Session.SessionID}, nil

	case EventActionLogCreated:
		var data actionLogData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("decode %s data: %w", env.Event, err)
		}
		logType := data.ActionLog.Type

		if logType == ActionLinkTimeChanged {
			var payload struct {
				Duration int `json:"duration"`
			}
			if len(data.ActionLog.Payload) > 0 {
				if err := json.Unmarshal(data.ActionLog.Payload, &payload); err != nil {
					return nil, fmt.Errorf("decode %s payload: %w", logType, err)
				}
			}
			username := "Visitor"
			if data.ActionLog.User != nil && data.ActionLog.User.Username != "" {
				username = data.ActionLog.User.Username
			}
			return LinkTimeChanged{
				SessionID: data.SessionID,
				Duration:  payload.Duration,
				Username:  username,
			}, nil
		}

		if acknowledgedActions[logType] {
			return Acknowledged{SessionID: data.SessionID, Type: logType}, nil
		}
		return Unrecognized{Event: env.Event, Type: logType}, nil

	default:
		return Unrecognized{Event: env.Event}, nil
	}
}
