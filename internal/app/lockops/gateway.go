// Package lockops translates game results into lock action calls on the
// remote platform.
package lockops

import (
	"context"
	"log"

	"github.com/linkvote-app/linkvote/internal/infra/chaster"
)

// Gateway issues lock actions for a session through an injected client.
type Gateway struct {
	client chaster.Client
}

// NewGateway creates a Gateway.
func NewGateway(client chaster.Client) *Gateway {
	return &Gateway{client: client}
}

// SetTime applies a signed duration to the lock: positive seconds add time,
// negative seconds remove their absolute value. Zero still dispatches an
// add_time of 0; whether skipping it would be safe is an open product
// question, so the call is kept.
func (g *Gateway) SetTime(ctx context.Context, sessionID string, seconds int) error {
	if seconds >= 0 {
		log.Printf("[lockops] add_time %ds for session %s", seconds, sessionID)
		return g.client.DoAction(ctx, sessionID, chaster.Action{
			Name:   chaster.ActionAddTime,
			Params: seconds,
		})
	}
	log.Printf("[lockops] remove_time %ds for session %s", -seconds, sessionID)
	return g.client.DoAction(ctx, sessionID, chaster.Action{
		Name:   chaster.ActionRemoveTime,
		Params: -seconds,
	})
}

// Freeze freezes the lock timer.
func (g *Gateway) Freeze(ctx context.Context, sessionID string) error {
	return g.client.DoAction(ctx, sessionID, chaster.Action{Name: chaster.ActionFreeze})
}

// Unfreeze resumes the lock timer.
func (g *Gateway) Unfreeze(ctx context.Context, sessionID string) error {
	return g.client.DoAction(ctx, sessionID, chaster.Action{Name: chaster.ActionUnfreeze})
}

// ToggleFreeze flips the lock timer's frozen state.
func (g *Gateway) ToggleFreeze(ctx context.Context, sessionID string) error {
	return g.client.DoAction(ctx, sessionID, chaster.Action{Name: chaster.ActionToggleFreeze})
}

// Pillory puts the wearer in the pillory for duration seconds.
func (g *Gateway) Pillory(ctx context.Context, sessionID string, duration int, reason string) error {
	return g.client.DoAction(ctx, sessionID, chaster.Action{
		Name:   chaster.ActionPillory,
		Params: chaster.PilloryParams{Duration: duration, Reason: reason},
	})
}

// LogEntry records a custom extension log entry on the session's action log.
func (g *Gateway) LogEntry(ctx context.Context, sessionID, title, description string) error {
	return g.client.LogCustomAction(ctx, sessionID, chaster.LogEntry{
		Title:       title,
		Description: description,
		Role:        chaster.RoleExtension,
	})
}
