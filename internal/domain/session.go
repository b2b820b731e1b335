// Package domain holds the session model shared by the event handlers, the
// daily reset job and the HTTP API. Sessions are owned by the remote lock
// platform; this package only describes their shape and the rules for
// projecting and merging them.
package domain

import "encoding/json"

// Outcome names used in the difficulty distribution. The set is extensible
// on the remote side; unknown names are treated as no-ops.
const (
	OutcomeNothing      = "nothing"
	OutcomeDouble       = "double"
	OutcomeInvert       = "invert"
	OutcomeDoubleInvert = "double_invert"
	OutcomeJackpot      = "jackpot"
)

// DifficultyEntry is one member of the weighted outcome distribution.
type DifficultyEntry struct {
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// Config is the per-session game configuration.
type Config struct {
	Difficulty        []DifficultyEntry `json:"difficulty"`
	VotesTarget       int               `json:"votes_target"`
	CountOnlyLoggedIn bool              `json:"count_only_loggedin"`
	Split             int               `json:"split"`
	DailyQuota        int               `json:"daily_quota"`
	PunishMult        float64           `json:"punish_mult"`
	Hardcore          bool              `json:"hardcore"`
}

// HomeAction is a UI nudge shown on the wearer's home screen. The badge is
// a stringified countdown of remaining required votes.
type HomeAction struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Badge       string `json:"badge,omitempty"`
}

// Metadata carries the UI hints the platform renders for a session.
type Metadata struct {
	ReasonsPreventingUnlocking []string     `json:"reasonsPreventingUnlocking"`
	HomeActions                []HomeAction `json:"homeActions"`
}

// VoteCounters tracks accumulated votes. Today is zeroed by the daily reset;
// total and eligible only ever grow.
type VoteCounters struct {
	Total    int `json:"total"`
	Eligible int `json:"eligible"`
	Today    int `json:"today"`
}

// Data is the persisted per-session data section.
type Data struct {
	Votes VoteCounters `json:"votes"`
}

// Session is a remote extension session as fetched from the platform.
// Raw keeps the undecoded document so callers can project fields the typed
// model does not declare (see Strip).
type Session struct {
	SessionID string   `json:"sessionId"`
	Config    Config   `json:"config"`
	Metadata  Metadata `json:"metadata"`
	Data      Data     `json:"data"`

	Raw map[string]any `json:"-"`
}

// UnmarshalJSON decodes the typed fields and retains the raw document.
func (s *Session) UnmarshalJSON(b []byte) error {
	type plain Session
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Session(p)
	s.Raw = raw
	return nil
}

// SessionPatch is the payload for a session patch call. Each section is
// optional; the remote API replaces present sections wholesale.
type SessionPatch struct {
	Config   any `json:"config,omitempty"`
	Metadata any `json:"metadata,omitempty"`
	Data     any `json:"data,omitempty"`
}

// Patch builds a full patch from the session's current typed sections.
func (s *Session) Patch() SessionPatch {
	return SessionPatch{Config: s.Config, Metadata: s.Metadata, Data: s.Data}
}
