package domain

// Sections is the partial-update shape accepted by the session API. Sections
// are maps rather than typed structs so that absent fields can be told apart
// from zero values during a merge.
type Sections struct {
	Config   map[string]any `json:"config,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// PrivateView is the session projection exposed to the wearer's own UI.
// Lock is read-only and field-whitelisted.
type PrivateView struct {
	Config   map[string]any `json:"config"`
	Metadata map[string]any `json:"metadata"`
	Data     map[string]any `json:"data"`
	Lock     map[string]any `json:"lock,omitempty"`
}

// configFields is the allowed-field whitelist for the config section.
// Anything else the remote session carries is dropped silently.
var configFields = []string{
	"difficulty",
	"votes_target",
	"count_only_loggedin",
	"split",
	"daily_quota",
	"punish_mult",
}

// lockFields is the whitelist for the read-only lock projection.
var lockFields = []string{
	"_id",
	"status",
	"canBeUnlocked",
	"totalDuration",
	"hideTimeLogs",
	"isAllowedToViewTimeLogs",
	"isFrozen",
	"frozenAt",
	"startDate",
	"endDate",
	"displayRemainingTime",
	"title",
	"lastVerificationPicture",
	"extensionAllowUnlocking",
}

// lockUserFields is the identity subset exposed for keyholder and wearer.
var lockUserFields = []string{"username", "avatarUrl", "online"}

// Strip projects a raw remote session onto the schema-declared fields.
// The config section keeps only whitelisted keys, metadata and data are
// carried over wholesale, and the lock sub-object is reduced to the fixed
// read-only field set.
func Strip(raw map[string]any) PrivateView {
	view := PrivateView{
		Config:   pick(asMap(raw["config"]), configFields),
		Metadata: asMap(raw["metadata"]),
		Data:     asMap(raw["data"]),
	}
	if view.Metadata == nil {
		view.Metadata = map[string]any{}
	}
	if view.Data == nil {
		view.Data = map[string]any{}
	}

	lock := asMap(raw["lock"])
	if lock != nil {
		stripped := pick(lock, lockFields)
		for _, role := range []string{"keyholder", "user"} {
			if u := asMap(lock[role]); u != nil {
				stripped[role] = pick(u, lockUserFields)
			}
		}
		view.Lock = stripped
	}
	return view
}

// Merge applies a partial update over the current state, shallow per
// top-level section: fields present in the partial override the current
// value, absent fields are retained, and nested objects are replaced
// wholesale rather than deep-merged.
func Merge(current, partial Sections) Sections {
	return Sections{
		Config:   overlay(current.Config, partial.Config),
		Metadata: overlay(current.Metadata, partial.Metadata),
		Data:     overlay(current.Data, partial.Data),
	}
}

// Sections returns the merge-ready sections of a private view.
func (v PrivateView) Sections() Sections {
	return Sections{Config: v.Config, Metadata: v.Metadata, Data: v.Data}
}

func overlay(current, partial map[string]any) map[string]any {
	merged := make(map[string]any, len(current)+len(partial))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	return merged
}

func pick(m map[string]any, keys []string) map[string]any {
	out := map[string]any{}
	if m == nil {
		return out
	}
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
