package game

import (
	"strconv"

	"github.com/linkvote-app/linkvote/internal/domain"
)

// ApplyVote records one vote against the session and recomputes the derived
// UI metadata. It returns updated copies of the data and metadata sections;
// persisting them is the caller's responsibility.
//
// In hardcore mode a vote only counts as eligible while the daily quota is
// still open, judged before the increment. Once today's count reaches the
// quota exactly, the nagging UI is cleared; otherwise every home action's
// numeric badge counts down by one.
func ApplyVote(cfg domain.Config, data domain.Data, meta domain.Metadata) (domain.Data, domain.Metadata) {
	if cfg.Hardcore && data.Votes.Today < cfg.DailyQuota {
		data.Votes.Eligible++
	}
	data.Votes.Today++
	data.Votes.Total++

	if data.Votes.Today == cfg.DailyQuota {
		return data, domain.Metadata{
			ReasonsPreventingUnlocking: []string{},
			HomeActions:                []domain.HomeAction{},
		}
	}

	actions := make([]domain.HomeAction, len(meta.HomeActions))
	copy(actions, meta.HomeActions)
	for i, action := range actions {
		if n, err := strconv.Atoi(action.Badge); err == nil {
			actions[i].Badge = strconv.Itoa(n - 1)
		}
	}

	return data, domain.Metadata{
		ReasonsPreventingUnlocking: cloneStrings(meta.ReasonsPreventingUnlocking),
		HomeActions:                actions,
	}
}

// CleanMetadata rebuilds metadata from only its two schema fields, dropping
// any drift the remote copy may have accumulated.
func CleanMetadata(meta domain.Metadata) domain.Metadata {
	clean := domain.Metadata{
		ReasonsPreventingUnlocking: meta.ReasonsPreventingUnlocking,
		HomeActions:                meta.HomeActions,
	}
	if clean.ReasonsPreventingUnlocking == nil {
		clean.ReasonsPreventingUnlocking = []string{}
	}
	if clean.HomeActions == nil {
		clean.HomeActions = []domain.HomeAction{}
	}
	return clean
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
