package domain

// DefaultConfig is the configuration a freshly created session starts with.
// The difficulty table is heavily weighted toward "nothing" so that most
// shared-link votes count normally.
func DefaultConfig() Config {
	return Config{
		Difficulty: []DifficultyEntry{
			{Type: OutcomeInvert, Weight: 40},
			{Type: OutcomeDouble, Weight: 40},
			{Type: OutcomeDoubleInvert, Weight: 25},
			{Type: OutcomeJackpot, Weight: 1},
			{Type: OutcomeNothing, Weight: 320},
		},
		VotesTarget: 56,
		Hardcore:    false,
		Split:       50,
		DailyQuota:  5,
		PunishMult:  1.0,
	}
}

// DefaultHomeActions returns the home-screen nudges for a new session.
// The badge is filled in from the session's daily quota.
func DefaultHomeActions() []HomeAction {
	return []HomeAction{{
		Slug:        "vote",
		Title:       "Daily quota not reached!",
		Description: "You need to fulfill your daily quota! Send your shared link to more people.",
		Icon:        "fa-link",
		Badge:       "5",
	}}
}

// DefaultReasonsPreventingUnlocking returns the unlock-blocking reasons
// shown while the quota is unmet.
func DefaultReasonsPreventingUnlocking() []string {
	return []string{
		"You need to collect more votes in order to unlock! Send your shared link to more people.",
	}
}

// DefaultData returns zeroed vote counters.
func DefaultData() Data {
	return Data{Votes: VoteCounters{}}
}
