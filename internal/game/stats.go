package game

// Stats are the per-playthrough counters. Exposed read-only through
// the snapshot.
type Stats struct {
	TurnsPlayed         int `json:"turns_played"`
	ChallengesAttempted int `json:"challenges_attempted"`
	ChallengesSucceeded int `json:"challenges_succeeded"`
	ChallengesFailed    int `json:"challenges_failed"`
	CardsAcquired       int `json:"cards_acquired"`
	CardsDrawn          int `json:"cards_drawn"`
	InsurancePurchased  int `json:"insurance_purchased"`
	InsuranceRenewed    int `json:"insurance_renewed"`
	InsuranceExpired    int `json:"insurance_expired"`
	HighestVitality     int `json:"highest_vitality"`
	StagesCompleted     int `json:"stages_completed"`
}
