package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period             string            `json:"period"`
	EventCounts        map[EventType]int `json:"event_counts"`
	GamesStarted       int               `json:"games_started"`
	GamesLost          int               `json:"games_lost"`
	GamesWon           int               `json:"games_won"`
	TurnsPlayed        int               `json:"turns_played"`
	ChallengeAttempts  int               `json:"challenge_attempts"`
	ChallengeWins      int               `json:"challenge_wins"`
	ChallengeWinRate   float64           `json:"challenge_win_rate"`
	InsurancePurchases int               `json:"insurance_purchases"`
	InsuranceExpiries  int               `json:"insurance_expiries"`
	TurnsPerGame       float64           `json:"turns_per_game"`
	InsuranceByKind    map[string]int    `json:"insurance_by_kind"`
}

// CalculateStats computes balance stats from events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:          since.Format("2006-01-02"),
		EventCounts:     make(map[EventType]int),
		InsuranceByKind: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventGameStarted:
			stats.GamesStarted++
		case EventGameOver:
			stats.GamesLost++
		case EventVictory:
			stats.GamesWon++
		case EventTurnEnded:
			stats.TurnsPlayed++
		case EventChallengeResolved:
			stats.ChallengeAttempts++
			if success, ok := metadata["success"].(bool); ok && success {
				stats.ChallengeWins++
			}
		case EventInsuranceAcquired:
			stats.InsurancePurchases++
			if kind, ok := metadata["kind"].(string); ok {
				stats.InsuranceByKind[kind]++
			}
		case EventInsuranceExpired:
			stats.InsuranceExpiries++
		}
	}

	if stats.ChallengeAttempts > 0 {
		stats.ChallengeWinRate = float64(stats.ChallengeWins) / float64(stats.ChallengeAttempts)
	}
	finished := stats.GamesLost + stats.GamesWon
	if finished > 0 {
		stats.TurnsPerGame = float64(stats.TurnsPlayed) / float64(finished)
	}

	return stats, nil
}
