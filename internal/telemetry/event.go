// Package telemetry collects game events for balance analysis. The
// engine pushes events through a Recorder and never sees who consumes
// them.
package telemetry

import "time"

type EventType string

const (
	EventGameStarted       EventType = "game_started"
	EventCardsDrawn        EventType = "cards_drawn"
	EventChallengeStarted  EventType = "challenge_started"
	EventChallengeResolved EventType = "challenge_resolved"
	EventCardSelected      EventType = "card_selected"
	EventInsuranceAcquired EventType = "insurance_acquired"
	EventInsuranceRenewed  EventType = "insurance_renewed"
	EventInsuranceExpired  EventType = "insurance_expired"
	EventTurnEnded         EventType = "turn_ended"
	EventStageAdvanced     EventType = "stage_advanced"
	EventGameOver          EventType = "game_over"
	EventVictory           EventType = "victory"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
