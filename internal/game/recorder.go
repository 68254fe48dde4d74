package game

// Recorder receives game events. The engine pushes onto it and never
// knows who listens; a nil recorder drops everything.
type Recorder interface {
	Record(event string, metadata map[string]any)
}

// Event names pushed by the engine.
const (
	EventGameStarted       = "game_started"
	EventCardsDrawn        = "cards_drawn"
	EventChallengeStarted  = "challenge_started"
	EventChallengeResolved = "challenge_resolved"
	EventCardSelected      = "card_selected"
	EventInsuranceAcquired = "insurance_acquired"
	EventInsuranceRenewed  = "insurance_renewed"
	EventInsuranceExpired  = "insurance_expired"
	EventTurnEnded         = "turn_ended"
	EventStageAdvanced     = "stage_advanced"
	EventGameOver          = "game_over"
	EventVictory           = "victory"
)
