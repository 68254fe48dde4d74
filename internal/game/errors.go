package game

import "errors"

var (
	// ErrGameNotInProgress rejects commands after game over or victory
	// (or before Start). Distinct from ErrWrongPhase so callers can
	// tell "this game has ended" apart from "not your turn to do that".
	ErrGameNotInProgress = errors.New("game: not in progress")
	// ErrAlreadyStarted rejects a second Start.
	ErrAlreadyStarted = errors.New("game: already started")
	// ErrWrongPhase rejects a command issued outside its phase.
	ErrWrongPhase = errors.New("game: wrong phase")
	// ErrNoChallenge rejects resolution without a current challenge.
	ErrNoChallenge = errors.New("game: no challenge in progress")
	// ErrUnknownCard reports an id that is not where the command
	// requires it (hand, choices, ledger).
	ErrUnknownCard = errors.New("game: unknown card")
	// ErrInvalidChoice reports a selection outside the offered choices.
	ErrInvalidChoice = errors.New("game: invalid choice")
	// ErrInsuranceLimit rejects acquisitions beyond the configured cap.
	ErrInsuranceLimit = errors.New("game: insurance card limit reached")
	// ErrInvalidArgument reports a malformed command argument.
	ErrInvalidArgument = errors.New("game: invalid argument")
)
