package game

import "errors"

// Engine misuse surfaces as errors; the engine never silently corrects
// state. The driving loop is expected to pre-validate decisions against
// AvailableActions and substitute a fold before calling Step.
var (
	ErrHandSize          = errors.New("zhajinhua hand must have exactly 3 cards")
	ErrHandFinished      = errors.New("hand already finished")
	ErrNotYourTurn       = errors.New("not this player's turn")
	ErrPlayerFolded      = errors.New("player already folded")
	ErrRaiseTooSmall     = errors.New("raise increment below minimum")
	ErrInsufficientChips = errors.New("not enough chips")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrUnknownAction     = errors.New("unknown action type")
	ErrChipCountMismatch = errors.New("chip count does not match player count")
)
