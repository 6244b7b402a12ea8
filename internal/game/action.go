package game

import (
	"fmt"
	"strings"
)

// NoSeat marks an unset seat reference (no winner, no target)
const NoSeat = -1

// ActionType represents a player action type
type ActionType int

const (
	Fold ActionType = iota + 1
	Call
	Raise
	Look
	Compare
	AllInShowdown
	Accuse
)

// String returns the wire name of an action type
func (t ActionType) String() string {
	switch t {
	case Fold:
		return "FOLD"
	case Call:
		return "CALL"
	case Raise:
		return "RAISE"
	case Look:
		return "LOOK"
	case Compare:
		return "COMPARE"
	case AllInShowdown:
		return "ALL_IN_SHOWDOWN"
	case Accuse:
		return "ACCUSE"
	default:
		return "UNKNOWN"
	}
}

// ParseActionType converts a wire name into an ActionType. This is the
// only string-to-action lookup; the engine itself is fully typed.
func ParseActionType(s string) (ActionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FOLD":
		return Fold, nil
	case "CALL":
		return Call, nil
	case "RAISE":
		return Raise, nil
	case "LOOK":
		return Look, nil
	case "COMPARE":
		return Compare, nil
	case "ALL_IN_SHOWDOWN", "ALLIN_SHOWDOWN", "ALL-IN-SHOWDOWN":
		return AllInShowdown, nil
	case "ACCUSE":
		return Accuse, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Action is one player decision. Amount is only meaningful for RAISE
// (the dark-bet increment before the looked multiplier). Target names
// the challenged player for COMPARE; Target and Target2 name the two
// accused players for ACCUSE.
type Action struct {
	Player  int
	Type    ActionType
	Amount  int
	Target  int
	Target2 int
}

// NewAction creates a targetless action
func NewAction(player int, t ActionType) Action {
	return Action{Player: player, Type: t, Target: NoSeat, Target2: NoSeat}
}

// NewRaise creates a raise by the given dark-bet increment
func NewRaise(player, amount int) Action {
	return Action{Player: player, Type: Raise, Amount: amount, Target: NoSeat, Target2: NoSeat}
}

// NewCompare creates a compare challenge against target
func NewCompare(player, target int) Action {
	return Action{Player: player, Type: Compare, Target: target, Target2: NoSeat}
}

// NewAccuse creates an accusation naming two players
func NewAccuse(player, target, target2 int) Action {
	return Action{Player: player, Type: Accuse, Target: target, Target2: target2}
}

// AvailableAction pairs a legal action with its displayed chip cost
type AvailableAction struct {
	Type ActionType
	Cost int
}
