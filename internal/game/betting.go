package game

import (
	"fmt"
	"time"
)

// Debuff names an external effect constraining a seat's options. The
// item system owns debuff lifecycles; the engine only honours the ones
// it is handed for the acting seat.
type Debuff string

// DebuffLockRaise removes RAISE from the seat's available actions.
const DebuffLockRaise Debuff = "lock_raise"

// AvailableActions returns the legal actions and their displayed chip
// costs for a seat, honouring any active debuffs on that seat. Empty
// when the seat is dead, all-in, or the hand is finished.
// ALL_IN_SHOWDOWN appears whenever the seat cannot fully fund a call or
// a compare, so a player with chips is never without a move.
func (h *Hand) AvailableActions(seat int, debuffs ...Debuff) []AvailableAction {
	if seat < 0 || seat >= len(h.Players) {
		return nil
	}
	p := h.Players[seat]
	if !p.Alive || h.Finished || p.AllIn {
		return nil
	}

	var actions []AvailableAction
	if !p.Looked {
		actions = append(actions, AvailableAction{Look, 0})
	}
	actions = append(actions, AvailableAction{Fold, 0})

	callCost := h.CallCost(seat)
	compareCost := h.CompareCost(seat)
	accuseCost := h.AccuseCost(seat)

	canCall := p.Chips >= callCost
	canCompare := p.Chips >= compareCost

	if canCall {
		actions = append(actions, AvailableAction{Call, callCost})

		minRaiseCost := h.Config.MinRaise
		if p.Looked {
			minRaiseCost *= 2
		}
		if p.Chips > callCost+minRaiseCost && !hasDebuff(debuffs, DebuffLockRaise) {
			actions = append(actions, AvailableAction{Raise, callCost + minRaiseCost})
		}

		if canCompare && len(h.AliveSeats()) >= 2 {
			actions = append(actions, AvailableAction{Compare, compareCost})
		}
	}

	// An accusation needs a jury, so at least two other active seats
	// must exist beyond the accuser.
	otherActive := 0
	for _, s := range h.AliveSeats() {
		if s != seat && !h.Players[s].AllIn {
			otherActive++
		}
	}
	if p.Chips >= accuseCost && otherActive >= 2 {
		actions = append(actions, AvailableAction{Accuse, accuseCost})
	}

	if p.Chips < callCost || p.Chips < compareCost {
		if !canCall || !canCompare {
			actions = append(actions, AvailableAction{AllInShowdown, p.Chips})
		}
	}

	return actions
}

func hasDebuff(debuffs []Debuff, want Debuff) bool {
	for _, d := range debuffs {
		if d == want {
			return true
		}
	}
	return false
}

// Step validates and applies one action. Callers must pre-validate
// against AvailableActions; Step returns an error on misuse and never
// partially applies an action. Only accepted actions reach the history.
func (h *Hand) Step(action Action) error {
	if h.Finished {
		return ErrHandFinished
	}
	if action.Player < 0 || action.Player >= len(h.Players) || action.Player != h.CurrentPlayer {
		return ErrNotYourTurn
	}
	p := h.Players[action.Player]
	if !p.Alive {
		return ErrPlayerFolded
	}
	// All-in players are skipped, not re-prompted.
	if p.AllIn {
		h.advanceTurn()
		return nil
	}

	if err := h.validate(action, p); err != nil {
		return err
	}

	h.History = append(h.History, action)
	h.RoundCount++
	if h.RoundCount > h.Config.MaxRounds {
		// Anti-stall valve: the cap forces a showdown instead of
		// applying the action.
		h.forceShowdown()
		return nil
	}

	switch action.Type {
	case Look:
		p.Looked = true
		h.publishAction(action)
		// Looking is free and keeps the turn.

	case Fold:
		p.Alive = false
		h.publishAction(action)
		alive := h.AliveSeats()
		if len(alive) <= 1 {
			winner := NoSeat
			if len(alive) == 1 {
				winner = alive[0]
			}
			h.finish(winner)
		} else {
			h.advanceTurn()
		}

	case Call:
		pay := h.CallCost(action.Player)
		if p.Chips <= pay {
			pay = p.Chips
			p.AllIn = true
		}
		p.Chips -= pay
		h.Pot += pay
		h.publishAction(action)
		h.advanceTurn()

	case Raise:
		pay := h.raiseCost(action, p)
		if p.Chips == pay {
			p.AllIn = true
		}
		p.Chips -= pay
		h.Pot += pay
		// The dark bet rises by the raw increment; the multiplied cost
		// only affects what the raiser paid.
		h.CurrentBet += action.Amount
		h.LastRaiser = action.Player
		h.publishAction(action)
		h.advanceTurn()

	case Compare:
		pay := h.CompareCost(action.Player)
		if p.Chips == pay {
			p.AllIn = true
		}
		p.Chips -= pay
		h.Pot += pay
		h.publishAction(action)
		h.resolveCompare(action.Player, action.Target)

	case AllInShowdown:
		pay := p.Chips
		p.AllIn = true
		p.Chips = 0
		h.Pot += pay
		h.publishAction(action)
		h.resolveAllInShowdown(action.Player)

	case Accuse:
		p.Chips -= h.AccuseCost(action.Player)
		h.Pot += h.AccuseCost(action.Player)
		h.publishAction(action)
		// The trial itself is resolved outside the engine; eliminations
		// arrive through Eliminate and chips through SeizeChips and
		// AwardChips. Turn order simply resumes.
		h.advanceTurn()
	}

	return nil
}

// validate rejects an action before any state changes. Look, Fold, Call
// and AllInShowdown are always fundable: Call and AllInShowdown cap at
// the player's stack.
func (h *Hand) validate(action Action, p *Player) error {
	switch action.Type {
	case Look, Fold, Call, AllInShowdown:
		return nil

	case Raise:
		if action.Amount < h.Config.MinRaise {
			return fmt.Errorf("%w: increment %d, minimum %d", ErrRaiseTooSmall, action.Amount, h.Config.MinRaise)
		}
		if pay := h.raiseCost(action, p); p.Chips < pay {
			return fmt.Errorf("%w: raise costs %d, have %d", ErrInsufficientChips, pay, p.Chips)
		}
		return nil

	case Compare:
		if action.Target < 0 || action.Target >= len(h.Players) ||
			action.Target == action.Player || !h.Players[action.Target].Alive {
			return fmt.Errorf("%w: compare target %d", ErrInvalidTarget, action.Target)
		}
		if pay := h.CompareCost(action.Player); p.Chips < pay {
			return fmt.Errorf("%w: compare costs %d, have %d", ErrInsufficientChips, pay, p.Chips)
		}
		return nil

	case Accuse:
		for _, target := range []int{action.Target, action.Target2} {
			if target < 0 || target >= len(h.Players) || target == action.Player {
				return fmt.Errorf("%w: accuse target %d", ErrInvalidTarget, target)
			}
			if !h.Players[target].Alive {
				return fmt.Errorf("%w: accuse target %d already folded", ErrInvalidTarget, target)
			}
		}
		if action.Target == action.Target2 {
			return fmt.Errorf("%w: cannot accuse the same player twice", ErrInvalidTarget)
		}
		if pay := h.AccuseCost(action.Player); p.Chips < pay {
			return fmt.Errorf("%w: accusation costs %d, have %d", ErrInsufficientChips, pay, p.Chips)
		}
		return nil

	default:
		return fmt.Errorf("%w: %d", ErrUnknownAction, action.Type)
	}
}

func (h *Hand) raiseCost(action Action, p *Player) int {
	cost := action.Amount
	if p.Looked {
		cost *= 2
	}
	return h.CallCost(action.Player) + cost
}

func (h *Hand) publishAction(action Action) {
	h.publish(ActionEvent{
		Action:     action,
		PotAfter:   h.Pot,
		CurrentBet: h.CurrentBet,
		timestamp:  time.Now(),
	})
}
