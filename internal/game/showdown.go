package game

import (
	"time"

	"github.com/cardforge/zhajinhua/internal/deck"
)

// resolveCompare settles a paid compare between the attacker and the
// defender. Ties count against the attacker. A registered hook may
// cancel the compare, rule it a draw, or redirect the elimination.
// The attacker keeps the initiative: the next turn scans forward from
// their seat.
func (h *Hand) resolveCompare(attacker, defender int) {
	result := CompareHands(
		mustEvaluate(h.Players[attacker].Hole),
		mustEvaluate(h.Players[defender].Hole),
	)
	loser := attacker
	if result > 0 {
		loser = defender
	}

	overridden := false
	if h.hooks != nil {
		ov := h.hooks.BeforeCompareResolution(attacker, defender, result, loser)
		switch {
		case ov.Cancel, ov.Draw:
			loser = NoSeat
			overridden = true
		case ov.Replace && ov.Loser != loser:
			loser = ov.Loser
			overridden = true
		}
	}

	h.publish(CompareEvent{
		Attacker:   attacker,
		Defender:   defender,
		Result:     result,
		Loser:      loser,
		Overridden: overridden,
		timestamp:  time.Now(),
	})

	if loser != NoSeat {
		h.Players[loser].Alive = false
	}

	alive := h.AliveSeats()
	if len(alive) <= 1 {
		winner := NoSeat
		if len(alive) == 1 {
			winner = alive[0]
		}
		h.finish(winner)
		return
	}
	h.CurrentPlayer = h.nextPlayer(attacker)
}

// resolveAllInShowdown settles the all-or-nothing challenge: the
// challenger's hand plays against every other alive hand. Losing to any
// opponent eliminates the challenger alone; beating or tying all of them
// eliminates every opponent and wins the hand outright.
func (h *Hand) resolveAllInShowdown(challenger int) {
	challengerRank := mustEvaluate(h.Players[challenger].Hole)

	var opponents []int
	for _, seat := range h.AliveSeats() {
		if seat != challenger {
			opponents = append(opponents, seat)
		}
	}

	for _, opp := range opponents {
		result := CompareHands(challengerRank, mustEvaluate(h.Players[opp].Hole))
		h.publish(CompareEvent{
			Attacker:  challenger,
			Defender:  opp,
			Result:    result,
			Loser:     NoSeat,
			timestamp: time.Now(),
		})
		if result < 0 {
			h.Players[challenger].Alive = false
			h.advanceTurn()
			return
		}
	}

	for _, opp := range opponents {
		h.Players[opp].Alive = false
	}
	h.finish(challenger)
}

// forceShowdown resolves the hand by pure hand strength among alive
// seats: the round cap, and any state where at most one seat can still
// act, both land here. Exactly equal ranks keep the earliest seat, so
// ties deterministically favour the lowest seat index.
func (h *Hand) forceShowdown() {
	if h.Finished {
		return
	}
	alive := h.AliveSeats()
	if len(alive) == 0 {
		h.finish(NoSeat)
		return
	}

	winner := alive[0]
	// A felted all-in seat does not lead by default over seats that can
	// still act; hand strength alone decides below.
	if h.Players[winner].AllIn && h.Players[winner].Chips == 0 {
		for _, seat := range alive[1:] {
			if !h.Players[seat].AllIn {
				winner = seat
				break
			}
		}
	}
	for _, seat := range alive {
		if seat == winner {
			continue
		}
		if CompareHands(mustEvaluate(h.Players[seat].Hole), mustEvaluate(h.Players[winner].Hole)) > 0 {
			winner = seat
		}
	}
	h.finish(winner)
}

// ForceShowdown resolves the hand immediately by hand strength. Exposed
// for the driving loop's safety valves.
func (h *Hand) ForceShowdown() {
	h.forceShowdown()
}

// finish marks the hand terminal and pays the pot to the winner. The
// pre-payout pot is snapshotted for downstream bonus calculations.
func (h *Hand) finish(winner int) {
	h.Finished = true
	h.Winner = winner
	h.PotAtShowdown = h.Pot
	if winner != NoSeat {
		h.Players[winner].Chips += h.Pot
		h.Pot = 0
	}
	h.publish(HandEndEvent{
		Winner:    winner,
		Pot:       h.PotAtShowdown,
		timestamp: time.Now(),
	})
}

// mustEvaluate ranks a dealt 3-card hand. Hands are dealt by the engine
// itself, so a size error here is an engine bug.
func mustEvaluate(cards []deck.Card) HandRank {
	rank, err := EvaluateHand(cards)
	if err != nil {
		panic(err)
	}
	return rank
}
