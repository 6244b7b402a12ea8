package game

import (
	"testing"

	"github.com/cardforge/zhajinhua/internal/deck"
)

func TestCompareEliminatesLoserAndKeepsInitiative(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)
	setHole(h, 0, c(deck.Ace, deck.Spades), c(deck.Ace, deck.Hearts), c(deck.King, deck.Spades))
	setHole(h, 1, c(deck.Two, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Nine, deck.Clubs))
	setHole(h, 2, c(deck.Three, deck.Spades), c(deck.Eight, deck.Hearts), c(deck.Ten, deck.Clubs))

	before := h.Players[0].Chips
	if err := h.Step(NewCompare(0, 1)); err != nil {
		t.Fatal(err)
	}
	if paid := before - h.Players[0].Chips; paid != 20 {
		t.Errorf("Compare should cost 20, paid %d", paid)
	}
	if h.Players[1].Alive {
		t.Error("Loser of the compare must be eliminated")
	}
	if h.Finished {
		t.Error("Two players remain, hand continues")
	}
	// The comparer keeps the initiative: scan starts at their seat.
	if h.CurrentPlayer != 2 {
		t.Errorf("Expected next player 2 (scan from comparer 0), got %d", h.CurrentPlayer)
	}
}

func TestCompareTieCountsAgainstAttacker(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)
	// Identical ranks, attacker holds the weaker suits.
	setHole(h, 0, c(deck.Ace, deck.Diamonds), c(deck.King, deck.Diamonds), c(deck.Nine, deck.Clubs))
	setHole(h, 1, c(deck.Ace, deck.Spades), c(deck.King, deck.Spades), c(deck.Nine, deck.Spades))
	setHole(h, 2, c(deck.Two, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Ten, deck.Clubs))

	if err := h.Step(NewCompare(0, 1)); err != nil {
		t.Fatal(err)
	}
	if h.Players[0].Alive {
		t.Error("Attacker must lose the compare when not strictly stronger")
	}
	if !h.Players[1].Alive {
		t.Error("Defender survives")
	}
}

func TestCompareDownToOneFinishesHand(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)
	setHole(h, 0, c(deck.Ace, deck.Spades), c(deck.Ace, deck.Hearts), c(deck.King, deck.Spades))
	setHole(h, 1, c(deck.Two, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Nine, deck.Clubs))
	setHole(h, 2, c(deck.Three, deck.Spades), c(deck.Eight, deck.Hearts), c(deck.Ten, deck.Clubs))

	if err := h.Step(NewAction(0, Fold)); err != nil {
		t.Fatal(err)
	}
	if err := h.Step(NewCompare(1, 2)); err != nil {
		t.Fatal(err)
	}
	if !h.Finished {
		t.Fatal("Compare leaving one survivor must finish the hand")
	}
	if h.Winner != 2 {
		t.Errorf("Expected winner 2, got %d", h.Winner)
	}
	if h.Pot != 0 {
		t.Error("Pot must be paid out")
	}
}

func TestAllInShowdownChallengerWinsOutright(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), []int{60, 300, 300})
	setHole(h, 0, c(deck.Two, deck.Spades), c(deck.Three, deck.Hearts), c(deck.Five, deck.Clubs)) // special 235
	setHole(h, 1, c(deck.Seven, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Seven, deck.Clubs))
	setHole(h, 2, c(deck.Ace, deck.Spades), c(deck.King, deck.Spades), c(deck.Queen, deck.Spades))

	// Raise the stakes beyond seat 0's stack, then have seat 0 shove.
	if err := h.Step(NewRaise(0, 10)); err != nil {
		t.Fatal(err)
	}
	if err := h.Step(NewRaise(1, 30)); err != nil {
		t.Fatal(err)
	}
	if err := h.Step(NewAction(2, Call)); err != nil {
		t.Fatal(err)
	}

	// Seat 0 has 30 left against a 50 call: forced fallback territory.
	if !hasAction(h.AvailableActions(0), AllInShowdown) {
		t.Fatal("Expected ALL_IN_SHOWDOWN to be offered")
	}
	if err := h.Step(NewAction(0, AllInShowdown)); err != nil {
		t.Fatal(err)
	}

	if !h.Finished {
		t.Fatal("Challenger beating everyone ends the hand")
	}
	if h.Winner != 0 {
		t.Errorf("Expected challenger to win, got %d", h.Winner)
	}
	if h.Players[1].Alive || h.Players[2].Alive {
		t.Error("All opponents must be eliminated")
	}
	if h.Pot != 0 {
		t.Error("Pot must be paid to the challenger")
	}
}

func TestAllInShowdownChallengerLosesAlone(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), []int{60, 300, 300})
	setHole(h, 0, c(deck.Two, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Nine, deck.Clubs))
	setHole(h, 1, c(deck.Ace, deck.Spades), c(deck.King, deck.Hearts), c(deck.Nine, deck.Diamonds))
	setHole(h, 2, c(deck.Three, deck.Spades), c(deck.Eight, deck.Hearts), c(deck.Ten, deck.Clubs))

	if err := h.Step(NewRaise(0, 10)); err != nil {
		t.Fatal(err)
	}
	if err := h.Step(NewRaise(1, 30)); err != nil {
		t.Fatal(err)
	}
	if err := h.Step(NewAction(2, Call)); err != nil {
		t.Fatal(err)
	}
	if err := h.Step(NewAction(0, AllInShowdown)); err != nil {
		t.Fatal(err)
	}

	if h.Players[0].Alive {
		t.Error("Challenger losing to any opponent is eliminated")
	}
	if h.Finished {
		t.Error("Play continues among the survivors")
	}
	if !h.Players[1].Alive || !h.Players[2].Alive {
		t.Error("Opponents survive a failed challenge")
	}
}

func TestForcedShowdownTiePolicyLowestSeat(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)
	// Seats 1 and 2 tie exactly only if keys are identical, which a
	// single deck prevents; instead verify the scan keeps the earliest
	// seat when later hands are not strictly stronger.
	setHole(h, 0, c(deck.Ace, deck.Spades), c(deck.King, deck.Clubs), c(deck.Nine, deck.Diamonds))
	setHole(h, 1, c(deck.Ace, deck.Hearts), c(deck.King, deck.Diamonds), c(deck.Nine, deck.Clubs))
	setHole(h, 2, c(deck.Two, deck.Hearts), c(deck.Seven, deck.Clubs), c(deck.Ten, deck.Diamonds))

	h.forceShowdown()
	if h.Winner != 0 {
		t.Errorf("Expected lowest qualifying seat 0 to win, got %d", h.Winner)
	}
}

func TestForcedShowdownSkipsFeltedAllInLead(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)
	setHole(h, 0, c(deck.Ace, deck.Spades), c(deck.King, deck.Clubs), c(deck.Nine, deck.Diamonds))
	setHole(h, 1, c(deck.Ace, deck.Hearts), c(deck.King, deck.Diamonds), c(deck.Nine, deck.Clubs))
	setHole(h, 2, c(deck.Two, deck.Hearts), c(deck.Seven, deck.Clubs), c(deck.Ten, deck.Diamonds))

	// Seat 0 is felted all-in; the default lead passes to seat 1, and
	// seat 0 must then strictly beat it to reclaim the win.
	h.Players[0].AllIn = true
	h.Players[0].Chips = 0

	h.forceShowdown()
	if h.Winner != 0 {
		// A♠K♣9♦ strictly beats A♥K♦9♣ on suit priority.
		t.Errorf("Hand strength still decides: expected seat 0, got %d", h.Winner)
	}

	h2 := newTestHand(t, DefaultConfig(), nil)
	setHole(h2, 0, c(deck.Ace, deck.Hearts), c(deck.King, deck.Diamonds), c(deck.Nine, deck.Clubs))
	setHole(h2, 1, c(deck.Ace, deck.Spades), c(deck.King, deck.Clubs), c(deck.Nine, deck.Diamonds))
	setHole(h2, 2, c(deck.Two, deck.Hearts), c(deck.Seven, deck.Clubs), c(deck.Ten, deck.Diamonds))
	h2.Players[0].AllIn = true
	h2.Players[0].Chips = 0

	h2.forceShowdown()
	if h2.Winner != 1 {
		t.Errorf("Expected seat 1 to win, got %d", h2.Winner)
	}
}

func TestNoSurvivorsMeansNoWinner(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)
	for _, p := range h.Players {
		p.Alive = false
	}
	h.forceShowdown()
	if !h.Finished {
		t.Fatal("Showdown must still finish the hand")
	}
	if h.Winner != NoSeat {
		t.Errorf("Expected no winner, got %d", h.Winner)
	}
	if h.Pot == 0 {
		t.Error("With no winner the pot is not paid out")
	}
}

func TestEliminateFromOutside(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)

	h.Eliminate(1)
	if h.Players[1].Alive {
		t.Error("Eliminate must fold the seat")
	}
	if h.Finished {
		t.Error("Two seats remain")
	}

	h.Eliminate(2)
	if !h.Finished || h.Winner != 0 {
		t.Errorf("Eliminating down to one must finish, winner=%d", h.Winner)
	}
}

func TestSeizeAndAwardChips(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)

	amount := h.SeizeChips(1)
	if amount != 290 {
		t.Errorf("Expected to seize 290, got %d", amount)
	}
	if h.Players[1].Chips != 0 {
		t.Error("Seized seat must be left with nothing")
	}

	h.AwardChips(0, amount)
	if h.Players[0].Chips != 580 {
		t.Errorf("Expected 580 after award, got %d", h.Players[0].Chips)
	}

	h.AddToPot(50)
	if h.Pot != 80 {
		t.Errorf("Expected pot 80, got %d", h.Pot)
	}
}
