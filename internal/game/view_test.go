package game

import (
	"testing"

	"github.com/cardforge/zhajinhua/internal/deck"
)

func TestViewRedactsUnlookedHands(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)

	v := h.View(0)
	for _, pv := range v.Players {
		for _, card := range pv.Hand {
			if card != FaceDown {
				t.Errorf("Seat %d: unlooked hand must be face down, got %s", pv.Seat, card)
			}
		}
	}
}

func TestViewShowsOwnHandAfterLook(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)
	setHole(h, 0, c(deck.Ace, deck.Spades), c(deck.King, deck.Hearts), c(deck.Nine, deck.Clubs))
	if err := h.Step(NewAction(0, Look)); err != nil {
		t.Fatal(err)
	}

	v := h.View(0)
	want := []string{"A♠", "K♥", "9♣"}
	for i, card := range v.Players[0].Hand {
		if card != want[i] {
			t.Errorf("Own hand card %d: got %s, want %s", i, card, want[i])
		}
	}

	// Another viewer still sees seat 0 face down.
	other := h.View(1)
	for _, card := range other.Players[0].Hand {
		if card != FaceDown {
			t.Errorf("Opponent must not see a looked hand, got %s", card)
		}
	}
}

func TestViewRevealsAliveHandsAtHandEnd(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)
	if err := h.Step(NewAction(0, Fold)); err != nil {
		t.Fatal(err)
	}
	if err := h.Step(NewAction(1, Fold)); err != nil {
		t.Fatal(err)
	}

	v := h.View(NoSeat)
	if !v.Finished {
		t.Fatal("Hand should be finished")
	}
	for _, card := range v.Players[2].Hand {
		if card == FaceDown {
			t.Error("Alive hands are revealed at hand end")
		}
	}
	for _, card := range v.Players[0].Hand {
		if card != FaceDown {
			t.Error("Folded hands stay hidden at hand end")
		}
	}
}

func TestViewAvailableActionsOnlyForActingViewer(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)

	v := h.View(0)
	if len(v.Available) == 0 {
		t.Error("Acting viewer should see available actions")
	}
	v = h.View(1)
	if len(v.Available) != 0 {
		t.Error("Non-acting viewer must not see available actions")
	}
	v = h.View(NoSeat)
	if len(v.Available) != 0 {
		t.Error("Spectators see no available actions")
	}
}

func TestViewHistory(t *testing.T) {
	h := newTestHand(t, DefaultConfig(), nil)
	if err := h.Step(NewAction(0, Look)); err != nil {
		t.Fatal(err)
	}
	if err := h.Step(NewRaise(0, 10)); err != nil {
		t.Fatal(err)
	}

	v := h.View(NoSeat)
	if len(v.History) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(v.History))
	}
	if v.History[0].Type != "LOOK" || v.History[1].Type != "RAISE" {
		t.Errorf("Unexpected history: %+v", v.History)
	}
	if v.History[1].Amount != 10 {
		t.Errorf("Expected raise amount 10, got %d", v.History[1].Amount)
	}
}
