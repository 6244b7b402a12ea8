package game

import (
	"math/rand"
	"testing"

	"github.com/cardforge/zhajinhua/internal/deck"
)

func c(r deck.Rank, s deck.Suit) deck.Card {
	return deck.NewCard(r, s)
}

func mustBeat(t *testing.T, a, b []deck.Card) {
	t.Helper()
	cmp, err := CompareCards(a, b)
	if err != nil {
		t.Fatalf("CompareCards failed: %v", err)
	}
	if cmp != 1 {
		t.Errorf("Expected %v to beat %v, got %d", a, b, cmp)
	}
	cmp, _ = CompareCards(b, a)
	if cmp != -1 {
		t.Errorf("Expected reverse comparison -1, got %d", cmp)
	}
}

func TestEvaluateRejectsWrongHandSize(t *testing.T) {
	if _, err := EvaluateHand([]deck.Card{c(deck.Ace, deck.Spades)}); err == nil {
		t.Error("Expected error for 1-card hand")
	}
	if _, err := EvaluateHand(nil); err == nil {
		t.Error("Expected error for empty hand")
	}
	four := []deck.Card{
		c(deck.Ace, deck.Spades), c(deck.King, deck.Spades),
		c(deck.Queen, deck.Spades), c(deck.Jack, deck.Spades),
	}
	if _, err := EvaluateHand(four); err == nil {
		t.Error("Expected error for 4-card hand")
	}
}

func TestHandTypeClassification(t *testing.T) {
	tests := []struct {
		name  string
		cards []deck.Card
		want  HandType
	}{
		{"trips", []deck.Card{c(deck.Seven, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Seven, deck.Clubs)}, Trips},
		{"straight flush", []deck.Card{c(deck.Nine, deck.Hearts), c(deck.Ten, deck.Hearts), c(deck.Jack, deck.Hearts)}, StraightFlush},
		{"flush", []deck.Card{c(deck.Two, deck.Clubs), c(deck.Nine, deck.Clubs), c(deck.King, deck.Clubs)}, Flush},
		{"straight", []deck.Card{c(deck.Nine, deck.Hearts), c(deck.Ten, deck.Spades), c(deck.Jack, deck.Clubs)}, Straight},
		{"wheel straight", []deck.Card{c(deck.Ace, deck.Hearts), c(deck.Two, deck.Spades), c(deck.Three, deck.Clubs)}, Straight},
		{"pair", []deck.Card{c(deck.Seven, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Two, deck.Diamonds)}, Pair},
		{"high card", []deck.Card{c(deck.Two, deck.Spades), c(deck.Nine, deck.Hearts), c(deck.King, deck.Clubs)}, HighCard},
		{"special 235", []deck.Card{c(deck.Two, deck.Spades), c(deck.Three, deck.Hearts), c(deck.Five, deck.Clubs)}, Special235},
		{"235 flush is only a flush", []deck.Card{c(deck.Two, deck.Diamonds), c(deck.Three, deck.Diamonds), c(deck.Five, deck.Diamonds)}, Flush},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, err := EvaluateHand(tt.cards)
			if err != nil {
				t.Fatalf("EvaluateHand failed: %v", err)
			}
			if rank.Type != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, rank.Type)
			}
		})
	}
}

func TestSpecial235BeatsTrips(t *testing.T) {
	special := []deck.Card{c(deck.Two, deck.Spades), c(deck.Three, deck.Hearts), c(deck.Five, deck.Clubs)}
	trips := []deck.Card{c(deck.Seven, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Seven, deck.Clubs)}
	mustBeat(t, special, trips)

	aces := []deck.Card{c(deck.Ace, deck.Spades), c(deck.Ace, deck.Hearts), c(deck.Ace, deck.Clubs)}
	mustBeat(t, special, aces)
}

func TestTripsBeatStraightFlush(t *testing.T) {
	trips := []deck.Card{c(deck.Two, deck.Spades), c(deck.Two, deck.Hearts), c(deck.Two, deck.Clubs)}
	sf := []deck.Card{c(deck.Queen, deck.Spades), c(deck.King, deck.Spades), c(deck.Ace, deck.Spades)}
	mustBeat(t, trips, sf)
}

func TestCategoryStrengthTotalOrder(t *testing.T) {
	order := []HandType{HighCard, Pair, Straight, Flush, StraightFlush, Trips, Special235}
	for i := 1; i < len(order); i++ {
		if order[i].Strength() <= order[i-1].Strength() {
			t.Errorf("Expected %s stronger than %s", order[i], order[i-1])
		}
	}
	if Special235.Strength() <= Trips.Strength() {
		t.Error("Special 235 must outrank Trips")
	}
}

func TestSuitPriorityBreaksFlushTies(t *testing.T) {
	spades := []deck.Card{c(deck.Ace, deck.Spades), c(deck.King, deck.Spades), c(deck.Nine, deck.Spades)}
	hearts := []deck.Card{c(deck.Ace, deck.Hearts), c(deck.King, deck.Hearts), c(deck.Nine, deck.Hearts)}
	mustBeat(t, spades, hearts)
}

func TestSuitPriorityBreaksHighCardTies(t *testing.T) {
	a := []deck.Card{c(deck.Ace, deck.Spades), c(deck.King, deck.Clubs), c(deck.Nine, deck.Diamonds)}
	b := []deck.Card{c(deck.Ace, deck.Hearts), c(deck.King, deck.Diamonds), c(deck.Nine, deck.Clubs)}
	mustBeat(t, a, b)
}

func TestWheelIsLowestStraight(t *testing.T) {
	qka := []deck.Card{c(deck.Queen, deck.Spades), c(deck.King, deck.Hearts), c(deck.Ace, deck.Diamonds)}
	wheel := []deck.Card{c(deck.Ace, deck.Spades), c(deck.Two, deck.Hearts), c(deck.Three, deck.Diamonds)}
	mustBeat(t, qka, wheel)

	low := []deck.Card{c(deck.Two, deck.Clubs), c(deck.Three, deck.Spades), c(deck.Four, deck.Hearts)}
	mustBeat(t, low, wheel)
}

func TestStraightBeatsPair(t *testing.T) {
	straight := []deck.Card{c(deck.Queen, deck.Spades), c(deck.King, deck.Hearts), c(deck.Ace, deck.Diamonds)}
	pair := []deck.Card{c(deck.Seven, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Two, deck.Diamonds)}
	mustBeat(t, straight, pair)
}

func TestPairComparesPairRankThenKicker(t *testing.T) {
	sevens := []deck.Card{c(deck.Seven, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Two, deck.Diamonds)}
	sixes := []deck.Card{c(deck.Six, deck.Spades), c(deck.Six, deck.Hearts), c(deck.Ace, deck.Diamonds)}
	mustBeat(t, sevens, sixes)

	aceKicker := []deck.Card{c(deck.Nine, deck.Clubs), c(deck.Nine, deck.Diamonds), c(deck.Ace, deck.Clubs)}
	twoKicker := []deck.Card{c(deck.Nine, deck.Spades), c(deck.Nine, deck.Hearts), c(deck.Two, deck.Clubs)}
	mustBeat(t, aceKicker, twoKicker)
}

func TestStraightFlushSuitTieBreak(t *testing.T) {
	spades := []deck.Card{c(deck.Nine, deck.Spades), c(deck.Ten, deck.Spades), c(deck.Jack, deck.Spades)}
	hearts := []deck.Card{c(deck.Nine, deck.Hearts), c(deck.Ten, deck.Hearts), c(deck.Jack, deck.Hearts)}
	mustBeat(t, spades, hearts)
}

func TestCompareIsReflexive(t *testing.T) {
	hand := []deck.Card{c(deck.Ace, deck.Spades), c(deck.King, deck.Spades), c(deck.Nine, deck.Spades)}
	cmp, err := CompareCards(hand, hand)
	if err != nil {
		t.Fatal(err)
	}
	if cmp != 0 {
		t.Errorf("Expected a hand to tie itself, got %d", cmp)
	}
}

// Draw random disjoint hands from single decks and check the ordering is
// antisymmetric and total.
func TestCompareAntisymmetryOverRandomHands(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 500; i++ {
		d := deck.New(rng)
		var a, b []deck.Card
		for j := 0; j < 3; j++ {
			card, _ := d.Draw()
			a = append(a, card)
			card, _ = d.Draw()
			b = append(b, card)
		}
		ab, err := CompareCards(a, b)
		if err != nil {
			t.Fatal(err)
		}
		ba, _ := CompareCards(b, a)
		if ab != -ba {
			t.Fatalf("Antisymmetry violated: %v vs %v gave %d and %d", a, b, ab, ba)
		}
		// Two disjoint hands from one deck always order strictly: the
		// full tie-break key includes suit priority.
		if ab == 0 {
			t.Fatalf("Disjoint single-deck hands must not tie: %v vs %v", a, b)
		}
	}
}
