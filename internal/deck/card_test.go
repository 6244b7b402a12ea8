package deck

import "testing"

func TestSuitPriorityOrder(t *testing.T) {
	// ♠ > ♥ > ♣ > ♦
	if Spades.Priority() != 3 {
		t.Errorf("Expected spades priority 3, got %d", Spades.Priority())
	}
	if Hearts.Priority() != 2 {
		t.Errorf("Expected hearts priority 2, got %d", Hearts.Priority())
	}
	if Clubs.Priority() != 1 {
		t.Errorf("Expected clubs priority 1, got %d", Clubs.Priority())
	}
	if Diamonds.Priority() != 0 {
		t.Errorf("Expected diamonds priority 0, got %d", Diamonds.Priority())
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Ace, Spades), "A♠"},
		{NewCard(Ten, Hearts), "10♥"},
		{NewCard(Two, Diamonds), "2♦"},
		{NewCard(Jack, Clubs), "J♣"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("Card.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRankOrdering(t *testing.T) {
	if Two >= Three || King >= Ace {
		t.Error("Ranks must ascend from Two to Ace")
	}
	if int(Two) != 0 || int(Ace) != 12 {
		t.Errorf("Expected rank range 0..12, got %d..%d", Two, Ace)
	}
}

func TestCardEquality(t *testing.T) {
	a := NewCard(Queen, Hearts)
	b := NewCard(Queen, Hearts)
	c := NewCard(Queen, Spades)
	if a != b {
		t.Error("Cards with same rank and suit must be equal")
	}
	if a == c {
		t.Error("Cards with different suits must not be equal")
	}
}
