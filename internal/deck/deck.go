package deck

import (
	"math/rand"
)

// Deck represents an ordered sequence of playing cards. Each hand owns
// exactly one deck; cards are drawn from the top and may be returned
// before a reshuffle by item effects.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full shuffled 52-card deck. The RNG is required to make
// randomness explicit and testing deterministic.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Diamonds; suit++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.Shuffle()
	return d
}

// NewStacked creates an unshuffled deck holding exactly the given cards.
// Draw pops from the end of the slice, so the last card given is the
// first dealt. Intended for deterministic tests.
func NewStacked(cards ...Card) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards)),
		rng:   rand.New(rand.NewSource(0)),
	}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// DrawAt removes and returns the card at the given index. Item effects
// use this to pull a specific card rather than the top one.
func (d *Deck) DrawAt(i int) (Card, bool) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return card, true
}

// Return pushes cards back into the deck. Callers typically Shuffle
// afterwards.
func (d *Deck) Return(cards ...Card) {
	d.cards = append(d.cards, cards...)
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
