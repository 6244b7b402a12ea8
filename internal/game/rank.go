package game

import (
	"sort"

	"github.com/cardforge/zhajinhua/internal/deck"
)

// HandType represents a zhajinhua hand category
type HandType int

const (
	HighCard HandType = iota + 1
	Pair
	Straight
	Flush
	StraightFlush
	Trips
	Special235
)

// String returns the string representation of a hand type
func (t HandType) String() string {
	switch t {
	case HighCard:
		return "high_card"
	case Pair:
		return "pair"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case StraightFlush:
		return "straight_flush"
	case Trips:
		return "trips"
	case Special235:
		return "special_235"
	default:
		return "unknown"
	}
}

// categoryStrength is the explicit total order over hand categories.
// Indexed by HandType; higher is stronger. The house rule placing a
// non-flush 2-3-5 above Trips lives here, not in enum declaration order.
var categoryStrength = [...]int{
	HighCard:      1,
	Pair:          2,
	Straight:      3,
	Flush:         4,
	StraightFlush: 5,
	Trips:         6,
	Special235:    7,
}

// Strength returns the position of the category in the total order
func (t HandType) Strength() int {
	if t < HighCard || t > Special235 {
		return 0
	}
	return categoryStrength[t]
}

// HandRank is the totally-ordered rank of a 3-card hand: a category plus
// a tie-break key compared lexicographically within the category.
type HandRank struct {
	Type HandType
	Key  []int
}

// EvaluateHand maps exactly 3 cards to a HandRank.
//
// Every category's key embeds (or is suffixed by) the full tie-break key:
// the cards sorted descending by (rank, suit priority) and flattened to
// (r1, sp1, r2, sp2, r3, sp3). Two hands of the same category and the
// same ranks therefore still order strictly by suit priority.
func EvaluateHand(cards []deck.Card) (HandRank, error) {
	if len(cards) != 3 {
		return HandRank{}, ErrHandSize
	}

	sorted := make([]deck.Card, 3)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank > sorted[j].Rank
		}
		return sorted[i].Suit.Priority() > sorted[j].Suit.Priority()
	})

	fullKey := make([]int, 0, 6)
	for _, c := range sorted {
		fullKey = append(fullKey, int(c.Rank), c.Suit.Priority())
	}

	high, mid, low := sorted[0].Rank, sorted[1].Rank, sorted[2].Rank
	uniqueRanks := 1
	if high != mid {
		uniqueRanks++
	}
	if mid != low {
		uniqueRanks++
	}
	isFlush := cards[0].Suit == cards[1].Suit && cards[1].Suit == cards[2].Suit

	// A-2-3 plays as the lowest straight, keyed on the three.
	isStraight := false
	var straightHigh deck.Rank
	switch {
	case high == deck.Ace && mid == deck.Three && low == deck.Two:
		isStraight = true
		straightHigh = deck.Three
	case uniqueRanks == 3 && high-low == 2:
		isStraight = true
		straightHigh = high
	}

	// Non-flush 2-3-5 outranks everything, so it is checked before any
	// other category.
	if high == deck.Five && mid == deck.Three && low == deck.Two && !isFlush {
		return HandRank{Type: Special235, Key: fullKey}, nil
	}

	if uniqueRanks == 1 {
		return HandRank{Type: Trips, Key: fullKey}, nil
	}
	if isFlush && isStraight {
		return HandRank{
			Type: StraightFlush,
			Key:  []int{int(straightHigh), cards[0].Suit.Priority()},
		}, nil
	}
	if isFlush {
		return HandRank{Type: Flush, Key: fullKey}, nil
	}
	if isStraight {
		key := append([]int{int(straightHigh)}, fullKey...)
		return HandRank{Type: Straight, Key: key}, nil
	}
	if uniqueRanks == 2 {
		pairRank, kicker := high, low
		if mid == low {
			pairRank, kicker = low, high
		}
		key := append([]int{int(pairRank), int(kicker)}, fullKey...)
		return HandRank{Type: Pair, Key: key}, nil
	}
	return HandRank{Type: HighCard, Key: fullKey}, nil
}

// CompareHands returns 1 if a beats b, -1 if b beats a and 0 on a true
// tie. Categories are compared by their total-order strength first, then
// keys lexicographically.
func CompareHands(a, b HandRank) int {
	if a.Type.Strength() > b.Type.Strength() {
		return 1
	}
	if a.Type.Strength() < b.Type.Strength() {
		return -1
	}
	return compareKeys(a.Key, b.Key)
}

// CompareCards evaluates and compares two 3-card hands
func CompareCards(a, b []deck.Card) (int, error) {
	ra, err := EvaluateHand(a)
	if err != nil {
		return 0, err
	}
	rb, err := EvaluateHand(b)
	if err != nil {
		return 0, err
	}
	return CompareHands(ra, rb), nil
}

func compareKeys(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] > b[i] {
			return 1
		}
		if a[i] < b[i] {
			return -1
		}
	}
	if len(a) > len(b) {
		return 1
	}
	if len(a) < len(b) {
		return -1
	}
	return 0
}
