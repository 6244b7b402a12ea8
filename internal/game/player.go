package game

import "github.com/cardforge/zhajinhua/internal/deck"

// Player holds one seat's mutable state for the current hand. A fresh
// Player is created each hand; only the chip count carries over.
type Player struct {
	Seat   int
	Chips  int
	Hole   []deck.Card
	Alive  bool // still contesting this hand
	Looked bool // has seen own cards; subsequent costs double
	AllIn  bool // committed all chips; skipped in turn order, eligible at showdown
}

// Active returns true if the player can still act this hand
func (p *Player) Active() bool {
	return p.Alive && !p.AllIn
}
