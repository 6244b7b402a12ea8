package game

import (
	"math/rand"
	"time"

	"github.com/cardforge/zhajinhua/internal/deck"
)

// Hand is the mutable root state for one dealt hand. It is created per
// hand and discarded at hand end; cumulative chips are carried forward
// by the caller. The engine is single-threaded: one Step at a time, no
// internal goroutines, no blocking.
type Hand struct {
	Config        Config
	Deck          *deck.Deck
	Players       []*Player
	Pot           int
	CurrentBet    int // dark-bet unit; doubled for any player who has looked
	CurrentPlayer int
	LastRaiser    int
	RoundCount    int
	History       []Action
	Finished      bool
	Winner        int // NoSeat until finished; NoSeat at finish means no survivor
	PotAtShowdown int // pre-payout pot snapshot for downstream bonus maths

	hooks  Hooks
	events Sink
}

// HandOption configures a Hand during creation
type HandOption func(*handConfig)

type handConfig struct {
	deck        *deck.Deck
	startPlayer int
	hooks       Hooks
	events      Sink
}

// WithDeck uses the given deck instead of a freshly shuffled one
func WithDeck(d *deck.Deck) HandOption {
	return func(hc *handConfig) { hc.deck = d }
}

// WithStartPlayer sets the first seat to act
func WithStartPlayer(seat int) HandOption {
	return func(hc *handConfig) { hc.startPlayer = seat }
}

// WithHooks registers the effect extension points
func WithHooks(h Hooks) HandOption {
	return func(hc *handConfig) { hc.hooks = h }
}

// WithEvents registers an event sink
func WithEvents(s Sink) HandOption {
	return func(hc *handConfig) { hc.events = s }
}

// NewHand deals a fresh hand: antes are collected, three cards dealt to
// every seat, and the start player is on the clock. chips carries each
// seat's stack entering the hand; nil means cfg.InitialChips everywhere.
// The RNG is required to make shuffling explicit and testing
// deterministic.
func NewHand(rng *rand.Rand, cfg Config, chips []int, opts ...HandOption) (*Hand, error) {
	if rng == nil {
		panic("rng is required for hand creation")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if chips == nil {
		chips = make([]int, cfg.NumPlayers)
		for i := range chips {
			chips[i] = cfg.InitialChips
		}
	}
	if len(chips) != cfg.NumPlayers {
		return nil, ErrChipCountMismatch
	}

	hc := &handConfig{startPlayer: 0}
	for _, opt := range opts {
		opt(hc)
	}
	if hc.deck == nil {
		hc.deck = deck.New(rng)
	}

	h := &Hand{
		Config:        cfg,
		Deck:          hc.deck,
		Players:       make([]*Player, cfg.NumPlayers),
		CurrentBet:    cfg.BaseBet,
		CurrentPlayer: hc.startPlayer,
		LastRaiser:    hc.startPlayer,
		Winner:        NoSeat,
		hooks:         hc.hooks,
		events:        hc.events,
	}
	for i := range h.Players {
		h.Players[i] = &Player{Seat: i, Chips: chips[i], Alive: true}
	}

	h.collectAntes()
	h.deal()

	h.publish(HandStartEvent{
		Players:     cfg.NumPlayers,
		Pot:         h.Pot,
		CurrentBet:  h.CurrentBet,
		StartPlayer: h.CurrentPlayer,
		timestamp:   time.Now(),
	})

	// The ante can fell the start seat; the action opens on the next
	// seat that can act.
	if !h.Players[h.CurrentPlayer].Active() {
		h.advanceTurn()
	}
	return h, nil
}

// collectAntes takes each seat's ante into the pot. A seat that cannot
// cover its ante pays what it has and sits out the hand.
func (h *Hand) collectAntes() {
	antes := h.Config.BaseBetDistribution
	if antes == nil {
		antes = make([]int, h.Config.NumPlayers)
		for i := range antes {
			antes[i] = h.Config.BaseBet
		}
	}
	for i, p := range h.Players {
		ante := antes[i]
		if ante <= 0 {
			// A broke seat owes no ante but still sits out rather
			// than playing for free.
			if p.Chips <= 0 {
				p.Alive = false
				p.AllIn = true
			}
			continue
		}
		if p.Chips >= ante {
			p.Chips -= ante
			h.Pot += ante
		} else {
			p.Alive = false
			p.AllIn = true
			h.Pot += p.Chips
			p.Chips = 0
		}
	}
}

func (h *Hand) deal() {
	for i := 0; i < 3; i++ {
		for _, p := range h.Players {
			if card, ok := h.Deck.Draw(); ok {
				p.Hole = append(p.Hole, card)
			}
		}
	}
}

// AliveSeats returns the seats still contesting the hand, in seat order
func (h *Hand) AliveSeats() []int {
	var alive []int
	for i, p := range h.Players {
		if p.Alive {
			alive = append(alive, i)
		}
	}
	return alive
}

// ActiveSeats returns alive seats that are not all-in
func (h *Hand) ActiveSeats() []int {
	var active []int
	for i, p := range h.Players {
		if p.Active() {
			active = append(active, i)
		}
	}
	return active
}

// nextPlayer scans forward circularly from the given seat, skipping dead
// and all-in seats. The scan is bounded; if nobody else can act it
// returns the starting seat, signalling "no one left to act".
func (h *Hand) nextPlayer(from int) int {
	n := len(h.Players)
	i := (from + 1) % n
	count := 0
	for !h.Players[i].Alive || h.Players[i].AllIn {
		i = (i + 1) % n
		count++
		if count > n*2 {
			return from
		}
	}
	return i
}

// CallCost returns the chips seat must pay to call. Looked players pay
// double the dark bet.
func (h *Hand) CallCost(seat int) int {
	if h.Players[seat].Looked {
		return h.CurrentBet * 2
	}
	return h.CurrentBet
}

// CompareCost returns the chips seat must pay to challenge a compare
func (h *Hand) CompareCost(seat int) int {
	return h.CallCost(seat) * h.Config.CompareCostMultiplier
}

// AccuseCost returns the chips seat must pay to raise an accusation
func (h *Hand) AccuseCost(seat int) int {
	return h.CallCost(seat) * h.Config.AccuseCostMultiplier
}

// advanceTurn passes the action to the next active seat, or forces a
// showdown when at most one seat can still act.
func (h *Hand) advanceTurn() {
	if len(h.ActiveSeats()) <= 1 {
		h.forceShowdown()
		return
	}
	h.CurrentPlayer = h.nextPlayer(h.CurrentPlayer)
}

// Eliminate folds a seat out of the hand from outside the normal action
// flow (trial verdicts, effect penalties). Finishing conditions apply as
// for a fold.
func (h *Hand) Eliminate(seat int) {
	if h.Finished || seat < 0 || seat >= len(h.Players) {
		return
	}
	p := h.Players[seat]
	if !p.Alive {
		return
	}
	p.Alive = false
	alive := h.AliveSeats()
	if len(alive) <= 1 {
		winner := NoSeat
		if len(alive) == 1 {
			winner = alive[0]
		}
		h.finish(winner)
		return
	}
	if seat == h.CurrentPlayer {
		h.advanceTurn()
	}
}

// SeizeChips confiscates a seat's entire stack and returns the amount.
// Used by trial verdicts; all chip movement stays inside the engine.
func (h *Hand) SeizeChips(seat int) int {
	if seat < 0 || seat >= len(h.Players) {
		return 0
	}
	p := h.Players[seat]
	amount := p.Chips
	p.Chips = 0
	return amount
}

// AwardChips grants chips to a seat
func (h *Hand) AwardChips(seat, amount int) {
	if seat < 0 || seat >= len(h.Players) || amount <= 0 {
		return
	}
	h.Players[seat].Chips += amount
}

// AddToPot places chips directly into the pot (jury-less trial rewards,
// item penalties)
func (h *Hand) AddToPot(amount int) {
	if amount > 0 {
		h.Pot += amount
	}
}
