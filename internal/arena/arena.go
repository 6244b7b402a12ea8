package arena

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/cardforge/zhajinhua/internal/agent"
	"github.com/cardforge/zhajinhua/internal/game"
)

// Options configures a tournament. Game is the per-hand template; its
// BaseBet is the per-seat ante for a full table and is rebuilt each hand
// from the escalated table total.
type Options struct {
	Game          game.Config
	MaxHands      int // 0 means play until one seat holds all the chips
	AnteInterval  int // hands between ante escalations, 0 disables
	AnteIncrement int // chips added to the table ante each escalation
	Hooks         game.Hooks
	Events        game.Sink
}

// Arena drives a multi-hand tournament: it deals hands, routes decisions
// to each seat's agent, applies the fold fallback for misbehaving agents,
// resolves accusation trials, and carries chips between hands.
type Arena struct {
	opts   Options
	agents []agent.Agent
	chips  []int
	rng    *rand.Rand
	logger *log.Logger

	handCount     int
	lastWinner    int
	baseAnteTotal int
}

// New creates an arena with one agent per seat. Stacks start at
// InitialChips each.
func New(rng *rand.Rand, logger *log.Logger, opts Options, agents []agent.Agent) (*Arena, error) {
	if rng == nil {
		panic("rng is required for arena creation")
	}
	if err := opts.Game.Validate(); err != nil {
		return nil, err
	}
	if len(agents) != opts.Game.NumPlayers {
		return nil, fmt.Errorf("arena: %d agents for %d seats", len(agents), opts.Game.NumPlayers)
	}
	chips := make([]int, opts.Game.NumPlayers)
	for i := range chips {
		chips[i] = opts.Game.InitialChips
	}
	return &Arena{
		opts:          opts,
		agents:        agents,
		chips:         chips,
		rng:           rng,
		logger:        logger,
		lastWinner:    game.NoSeat,
		baseAnteTotal: opts.Game.BaseBet * opts.Game.NumPlayers,
	}, nil
}

// Chips returns a copy of the current stacks
func (a *Arena) Chips() []int {
	out := make([]int, len(a.chips))
	copy(out, a.chips)
	return out
}

// HandsPlayed returns how many hands have been dealt so far
func (a *Arena) HandsPlayed() int {
	return a.handCount
}

// Run plays hands until one seat holds all the chips, MaxHands is
// reached, or the context is cancelled. It returns the winning seat, or
// NoSeat when the tournament stopped with several seats still funded.
func (a *Arena) Run(ctx context.Context) (int, error) {
	for a.fundedCount() > 1 {
		if a.opts.MaxHands > 0 && a.handCount >= a.opts.MaxHands {
			break
		}
		if err := ctx.Err(); err != nil {
			return game.NoSeat, err
		}
		if err := a.playHand(ctx); err != nil {
			return game.NoSeat, err
		}
	}
	if seats := a.fundedSeats(); len(seats) == 1 {
		a.logger.Info("Tournament over", "winner", seats[0], "chips", a.chips[seats[0]], "hands", a.handCount)
		return seats[0], nil
	}
	a.logger.Info("Tournament stopped", "hands", a.handCount, "chips", a.chips)
	return game.NoSeat, nil
}

// playHand deals and plays a single hand to completion
func (a *Arena) playHand(ctx context.Context) error {
	a.handCount++
	cfg := a.opts.Game
	cfg.BaseBet, cfg.BaseBetDistribution = a.anteDistribution()

	start := a.startSeat()
	h, err := game.NewHand(a.rng, cfg, a.Chips(),
		game.WithStartPlayer(start),
		game.WithHooks(a.opts.Hooks),
		game.WithEvents(a.opts.Events))
	if err != nil {
		return err
	}
	a.logger.Info("Hand start", "hand", a.handCount, "dealer", start, "pot", h.Pot, "baseBet", cfg.BaseBet)

	for !h.Finished {
		if err := ctx.Err(); err != nil {
			return err
		}
		cur := h.CurrentPlayer

		// All-in seats are stepped with a placeholder so the engine
		// advances past them.
		if h.Players[cur].AllIn {
			if err := h.Step(game.NewAction(cur, game.Fold)); err != nil {
				return err
			}
			continue
		}

		action := a.decide(ctx, h, cur)
		if err := h.Step(action); err != nil {
			a.logger.Warn("Action rejected, folding", "hand", a.handCount, "seat", cur, "action", action.Type, "error", err)
			action = game.NewAction(cur, game.Fold)
			if err := h.Step(action); err != nil {
				return fmt.Errorf("arena: fold fallback rejected: %w", err)
			}
		}
		a.logger.Debug("Action", "hand", a.handCount, "seat", cur, "action", action.Type,
			"amount", action.Amount, "pot", h.Pot, "currentBet", h.CurrentBet)

		if action.Type == game.Accuse && !h.Finished {
			a.runTrial(ctx, h, action)
		}
	}

	for i, p := range h.Players {
		a.chips[i] = p.Chips
	}
	if h.Winner != game.NoSeat {
		a.lastWinner = h.Winner
	}
	a.logger.Info("Hand end", "hand", a.handCount, "winner", h.Winner, "pot", h.PotAtShowdown, "chips", a.chips)
	return nil
}

// decide asks the seat's agent for an action, substituting FOLD when the
// agent errors or names an action it was not offered.
func (a *Arena) decide(ctx context.Context, h *game.Hand, seat int) game.Action {
	available := h.AvailableActions(seat)
	action, err := a.agents[seat].Decide(ctx, h.View(seat), available)
	if err != nil {
		a.logger.Warn("Decision failed, folding", "hand", a.handCount, "seat", seat, "error", err)
		return game.NewAction(seat, game.Fold)
	}
	action.Player = seat
	for _, av := range available {
		if av.Type == action.Type {
			return action
		}
	}
	a.logger.Warn("Decision not offered, folding", "hand", a.handCount, "seat", seat, "action", action.Type)
	return game.NewAction(seat, game.Fold)
}

// startSeat rotates the lead to the seat after the last winner, skipping
// broke seats
func (a *Arena) startSeat() int {
	n := len(a.chips)
	seat := (a.lastWinner + 1) % n
	if seat < 0 {
		seat = 0
	}
	for attempts := 0; a.chips[seat] <= 0; attempts++ {
		seat = (seat + 1) % n
		if attempts > n {
			return 0
		}
	}
	return seat
}

// anteDistribution splits the escalated table ante evenly across funded
// seats, earliest seats taking the remainder. Broke seats owe nothing.
func (a *Arena) anteDistribution() (int, []int) {
	total := a.baseAnteTotal
	if a.opts.AnteInterval > 0 {
		total += (a.handCount - 1) / a.opts.AnteInterval * a.opts.AnteIncrement
	}

	dist := make([]int, len(a.chips))
	funded := a.fundedSeats()
	if len(funded) == 0 {
		return 0, dist
	}
	share := total / len(funded)
	remainder := total % len(funded)
	for order, seat := range funded {
		dist[seat] = share
		if order < remainder {
			dist[seat]++
		}
	}
	// The dark-bet unit rounds up on an uneven split so it never
	// undercuts the largest ante paid.
	if remainder > 0 {
		share++
	}
	return share, dist
}

func (a *Arena) fundedSeats() []int {
	var seats []int
	for i, c := range a.chips {
		if c > 0 {
			seats = append(seats, i)
		}
	}
	return seats
}

func (a *Arena) fundedCount() int {
	return len(a.fundedSeats())
}
