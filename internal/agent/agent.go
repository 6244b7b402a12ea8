package agent

import (
	"context"
	"math/rand"

	"github.com/cardforge/zhajinhua/internal/game"
)

// Verdict is a juror's vote in an accusation trial
type Verdict string

const (
	Guilty   Verdict = "GUILTY"
	Innocent Verdict = "INNOCENT"
)

// TrialView is the context a juror votes on
type TrialView struct {
	Accuser  int       `json:"accuser"`
	Accused  [2]int    `json:"accused"`
	Evidence []string  `json:"evidence,omitempty"`
	Table    game.View `json:"table"`
}

// Agent is a decision provider: any entity (scripted strategy, remote
// client, LLM) that chooses actions for a seat. Agents receive immutable
// views and return decisions; they never mutate game state. The seat
// being asked is view.CurrentPlayer.
type Agent interface {
	Decide(ctx context.Context, view game.View, available []game.AvailableAction) (game.Action, error)
	Vote(ctx context.Context, trial TrialView) (Verdict, error)
}

// Folder always folds and never convicts
type Folder struct{}

func (Folder) Decide(_ context.Context, view game.View, _ []game.AvailableAction) (game.Action, error) {
	return game.NewAction(view.CurrentPlayer, game.Fold), nil
}

func (Folder) Vote(context.Context, TrialView) (Verdict, error) {
	return Innocent, nil
}

// Caller calls when it can, otherwise shoves, otherwise folds
type Caller struct{}

func (Caller) Decide(_ context.Context, view game.View, available []game.AvailableAction) (game.Action, error) {
	for _, a := range available {
		if a.Type == game.Call {
			return game.NewAction(view.CurrentPlayer, game.Call), nil
		}
	}
	for _, a := range available {
		if a.Type == game.AllInShowdown {
			return game.NewAction(view.CurrentPlayer, game.AllInShowdown), nil
		}
	}
	return game.NewAction(view.CurrentPlayer, game.Fold), nil
}

func (Caller) Vote(context.Context, TrialView) (Verdict, error) {
	return Innocent, nil
}

// Random picks uniformly among the offered actions. Raises use the
// minimum increment and compares target a random other alive seat, which
// keeps it legal without any strategy.
type Random struct {
	Rng *rand.Rand
}

// NewRandom creates a random agent with a seeded RNG
func NewRandom(seed int64) *Random {
	return &Random{Rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Decide(_ context.Context, view game.View, available []game.AvailableAction) (game.Action, error) {
	if len(available) == 0 {
		return game.NewAction(view.CurrentPlayer, game.Fold), nil
	}
	seat := view.CurrentPlayer
	choice := available[r.Rng.Intn(len(available))]

	switch choice.Type {
	case game.Raise:
		return game.NewRaise(seat, 10), nil
	case game.Compare:
		targets := r.otherAlive(view, seat)
		if len(targets) == 0 {
			return game.NewAction(seat, game.Fold), nil
		}
		return game.NewCompare(seat, targets[r.Rng.Intn(len(targets))]), nil
	case game.Accuse:
		targets := r.otherAlive(view, seat)
		if len(targets) < 2 {
			return game.NewAction(seat, game.Fold), nil
		}
		r.Rng.Shuffle(len(targets), func(i, j int) { targets[i], targets[j] = targets[j], targets[i] })
		return game.NewAccuse(seat, targets[0], targets[1]), nil
	default:
		return game.NewAction(seat, choice.Type), nil
	}
}

func (r *Random) Vote(context.Context, TrialView) (Verdict, error) {
	if r.Rng.Intn(2) == 0 {
		return Guilty, nil
	}
	return Innocent, nil
}

func (r *Random) otherAlive(view game.View, seat int) []int {
	var targets []int
	for _, p := range view.Players {
		if p.Seat != seat && p.Alive {
			targets = append(targets, p.Seat)
		}
	}
	return targets
}
