package arena

import (
	"context"

	"github.com/cardforge/zhajinhua/internal/agent"
	"github.com/cardforge/zhajinhua/internal/game"
)

// TrialOutcome records how an accusation was resolved
type TrialOutcome struct {
	Accuser   int
	Accused   [2]int
	Jury      []int
	Votes     map[int]agent.Verdict
	Unanimous bool // every juror voted GUILTY
	Void      bool // no jury could be seated; nothing happened
	Seized    int  // total chips forfeited by the losing side
}

// runTrial resolves an accepted ACCUSE action. The jury is every alive,
// non-all-in seat outside the three parties. A unanimous GUILTY verdict
// executes both accused: their stacks are forfeited, 70% to the accuser
// and the rest split across the jury with the rounding remainder to the
// first juror. Anything short of unanimity executes the accuser instead,
// the accused splitting the forfeiture. With no jurors available the
// trial is void; the accusation fee stays in the pot either way.
func (a *Arena) runTrial(ctx context.Context, h *game.Hand, action game.Action) TrialOutcome {
	out := TrialOutcome{
		Accuser: action.Player,
		Accused: [2]int{action.Target, action.Target2},
		Votes:   make(map[int]agent.Verdict),
	}

	for _, seat := range h.AliveSeats() {
		if seat == out.Accuser || seat == out.Accused[0] || seat == out.Accused[1] {
			continue
		}
		if h.Players[seat].AllIn {
			continue
		}
		out.Jury = append(out.Jury, seat)
	}
	if len(out.Jury) == 0 {
		out.Void = true
		a.logger.Info("Trial void, no jury available", "hand", a.handCount, "accuser", out.Accuser)
		return out
	}
	a.logger.Info("Trial convened", "hand", a.handCount,
		"accuser", out.Accuser, "accused", out.Accused, "jury", out.Jury)

	trial := agent.TrialView{
		Accuser: out.Accuser,
		Accused: out.Accused,
		Table:   h.View(game.NoSeat),
	}
	out.Unanimous = true
	for _, juror := range out.Jury {
		verdict, err := a.agents[juror].Vote(ctx, trial)
		if err != nil {
			a.logger.Warn("Vote failed, counting as innocent", "hand", a.handCount, "juror", juror, "error", err)
			verdict = agent.Innocent
		}
		out.Votes[juror] = verdict
		if verdict != agent.Guilty {
			out.Unanimous = false
		}
		a.logger.Debug("Vote", "hand", a.handCount, "juror", juror, "verdict", verdict)
	}

	if out.Unanimous {
		out.Seized = h.SeizeChips(out.Accused[0]) + h.SeizeChips(out.Accused[1])
		h.Eliminate(out.Accused[0])
		h.Eliminate(out.Accused[1])

		accuserShare := out.Seized * 7 / 10
		juryPool := out.Seized - accuserShare
		h.AwardChips(out.Accuser, accuserShare)
		perJuror := juryPool / len(out.Jury)
		for i, juror := range out.Jury {
			award := perJuror
			if i == 0 {
				award += juryPool % len(out.Jury)
			}
			h.AwardChips(juror, award)
		}
		a.logger.Info("Verdict guilty", "hand", a.handCount,
			"seized", out.Seized, "accuserShare", accuserShare, "juryPool", juryPool)
		return out
	}

	out.Seized = h.SeizeChips(out.Accuser)
	h.Eliminate(out.Accuser)
	half := out.Seized / 2
	h.AwardChips(out.Accused[0], half)
	h.AwardChips(out.Accused[1], out.Seized-half)
	a.logger.Info("Verdict not unanimous, accuser executed", "hand", a.handCount,
		"accuser", out.Accuser, "seized", out.Seized)
	return out
}
