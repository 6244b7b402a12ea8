package game

// FaceDown is the placeholder shown for hole cards the viewer may not see
const FaceDown = "🂠"

// PlayerView is one seat as a given viewer sees it
type PlayerView struct {
	Seat   int      `json:"seat"`
	Chips  int      `json:"chips"`
	Alive  bool     `json:"alive"`
	Looked bool     `json:"looked"`
	AllIn  bool     `json:"allIn"`
	Hand   []string `json:"hand"`
}

// AvailableActionView pairs an action's wire name with its displayed cost
type AvailableActionView struct {
	Action string `json:"action"`
	Cost   int    `json:"cost"`
}

// HistoryEntry is one logged action in wire form
type HistoryEntry struct {
	Player int    `json:"player"`
	Type   string `json:"type"`
	Amount int    `json:"amount,omitempty"`
	Target int    `json:"target,omitempty"`
}

// View is a read-only projection of the hand for one viewer. Other
// players' unlooked hole cards are never exposed; at hand end all alive
// hands are revealed.
type View struct {
	Finished      bool                  `json:"finished"`
	Winner        int                   `json:"winner"`
	Pot           int                   `json:"pot"`
	CurrentBet    int                   `json:"currentBet"`
	CurrentPlayer int                   `json:"currentPlayer"`
	RoundCount    int                   `json:"roundCount"`
	Players       []PlayerView          `json:"players"`
	Available     []AvailableActionView `json:"availableActions"`
	History       []HistoryEntry        `json:"history"`
}

// View builds the redacted projection for a viewer seat. Pass NoSeat for
// a spectator who sees no hole cards before the hand ends.
func (h *Hand) View(viewer int) View {
	v := View{
		Finished:      h.Finished,
		Winner:        h.Winner,
		Pot:           h.Pot,
		CurrentBet:    h.CurrentBet,
		CurrentPlayer: h.CurrentPlayer,
		RoundCount:    h.RoundCount,
	}

	for i, p := range h.Players {
		hand := []string{FaceDown, FaceDown, FaceDown}
		switch {
		case h.Finished && p.Alive:
			hand = cardStrings(p)
		case viewer == i && p.Looked:
			hand = cardStrings(p)
		}
		v.Players = append(v.Players, PlayerView{
			Seat:   i,
			Chips:  p.Chips,
			Alive:  p.Alive,
			Looked: p.Looked,
			AllIn:  p.AllIn,
			Hand:   hand,
		})
	}

	if viewer != NoSeat && viewer == h.CurrentPlayer && !h.Finished {
		for _, a := range h.AvailableActions(viewer) {
			v.Available = append(v.Available, AvailableActionView{
				Action: a.Type.String(),
				Cost:   a.Cost,
			})
		}
	}

	for _, a := range h.History {
		v.History = append(v.History, HistoryEntry{
			Player: a.Player,
			Type:   a.Type.String(),
			Amount: a.Amount,
			Target: a.Target,
		})
	}
	return v
}

func cardStrings(p *Player) []string {
	out := make([]string, 0, len(p.Hole))
	for _, c := range p.Hole {
		out = append(out, c.String())
	}
	return out
}
