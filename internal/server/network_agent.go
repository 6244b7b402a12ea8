package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardforge/zhajinhua/internal/agent"
	"github.com/cardforge/zhajinhua/internal/game"
)

// NetworkAgent proxies decisions to a remote websocket client. A client
// that times out, disconnects, or answers with an action it was not
// offered is folded; a missed vote counts as innocent, so one slow juror
// cannot stall a trial.
type NetworkAgent struct {
	seat         int
	sender       MessageSender
	logger       *log.Logger
	clock        quartz.Clock
	decisionSec  int
	voteSec      int
	decisionChan chan game.Action
	voteChan     chan agent.Verdict

	mu        sync.Mutex
	available []game.AvailableAction
}

// MessageSender delivers a message to the remote peer
type MessageSender interface {
	Send(msg *Message) error
}

// NewNetworkAgent creates a network agent for a remote seat
func NewNetworkAgent(seat int, sender MessageSender, logger *log.Logger, decisionSec, voteSec int, clock quartz.Clock) *NetworkAgent {
	return &NetworkAgent{
		seat:         seat,
		sender:       sender,
		logger:       logger.WithPrefix("network-agent").With("seat", seat),
		clock:        clock,
		decisionSec:  decisionSec,
		voteSec:      voteSec,
		decisionChan: make(chan game.Action, 1),
		voteChan:     make(chan agent.Verdict, 1),
	}
}

// Decide implements agent.Agent by asking the remote client
func (na *NetworkAgent) Decide(ctx context.Context, view game.View, available []game.AvailableAction) (game.Action, error) {
	na.mu.Lock()
	na.available = available
	na.mu.Unlock()
	na.drainDecisions()

	msg, err := NewMessage(MessageTypeActionRequired, ActionRequiredData{
		Seat:           na.seat,
		View:           view,
		TimeoutSeconds: na.decisionSec,
	})
	if err != nil {
		return game.Action{}, err
	}
	if err := na.sender.Send(msg); err != nil {
		return game.Action{}, fmt.Errorf("send action request: %w", err)
	}

	timeoutFired := make(chan struct{})
	timer := na.clock.AfterFunc(time.Duration(na.decisionSec)*time.Second, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	select {
	case action := <-na.decisionChan:
		na.logger.Debug("Received decision", "action", action.Type, "amount", action.Amount)
		return action, nil
	case <-timeoutFired:
		na.logger.Warn("Decision timeout, folding")
		return game.NewAction(na.seat, game.Fold), nil
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}
}

// Vote implements agent.Agent by asking the remote client for a verdict
func (na *NetworkAgent) Vote(ctx context.Context, trial agent.TrialView) (agent.Verdict, error) {
	na.drainVotes()

	msg, err := NewMessage(MessageTypeVoteRequired, VoteRequiredData{
		Accuser:        trial.Accuser,
		Accused:        trial.Accused,
		Table:          trial.Table,
		TimeoutSeconds: na.voteSec,
	})
	if err != nil {
		return agent.Innocent, err
	}
	if err := na.sender.Send(msg); err != nil {
		return agent.Innocent, fmt.Errorf("send vote request: %w", err)
	}

	timeoutFired := make(chan struct{})
	timer := na.clock.AfterFunc(time.Duration(na.voteSec)*time.Second, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	select {
	case verdict := <-na.voteChan:
		return verdict, nil
	case <-timeoutFired:
		na.logger.Warn("Vote timeout, counting as innocent")
		return agent.Innocent, nil
	case <-ctx.Done():
		return agent.Innocent, ctx.Err()
	}
}

// HandleAction processes an action frame from the remote client
func (na *NetworkAgent) HandleAction(data ActionData) error {
	kind, err := game.ParseActionType(strings.ToUpper(strings.TrimSpace(data.Action)))
	if err != nil {
		return err
	}

	na.mu.Lock()
	available := na.available
	na.mu.Unlock()
	offered := false
	for _, av := range available {
		if av.Type == kind {
			offered = true
			break
		}
	}
	if !offered {
		return fmt.Errorf("action %s is not currently offered", kind)
	}

	action := game.NewAction(na.seat, kind)
	action.Amount = data.Amount
	if data.Target != nil {
		action.Target = *data.Target
	}
	if data.Target2 != nil {
		action.Target2 = *data.Target2
	}

	select {
	case na.decisionChan <- action:
		return nil
	default:
		return fmt.Errorf("no pending action request for seat %d", na.seat)
	}
}

// HandleVote processes a vote frame from the remote client
func (na *NetworkAgent) HandleVote(data VoteData) error {
	verdict := agent.Innocent
	if strings.EqualFold(strings.TrimSpace(data.Verdict), string(agent.Guilty)) {
		verdict = agent.Guilty
	}
	select {
	case na.voteChan <- verdict:
		return nil
	default:
		return fmt.Errorf("no pending vote request for seat %d", na.seat)
	}
}

// drainDecisions discards any stale decision left over from a previous
// request that timed out after the client answered
func (na *NetworkAgent) drainDecisions() {
	select {
	case <-na.decisionChan:
	default:
	}
}

func (na *NetworkAgent) drainVotes() {
	select {
	case <-na.voteChan:
	default:
	}
}
