package server

import (
	"encoding/json"
	"time"

	"github.com/cardforge/zhajinhua/internal/game"
)

// MessageType identifies a websocket message
type MessageType string

const (
	// Server → client
	MessageTypeWelcome        MessageType = "welcome"
	MessageTypeActionRequired MessageType = "action_required"
	MessageTypeVoteRequired   MessageType = "vote_required"
	MessageTypeGameEvent      MessageType = "game_event"
	MessageTypeGameOver       MessageType = "game_over"
	MessageTypeError          MessageType = "error"

	// Client → server
	MessageTypeAction MessageType = "action"
	MessageTypeVote   MessageType = "vote"
)

// Message is the websocket envelope
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Server → client payloads

type WelcomeData struct {
	Seat         int `json:"seat"`
	Players      int `json:"players"`
	InitialChips int `json:"initialChips"`
}

type ActionRequiredData struct {
	Seat           int       `json:"seat"`
	View           game.View `json:"view"`
	TimeoutSeconds int       `json:"timeoutSeconds"`
}

type VoteRequiredData struct {
	Accuser        int       `json:"accuser"`
	Accused        [2]int    `json:"accused"`
	Table          game.View `json:"table"`
	TimeoutSeconds int       `json:"timeoutSeconds"`
}

type GameEventData struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type GameOverData struct {
	Winner int   `json:"winner"`
	Chips  []int `json:"chips"`
	Hands  int   `json:"hands"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client → server payloads

type ActionData struct {
	Action  string `json:"action"`
	Amount  int    `json:"amount,omitempty"`
	Target  *int   `json:"target,omitempty"`
	Target2 *int   `json:"target2,omitempty"`
}

type VoteData struct {
	Verdict string `json:"verdict"`
}
