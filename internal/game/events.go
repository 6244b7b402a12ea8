package game

import "time"

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStart EventType = "hand_start"
	EventTypeAction    EventType = "action"
	EventTypeCompare   EventType = "compare"
	EventTypeHandEnd   EventType = "hand_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event represents any event published by the engine
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// Sink receives engine events. Publishing happens synchronously on the
// engine's single thread; sinks must not call back into the hand.
type Sink interface {
	Publish(Event)
}

// HandStartEvent is published once antes are collected and cards dealt
type HandStartEvent struct {
	Players     int
	Pot         int
	CurrentBet  int
	StartPlayer int
	timestamp   time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// ActionEvent is published for every accepted action
type ActionEvent struct {
	Action     Action
	PotAfter   int
	CurrentBet int
	timestamp  time.Time
}

func (e ActionEvent) EventType() EventType { return EventTypeAction }
func (e ActionEvent) Timestamp() time.Time { return e.timestamp }

// CompareEvent is published when a compare or all-in showdown resolves
type CompareEvent struct {
	Attacker   int
	Defender   int
	Result     int
	Loser      int // NoSeat when nobody was eliminated
	Overridden bool
	timestamp  time.Time
}

func (e CompareEvent) EventType() EventType { return EventTypeCompare }
func (e CompareEvent) Timestamp() time.Time { return e.timestamp }

// HandEndEvent is published when the hand finishes
type HandEndEvent struct {
	Winner    int // NoSeat when no survivor
	Pot       int // pot value paid out
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

func (h *Hand) publish(e Event) {
	if h.events != nil {
		h.events.Publish(e)
	}
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(Event)

// Publish implements Sink
func (f SinkFunc) Publish(e Event) { f(e) }
