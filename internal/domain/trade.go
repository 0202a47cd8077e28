package domain

import "time"

// Cursor is the replay position against the remote trade event log.
// Both fields only move forward.
type Cursor struct {
	LogPos  int
	Version int
}

func NewCursor() Cursor {
	return Cursor{Version: 1}
}

func (c Cursor) Advance(version, logPos int) Cursor {
	if version > c.Version {
		c.Version = version
	}
	if logPos > c.LogPos {
		c.LogPos = logPos
	}
	return c
}

type TradeStatus int

const (
	TradeStatusActive    TradeStatus = 0
	TradeStatusCompleted TradeStatus = 1
	TradeStatusEmpty     TradeStatus = 2
	TradeStatusCancelled TradeStatus = 3
	TradeStatusTimedOut  TradeStatus = 4
	TradeStatusFailed    TradeStatus = 5
)

func (s TradeStatus) Terminal() bool {
	switch s {
	case TradeStatusCompleted, TradeStatusCancelled, TradeStatusTimedOut, TradeStatusFailed:
		return true
	default:
		return false
	}
}

func (s TradeStatus) String() string {
	switch s {
	case TradeStatusActive:
		return "active"
	case TradeStatusCompleted:
		return "completed"
	case TradeStatusEmpty:
		return "empty"
	case TradeStatusCancelled:
		return "cancelled"
	case TradeStatusTimedOut:
		return "timed_out"
	case TradeStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type EventAction int

const (
	ActionItemAdded   EventAction = 0
	ActionItemRemoved EventAction = 1
	ActionReady       EventAction = 2
	ActionUnready     EventAction = 3
	ActionAccepted    EventAction = 4
	ActionMessage     EventAction = 7
	ActionUnknown     EventAction = -1
)

func ParseEventAction(code int) EventAction {
	switch EventAction(code) {
	case ActionItemAdded, ActionItemRemoved, ActionReady, ActionUnready, ActionAccepted, ActionMessage:
		return EventAction(code)
	default:
		return ActionUnknown
	}
}

const (
	// ItemAppID and ItemContextID name the only item container trades touch.
	ItemAppID     = 440
	ItemContextID = 2
)

type ItemRef struct {
	AppID     int
	ContextID int
	AssetID   uint64
}

// TradeEvent is one entry of the remote event log.
type TradeEvent struct {
	Position  int
	SteamID   string
	Action    EventAction
	Timestamp time.Time
	AppID     int
	Text      string
	Item      ItemRef
	FromSelf  bool
}

type PartyState struct {
	Ready                bool
	Confirmed            bool
	SecondsSinceActivity int
}

// StatusSnapshot is one decoded poll response.
type StatusSnapshot struct {
	Status     TradeStatus
	Error      string
	NewVersion bool
	Version    int
	LogPos     int
	Me         PartyState
	Them       PartyState
	Events     []TradeEvent
}

// Tail returns the position following the last event, or 0 without events.
func (s StatusSnapshot) Tail() int {
	tail := 0
	for _, event := range s.Events {
		if event.Position+1 > tail {
			tail = event.Position + 1
		}
	}
	return tail
}

// Outcome tags the result of a mutating trade call.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeRejected
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	default:
		return "transport_error"
	}
}
