package tradeweb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/bnema/tradebot/internal/domain"
)

// flexBool accepts true, "true", 1 and "1". Anything else is false.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case `true`, `"true"`, `1`, `"1"`:
		*b = true
	default:
		*b = false
	}
	return nil
}

// flexInt accepts numbers and numeric strings; the trade endpoint mixes both.
type flexInt int64

func (n *flexInt) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil || raw == "" {
		*n = 0
		return err
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("parse integer %q: %w", raw, err)
	}
	*n = flexInt(parsed)
	return nil
}

type flexUint uint64

func (n *flexUint) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil || raw == "" {
		*n = 0
		return err
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("parse unsigned integer %q: %w", raw, err)
	}
	*n = flexUint(parsed)
	return nil
}

func unquoteNumber(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(data), nil
}

type commandResponse struct {
	Success flexBool `json:"success"`
	Error   string   `json:"error"`
	Version flexInt  `json:"version"`
}

type statusResponse struct {
	Success     flexBool     `json:"success"`
	Error       string       `json:"error"`
	NewVersion  flexBool     `json:"newversion"`
	TradeStatus flexInt      `json:"trade_status"`
	Version     flexInt      `json:"version"`
	LogPos      flexInt      `json:"logpos"`
	Me          partyPayload `json:"me"`
	Them        partyPayload `json:"them"`
	Events      eventList    `json:"events"`
}

type partyPayload struct {
	Ready         flexBool `json:"ready"`
	Confirmed     flexBool `json:"confirmed"`
	SecSinceTouch flexInt  `json:"sec_since_touch"`
}

type eventPayload struct {
	position int

	SteamID   string   `json:"steamid"`
	Action    flexInt  `json:"action"`
	Timestamp flexInt  `json:"timestamp"`
	AppID     flexInt  `json:"appid"`
	Text      string   `json:"text"`
	ContextID flexInt  `json:"contextid"`
	AssetID   flexUint `json:"assetid"`
}

// eventList decodes either a JSON array (position = index) or an object
// keyed by decimal log position.
type eventList []eventPayload

func (l *eventList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '[' {
		var events []eventPayload
		if err := json.Unmarshal(data, &events); err != nil {
			return err
		}
		for i := range events {
			events[i].position = i
		}
		*l = events
		return nil
	}

	var keyed map[string]eventPayload
	if err := json.Unmarshal(data, &keyed); err != nil {
		return err
	}
	events := make([]eventPayload, 0, len(keyed))
	for key, event := range keyed {
		position, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("parse event position %q: %w", key, err)
		}
		event.position = position
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].position < events[j].position
	})
	*l = events
	return nil
}

func (r statusResponse) snapshot() domain.StatusSnapshot {
	events := make([]domain.TradeEvent, 0, len(r.Events))
	for _, event := range r.Events {
		events = append(events, event.toDomain())
	}

	return domain.StatusSnapshot{
		Status:     domain.TradeStatus(r.TradeStatus),
		Error:      r.Error,
		NewVersion: bool(r.NewVersion),
		Version:    int(r.Version),
		LogPos:     int(r.LogPos),
		Me:         r.Me.toDomain(),
		Them:       r.Them.toDomain(),
		Events:     events,
	}
}

func (p partyPayload) toDomain() domain.PartyState {
	return domain.PartyState{
		Ready:                bool(p.Ready),
		Confirmed:            bool(p.Confirmed),
		SecondsSinceActivity: int(p.SecSinceTouch),
	}
}

func (e eventPayload) toDomain() domain.TradeEvent {
	var ts time.Time
	if e.Timestamp > 0 {
		ts = time.Unix(int64(e.Timestamp), 0).UTC()
	}

	return domain.TradeEvent{
		Position:  e.position,
		SteamID:   e.SteamID,
		Action:    domain.ParseEventAction(int(e.Action)),
		Timestamp: ts,
		AppID:     int(e.AppID),
		Text:      e.Text,
		Item: domain.ItemRef{
			AppID:     int(e.AppID),
			ContextID: int(e.ContextID),
			AssetID:   uint64(e.AssetID),
		},
	}
}
