package service

import (
	"context"
	"errors"
)

// ErrRelayNotConnected is returned by Send while the relay is down.
// Callers treat it as a skipped broadcast, not a failure.
var ErrRelayNotConnected = errors.New("relay not connected")

// RelayStatus is the tri-state connection indicator for the shared
// relay channel.
type RelayStatus string

const (
	RelayDisconnected RelayStatus = "disconnected"
	RelayConnecting   RelayStatus = "connecting"
	RelayConnected    RelayStatus = "connected"
)

// RelayMessage is the symmetric JSON payload exchanged through the
// relay room, both outbound and inbound.
type RelayMessage struct {
	Room      string  `json:"room"`
	UserID    string  `json:"userId"`
	UserName  string  `json:"userName"`
	UserColor string  `json:"userColor"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// Valid reports whether an inbound payload carries the minimum
// well-typed shape to be admitted: room and sender present, coordinates
// in range. Anything else is dropped, never trusted.
func (m RelayMessage) Valid() bool {
	if m.Room == "" || m.UserID == "" {
		return false
	}
	if m.Lat < -90 || m.Lat > 90 {
		return false
	}
	if m.Lng < -180 || m.Lng > 180 {
		return false
	}

	return true
}

// RelayClient manages the websocket connection to the relay service.
// SetRoom drives the whole lifecycle: a room code of sufficient length
// connects (and keeps reconnecting on drops), a short or empty code
// tears everything down. Inbound carries decoded, shape-valid messages
// only.
type RelayClient interface {
	SetRoom(ctx context.Context, room string)
	Send(ctx context.Context, msg RelayMessage) error
	Inbound() <-chan RelayMessage
	Status() RelayStatus
	Close() error
}
