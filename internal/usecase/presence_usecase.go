package usecase

import (
	"context"

	"geolink/internal/domain/entity"
	"geolink/internal/domain/service"
)

// PresenceUsecase owns the room lifecycle and the registry of peers
// seen in it. Setting a room persists the code, redirects the relay
// connection and empties the registry; peers from other rooms or from
// this device itself are never admitted.
type PresenceUsecase interface {
	Room(ctx context.Context) string
	SetRoom(ctx context.Context, code string) error

	Peers(ctx context.Context) []entity.Peer
	HandleBroadcast(ctx context.Context, msg service.RelayMessage)

	// Broadcast sends this device's identity and position into the
	// current room. A disconnected relay makes it a silent no-op.
	Broadcast(ctx context.Context, fix entity.Fix) error

	// EvictStale removes peers not heard from within the configured
	// TTL.
	EvictStale(ctx context.Context)

	Status(ctx context.Context) service.RelayStatus
}
