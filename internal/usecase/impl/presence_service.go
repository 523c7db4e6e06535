package impl

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"geolink/config"
	"geolink/internal/domain/entity"
	"geolink/internal/domain/repository"
	"geolink/internal/domain/service"
	"geolink/internal/usecase"
)

// ErrRoomCodeTooShort is returned when a non-empty room code is below
// the configured minimum length.
var ErrRoomCodeTooShort = errors.New("room code too short")

type presenceService struct {
	repo     repository.SettingsRepository
	relay    service.RelayClient
	settings usecase.SettingsUsecase
	cfg      *config.PresenceConfig
	minRoom  int

	mu    sync.Mutex
	room  string
	peers map[string]entity.Peer

	now func() time.Time
}

// NewPresenceService creates a new presence service instance. A room
// code persisted from a previous run is restored and the relay
// connection re-established immediately.
func NewPresenceService(
	repo repository.SettingsRepository,
	relay service.RelayClient,
	settings usecase.SettingsUsecase,
	cfg *config.Config,
) (usecase.PresenceUsecase, error) {
	ctx := context.Background()

	room, err := repo.LoadRoomCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load room code: %w", err)
	}

	s := &presenceService{
		repo:     repo,
		relay:    relay,
		settings: settings,
		cfg:      cfg.Presence,
		minRoom:  cfg.Relay.MinRoomCodeLength,
		room:     room,
		peers:    make(map[string]entity.Peer),
		now:      time.Now,
	}

	if room != "" {
		relay.SetRoom(ctx, room)
	}

	return s, nil
}

// Room returns the active room code, empty when not in a room.
func (s *presenceService) Room(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.room
}

// SetRoom joins a new room or, with an empty code, leaves the current
// one. Either way the peer registry starts empty: peers from the old
// room must not linger in the new one.
func (s *presenceService) SetRoom(ctx context.Context, code string) error {
	if code != "" && len(code) < s.minRoom {
		return ErrRoomCodeTooShort
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveRoomCode(ctx, code); err != nil {
		return fmt.Errorf("failed to save room code: %w", err)
	}

	s.room = code
	s.peers = make(map[string]entity.Peer)
	s.relay.SetRoom(ctx, code)

	return nil
}

// Peers returns a snapshot of the registry, ordered by name for stable
// presentation.
func (s *presenceService) Peers(_ context.Context) []entity.Peer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Peer, 0, len(s.peers))
	for _, peer := range s.peers {
		out = append(out, peer)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}

		return out[i].ID < out[j].ID
	})

	return out
}

// HandleBroadcast upserts a peer from an inbound relay message. The
// relay is a shared channel, so messages for other rooms and this
// device's own echoes are dropped here.
func (s *presenceService) HandleBroadcast(ctx context.Context, msg service.RelayMessage) {
	selfID := s.settings.Identity(ctx).ID.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room == "" || msg.Room != s.room {
		return
	}
	if msg.UserID == selfID {
		return
	}

	s.peers[msg.UserID] = entity.Peer{
		ID:       msg.UserID,
		Name:     msg.UserName,
		Color:    msg.UserColor,
		Lat:      msg.Lat,
		Lng:      msg.Lng,
		LastSeen: s.now(),
	}
}

// Broadcast sends this device's identity and position into the current
// room. Nothing is sent while not in a room, and a disconnected relay
// is not an error.
func (s *presenceService) Broadcast(ctx context.Context, fix entity.Fix) error {
	s.mu.Lock()
	room := s.room
	s.mu.Unlock()

	if room == "" {
		return nil
	}

	identity := s.settings.Identity(ctx)
	msg := service.RelayMessage{
		Room:      room,
		UserID:    identity.ID.String(),
		UserName:  identity.Name,
		UserColor: identity.Color,
		Lat:       fix.Lat,
		Lng:       fix.Lng,
	}

	if err := s.relay.Send(ctx, msg); err != nil {
		if errors.Is(err, service.ErrRelayNotConnected) {
			return nil
		}

		return fmt.Errorf("failed to send presence broadcast: %w", err)
	}

	return nil
}

// EvictStale removes peers whose last broadcast is older than the TTL.
func (s *presenceService) EvictStale(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.cfg.PeerTTL)
	for id, peer := range s.peers {
		if peer.LastSeen.Before(cutoff) {
			delete(s.peers, id)
		}
	}
}

// Status reports the relay connection state.
func (s *presenceService) Status(_ context.Context) service.RelayStatus {
	return s.relay.Status()
}
