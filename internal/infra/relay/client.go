// Package relay maintains the websocket connection to the shared relay
// service. The relay is a dumb pipe: no authentication, no delivery
// guarantees, room isolation is client-side filtering only.
package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"geolink/config"
	"geolink/internal/domain/service"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const inboundBuffer = 64

// Params defines the parameters required for the relay client.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Client implements service.RelayClient over a gorilla websocket.
//
// A generation counter guards every asynchronous callback: SetRoom and
// Close bump it, so a dial result or reconnect timer from a previous
// room can never resurrect a torn-down connection.
type Client struct {
	cfg    *config.RelayConfig
	logger *slog.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	room      string
	gen       int
	status    service.RelayStatus
	reconnect *time.Timer
	closed    bool

	inbound chan service.RelayMessage
}

// New creates a relay client in the disconnected state. No connection
// is attempted until SetRoom supplies a usable room code.
func New(params Params) service.RelayClient {
	return &Client{
		cfg:     params.Config.Relay,
		logger:  params.Logger,
		status:  service.RelayDisconnected,
		inbound: make(chan service.RelayMessage, inboundBuffer),
	}
}

// SetRoom switches the client to a new room. A code shorter than the
// configured minimum tears the connection down and stays disconnected;
// anything else reconnects immediately.
func (c *Client) SetRoom(ctx context.Context, room string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.room = room
	c.gen++
	c.stopReconnectLocked()
	c.dropConnLocked()

	if !c.roomUsableLocked() {
		c.status = service.RelayDisconnected

		return
	}

	c.status = service.RelayConnecting
	go c.dial(c.gen)
}

// Send broadcasts one message. Best effort: while disconnected it
// returns ErrNotConnected and the caller moves on.
func (c *Client) Send(_ context.Context, msg service.RelayMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return service.ErrRelayNotConnected
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal relay message")
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.Wrap(err, "write relay message")
	}

	return nil
}

// Inbound returns the channel of decoded, shape-valid relay messages.
func (c *Client) Inbound() <-chan service.RelayMessage {
	return c.inbound
}

// Status returns the tri-state connection indicator.
func (c *Client) Status() service.RelayStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

// Close tears everything down permanently.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.gen++
	c.stopReconnectLocked()
	c.dropConnLocked()
	c.status = service.RelayDisconnected

	return nil
}

func (c *Client) dial(gen int) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.DialTimeout)
	defer cancel()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.closed {
		if conn != nil {
			conn.Close()
		}

		return
	}

	if err != nil {
		c.logger.Warn("relay dial failed",
			slog.String("url", c.cfg.URL),
			slog.Any("error", err),
		)
		c.status = service.RelayDisconnected
		c.scheduleReconnectLocked(gen)

		return
	}

	c.conn = conn
	c.status = service.RelayConnected
	c.logger.Info("relay connected", slog.String("room", c.room))
	go c.readLoop(gen, conn)
}

// readLoop drains the socket until it dies, forwarding valid payloads.
func (c *Client) readLoop(gen int, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleDisconnect(gen, err)

			return
		}

		var msg service.RelayMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// The demo relay is a shared channel; garbage is expected.
			continue
		}
		if !msg.Valid() {
			continue
		}

		select {
		case c.inbound <- msg:
		default:
			c.logger.Warn("relay inbound buffer full, dropping message")
		}
	}
}

func (c *Client) handleDisconnect(gen int, cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.closed {
		return
	}

	c.logger.Warn("relay connection lost", slog.Any("error", cause))
	c.dropConnLocked()
	c.status = service.RelayDisconnected
	c.scheduleReconnectLocked(gen)
}

// scheduleReconnectLocked arms the fixed-backoff retry while the room
// code is still usable.
func (c *Client) scheduleReconnectLocked(gen int) {
	if !c.roomUsableLocked() {
		return
	}

	c.reconnect = time.AfterFunc(c.cfg.ReconnectBackoff, func() {
		c.mu.Lock()
		if gen != c.gen || c.closed {
			c.mu.Unlock()

			return
		}
		c.status = service.RelayConnecting
		c.mu.Unlock()

		c.dial(gen)
	})
}

func (c *Client) stopReconnectLocked() {
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
}

func (c *Client) dropConnLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Client) roomUsableLocked() bool {
	return len(c.room) >= c.cfg.MinRoomCodeLength
}
