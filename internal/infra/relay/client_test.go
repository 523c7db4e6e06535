package relay

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"geolink/config"
	"geolink/internal/domain/service"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoRelay is a minimal stand-in for the demo relay: every message is
// echoed back to the sender.
type echoRelay struct {
	upgrader websocket.Upgrader
}

func (r *echoRelay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(mt, data); err != nil {
			return
		}
	}
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	cfg := &config.Config{Relay: &config.RelayConfig{
		URL:               url,
		BroadcastInterval: 3 * time.Second,
		ReconnectBackoff:  50 * time.Millisecond,
		MinRoomCodeLength: 3,
		DialTimeout:       2 * time.Second,
	}}
	client := New(Params{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}).(*Client)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func startRelay(t *testing.T) (*echoRelay, string) {
	t.Helper()
	relay := &echoRelay{}
	srv := httptest.NewServer(relay)
	t.Cleanup(srv.Close)

	return relay, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClient_ConnectSendReceive(t *testing.T) {
	_, url := startRelay(t)
	client := newTestClient(t, url)
	ctx := context.Background()

	client.SetRoom(ctx, "family2024")

	require.Eventually(t, func() bool {
		return client.Status() == service.RelayConnected
	}, 2*time.Second, 10*time.Millisecond)

	msg := service.RelayMessage{
		Room:   "family2024",
		UserID: "abc",
		Lat:    -23.55,
		Lng:    -46.63,
	}
	require.NoError(t, client.Send(ctx, msg))

	select {
	case got := <-client.Inbound():
		assert.Equal(t, msg, got)
	case <-time.After(2 * time.Second):
		t.Fatal("echoed message never arrived")
	}
}

func TestClient_ShortRoomCodeStaysDisconnected(t *testing.T) {
	_, url := startRelay(t)
	client := newTestClient(t, url)

	client.SetRoom(context.Background(), "ab")

	assert.Equal(t, service.RelayDisconnected, client.Status())
	assert.ErrorIs(t, client.Send(context.Background(), service.RelayMessage{}), service.ErrRelayNotConnected)
}

func TestClient_ClearingRoomTearsDown(t *testing.T) {
	_, url := startRelay(t)
	client := newTestClient(t, url)
	ctx := context.Background()

	client.SetRoom(ctx, "family2024")
	require.Eventually(t, func() bool {
		return client.Status() == service.RelayConnected
	}, 2*time.Second, 10*time.Millisecond)

	client.SetRoom(ctx, "")

	assert.Equal(t, service.RelayDisconnected, client.Status())
	assert.ErrorIs(t, client.Send(ctx, service.RelayMessage{}), service.ErrRelayNotConnected)
}

func TestClient_InvalidPayloadsAreDropped(t *testing.T) {
	relay := &echoRelay{}
	srv := httptest.NewServer(relay)
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	client := newTestClient(t, url)
	ctx := context.Background()
	client.SetRoom(ctx, "family2024")
	require.Eventually(t, func() bool {
		return client.Status() == service.RelayConnected
	}, 2*time.Second, 10*time.Millisecond)

	// Raw garbage and out-of-range coordinates must never surface.
	client.mu.Lock()
	conn := client.conn
	client.mu.Unlock()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"room":"family2024","userId":"x","lat":999,"lng":0}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"room":"family2024","userId":"ok","lat":1,"lng":2}`)))

	select {
	case got := <-client.Inbound():
		assert.Equal(t, "ok", got.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("valid message never arrived")
	}
	assert.Empty(t, client.Inbound())
}

func TestRelayMessage_Valid(t *testing.T) {
	tests := []struct {
		name string
		msg  service.RelayMessage
		want bool
	}{
		{name: "complete", msg: service.RelayMessage{Room: "r1", UserID: "u1", Lat: 1, Lng: 2}, want: true},
		{name: "missing room", msg: service.RelayMessage{UserID: "u1"}, want: false},
		{name: "missing sender", msg: service.RelayMessage{Room: "r1"}, want: false},
		{name: "lat out of range", msg: service.RelayMessage{Room: "r1", UserID: "u1", Lat: 90.1}, want: false},
		{name: "lng out of range", msg: service.RelayMessage{Room: "r1", UserID: "u1", Lng: -180.5}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.Valid())
		})
	}
}
