package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func (h *EventHub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func dialHub(t *testing.T, hub *EventHub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial(
		"ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Registration happens after the handshake response is on the wire.
	require.Eventually(t, func() bool { return hub.clientCount() == 1 },
		time.Second, 5*time.Millisecond)
	return conn
}

// Request handlers broadcast from their own goroutines; every write to one
// subscriber must come out intact.
func TestEventHubConcurrentBroadcast(t *testing.T) {
	hub := NewEventHub()
	conn := dialHub(t, hub)

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			hub.Broadcast(InteractionEvent{ID: id, Intent: "APPOINTMENT"})
		}(int64(i + 1))
	}
	wg.Wait()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	seen := map[int64]bool{}
	for i := 0; i < n; i++ {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var ev InteractionEvent
		require.NoError(t, json.Unmarshal(data, &ev))
		require.Equal(t, "APPOINTMENT", ev.Intent)
		seen[ev.ID] = true
	}
	require.Len(t, seen, n)
	require.Equal(t, 1, hub.clientCount())
}

func TestEventHubDropsClosedClient(t *testing.T) {
	hub := NewEventHub()
	conn := dialHub(t, hub)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.clientCount() == 0 },
		time.Second, 5*time.Millisecond)

	// Broadcasting into an empty hub is a no-op.
	hub.Broadcast(InteractionEvent{ID: 1})
}
