package remote

import (
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, handler Handler) *websocket.Conn {
	t.Helper()

	srv := NewServer(handler, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, message string) Reply {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(message)))

	var reply Reply
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestServerForwardsMessages(t *testing.T) {
	var mu sync.Mutex
	var received []string
	conn := dial(t, func(message []byte) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, string(message))
		return nil
	})

	reply := roundTrip(t, conn, `{"type":"nextScene"}`)
	require.True(t, reply.OK)
	require.Empty(t, reply.Error)

	reply = roundTrip(t, conn, `{"type":"setRandomExpression"}`)
	require.True(t, reply.OK)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{`{"type":"nextScene"}`, `{"type":"setRandomExpression"}`}, received)
}

func TestServerRepliesWithHandlerError(t *testing.T) {
	conn := dial(t, func(message []byte) error {
		return errors.New("unknown command")
	})

	reply := roundTrip(t, conn, `{"type":"dance"}`)
	require.False(t, reply.OK)
	require.Equal(t, "unknown command", reply.Error)

	// the connection stays usable after a rejected command
	reply = roundTrip(t, conn, `{"type":"dance"}`)
	require.False(t, reply.OK)
}
