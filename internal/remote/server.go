// Package remote accepts control commands over websocket connections.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingPeriod   = 30 * time.Second
)

// Handler applies one raw command message.
type Handler func(message []byte) error

// Reply is sent back for every received message.
type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Server forwards every text message of every client to a Handler.
type Server struct {
	handler  Handler
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	http    *http.Server
}

type client struct {
	conn   *websocket.Conn
	server *Server
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func NewServer(handler Handler, logger *slog.Logger) *Server {
	return &Server{
		handler: handler,
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", slog.Any("err", err))
		return
	}

	c := &client{
		conn:   conn,
		server: s,
		send:   make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	s.logger.Info("Remote client connected", slog.String("addr", conn.RemoteAddr().String()))

	go c.readPump()
	go c.writePump()
}

// ListenAndServe serves the websocket endpoint on addr under /ws. It
// returns http.ErrServerClosed after Close.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)

	s.mu.Lock()
	s.http = &http.Server{Addr: addr, Handler: mux}
	srv := s.http
	s.mu.Unlock()

	s.logger.Info("Remote control listening", slog.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) Close() error {
	s.mu.Lock()
	srv := s.http
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
		c.server.remove(c)
	})
}

func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.logger.Warn("Remote read failed", slog.Any("err", err))
			}
			return
		}

		c.conn.SetReadDeadline(time.Now().Add(readTimeout))

		reply := Reply{OK: true}
		if err := c.server.handler(message); err != nil {
			reply = Reply{Error: err.Error()}
			c.server.logger.Warn("Remote command rejected", slog.Any("err", err))
		}

		data, err := json.Marshal(reply)
		if err != nil {
			return
		}
		select {
		case c.send <- data:
		case <-c.done:
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
				c.server.logger.Debug("Remote close failed", slog.Any("err", err))
			}
			return
		}
	}
}
