package uichannel

import (
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

// SocketIOPath is where the socket.io handler is mounted on the bridge server.
const SocketIOPath = "/socket.io/"

// SocketIO broadcasts UI events to every connected socket.io client. It
// serves web UIs that are not hosted by the native window, such as the dev
// server in a browser.
type SocketIO struct {
	logger  *slog.Logger
	server  *socket.Server
	handler http.Handler
	clients atomic.Int64

	firstOnce   sync.Once
	firstClient chan struct{}
}

// NewSocketIO creates the socket.io server. Mount Handler() at SocketIOPath.
func NewSocketIO(logger *slog.Logger) *SocketIO {
	if logger == nil {
		logger = slog.Default()
	}
	opts := socket.DefaultServerOptions()
	opts.SetCors(&types.Cors{Origin: "*"})

	s := &SocketIO{
		logger:      logger.With("channel", "socketio"),
		server:      socket.NewServer(nil, opts),
		firstClient: make(chan struct{}),
	}
	s.handler = s.server.ServeHandler(opts)

	s.server.On("connection", func(clients ...any) {
		client, ok := clients[0].(*socket.Socket)
		if !ok {
			return
		}
		n := s.clients.Add(1)
		s.logger.Info("UI client connected", "sid", client.Id(), "clients", n)
		s.firstOnce.Do(func() { close(s.firstClient) })

		client.On("disconnect", func(reason ...any) {
			n := s.clients.Add(-1)
			s.logger.Info("UI client disconnected", "sid", client.Id(), "clients", n, "reason", reason)
		})
	})

	return s
}

// Handler returns the HTTP handler of the socket.io endpoint.
func (s *SocketIO) Handler() http.Handler {
	return s.handler
}

// FirstClient is closed once the first client has connected. Emit accepts
// events from then on until every client is gone again.
func (s *SocketIO) FirstClient() <-chan struct{} {
	return s.firstClient
}

// Clients reports the number of connected clients.
func (s *SocketIO) Clients() int {
	return int(s.clients.Load())
}

// Emit implements Channel. It fails with ErrNotAttached while no client is
// connected.
func (s *SocketIO) Emit(event, payload string) error {
	if s.clients.Load() <= 0 {
		return ErrNotAttached
	}
	return s.server.Sockets().Emit(event, payload)
}

// Close disconnects every client and stops the server.
func (s *SocketIO) Close() {
	s.logger.Debug("Closing socket.io server.")
	s.server.Close(nil)
}
