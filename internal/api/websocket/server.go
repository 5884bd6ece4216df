package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fortuna/gamecast/internal/dashboard"
	"github.com/fortuna/gamecast/internal/ingest/bdl"
	"github.com/fortuna/gamecast/internal/projection"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development (TODO: restrict in production)
	},
}

// StatsFetcher is the session's view of the data source adapter.
type StatsFetcher interface {
	FetchLiveBoxScores(ctx context.Context) ([]bdl.PlayerBoxScore, error)
}

// DashboardPublisher receives each poll's serialized payload for fan-out
// beyond the websocket client. May be backed by a Redis stream.
type DashboardPublisher interface {
	PublishDashboard(ctx context.Context, payload []byte) error
}

// Server represents the WebSocket server. Each accepted connection gets its
// own gamecast session with a freshly constructed upstream adapter; the
// only state shared between sessions is the immutable baseline table and
// the publisher handle.
type Server struct {
	port         string
	server       *http.Server
	mapper       *dashboard.Mapper
	pollInterval time.Duration
	publisher    DashboardPublisher
	newFetcher   func() StatsFetcher
	active       atomic.Int64
}

// NewServer creates a new WebSocket server. publisher may be nil when no
// Redis stream is configured. newFetcher is called once per connection.
func NewServer(baselines projection.Table, pollInterval time.Duration, publisher DashboardPublisher, newFetcher func() StatsFetcher) *Server {
	return &Server{
		mapper:       dashboard.NewMapper(baselines),
		pollInterval: pollInterval,
		publisher:    publisher,
		newFetcher:   newFetcher,
	}
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.port = port

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/live-gamecast", s.handleLiveGamecast)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Printf("WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// handleLiveGamecast upgrades the connection and runs its gamecast session
// until the client disconnects or the session fails.
func (s *Server) handleLiveGamecast(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	s.active.Add(1)
	defer s.active.Add(-1)

	session := NewSession(conn, s.newFetcher(), s.mapper, s.publisher, s.pollInterval)

	switch session.Run(context.Background()) {
	case StateDisconnected:
		log.Printf("Gamecast session ended: client %s disconnected", conn.RemoteAddr())
	case StateFailed:
		log.Printf("⚠️  Gamecast session for %s failed: %v", conn.RemoteAddr(), session.Err())
	}
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "sessions": %d}`, s.active.Load())
}

// ActiveSessions reports the number of connections currently streaming.
func (s *Server) ActiveSessions() int64 {
	return s.active.Load()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
