package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fortuna/gamecast/internal/dashboard"
)

// State is a session's terminal state.
type State int

const (
	// StateDisconnected means the remote side closed the channel; expected
	// termination, no error surfaced.
	StateDisconnected State = iota
	// StateFailed means fetch/normalize/push failed; exactly one error
	// frame was sent before closing.
	StateFailed
)

const writeTimeout = 10 * time.Second

// errorFrame is the single terminal message sent on a Failed transition.
type errorFrame struct {
	Error string `json:"error"`
}

// Session drives one connection's poll-transform-broadcast loop: fetch the
// live box scores, map them to ranked dashboard entries, push one text
// frame, sleep, repeat. Poll N's frame is fully written before poll N+1's
// fetch begins.
type Session struct {
	conn         *websocket.Conn
	fetcher      StatsFetcher
	mapper       *dashboard.Mapper
	publisher    DashboardPublisher
	pollInterval time.Duration
	err          error
}

// NewSession creates a session for one accepted connection. publisher may
// be nil.
func NewSession(conn *websocket.Conn, fetcher StatsFetcher, mapper *dashboard.Mapper, publisher DashboardPublisher, pollInterval time.Duration) *Session {
	return &Session{
		conn:         conn,
		fetcher:      fetcher,
		mapper:       mapper,
		publisher:    publisher,
		pollInterval: pollInterval,
	}
}

// Err returns the failure that ended the session, if any.
func (s *Session) Err() error {
	return s.err
}

// Run streams until the client disconnects or an error terminates the
// session, and returns the terminal state. A disconnect is detected within
// one in-flight fetch/sleep cycle; no work continues afterwards.
func (s *Session) Run(parent context.Context) State {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Inbound frames carry no meaning; the reader exists only to notice
	// the remote side going away.
	go s.watchDisconnect(cancel)

	for {
		payload, err := s.poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return StateDisconnected
			}
			return s.fail(err)
		}

		if err := s.push(payload); err != nil {
			return StateDisconnected
		}

		if s.publisher != nil {
			if err := s.publisher.PublishDashboard(ctx, payload); err != nil && ctx.Err() == nil {
				// Fan-out is best effort; the client stream stays up.
				log.Printf("⚠️  Failed to publish dashboard payload: %v", err)
			}
		}

		select {
		case <-ctx.Done():
			return StateDisconnected
		case <-time.After(s.pollInterval):
		}
	}
}

// poll runs one fetch-normalize-serialize cycle.
func (s *Session) poll(ctx context.Context) ([]byte, error) {
	rows, err := s.fetcher.FetchLiveBoxScores(ctx)
	if err != nil {
		return nil, err
	}

	entries := s.mapper.MapPayload(rows)
	return json.Marshal(entries)
}

func (s *Session) push(payload []byte) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// fail sends the session's single terminal error frame and a server-error
// close frame. Write errors here are ignored: the client may already be
// gone, and either way the session is over.
func (s *Session) fail(cause error) State {
	s.err = cause

	frame, _ := json.Marshal(errorFrame{Error: cause.Error()})
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	s.conn.WriteMessage(websocket.TextMessage, frame)

	closeMsg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "gamecast session failed")
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	s.conn.WriteMessage(websocket.CloseMessage, closeMsg)

	return StateFailed
}

// watchDisconnect discards inbound frames until the connection errors,
// then cancels the session.
func (s *Session) watchDisconnect(cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}
