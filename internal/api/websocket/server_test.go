package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/gamecast/internal/ingest/bdl"
	"github.com/fortuna/gamecast/internal/projection"
)

func newTestServer() *Server {
	newFetcher := func() StatsFetcher { return bdl.New("", "") }
	return NewServer(projection.SeedBaselines(), 10*time.Millisecond, nil, newFetcher)
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/health", nil)
	server.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status": "healthy", "sessions": 0}`, rec.Body.String())
}

func TestHandleLiveGamecastCountsSessions(t *testing.T) {
	server := newTestServer()

	httpServer := httptest.NewServer(http.HandlerFunc(server.handleLiveGamecast))
	t.Cleanup(httpServer.Close)

	url := "ws" + strings.TrimPrefix(httpServer.URL, "http")
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	// The session is live once the first frame arrives.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, int64(1), server.ActiveSessions())

	conn.Close()
	require.Eventually(t, func() bool { return server.ActiveSessions() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHandleLiveGamecastRejectsPlainHTTP(t *testing.T) {
	server := newTestServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/live-gamecast", nil)
	server.handleLiveGamecast(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
