package bdl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsModeFromAPIKey(t *testing.T) {
	assert.Equal(t, Mock, New("", "").Mode())
	assert.Equal(t, Live, New("", "secret").Mode())
}

func TestMockFetchIsDeterministic(t *testing.T) {
	client := New("", "")
	ctx := context.Background()

	first, err := client.FetchLiveBoxScores(ctx)
	require.NoError(t, err)
	require.Len(t, first, 3)

	// Three players across two concurrent games
	gameIDs := []int{first[0].Game.ID, first[1].Game.ID, first[2].Game.ID}
	assert.Equal(t, []int{1, 1, 2}, gameIDs)

	matchups := map[string]bool{}
	for _, row := range first {
		matchups[row.Game.VisitorTeam.Abbreviation+" @ "+row.Game.HomeTeam.Abbreviation] = true
	}
	assert.Len(t, matchups, 2)

	// Identical on every call
	for i := 0; i < 5; i++ {
		again, err := client.FetchLiveBoxScores(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLiveFetchSendsAuthorization(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data": [{"player": {"first_name": "LeBron", "last_name": "James"}, "pts": 18, "min": "19:15", "game": {"id": 1}}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret-key")
	rows, err := client.FetchLiveBoxScores(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/v1/box_scores/live", gotPath)
	assert.Equal(t, "secret-key", gotAuth)
	require.Len(t, rows, 1)
	assert.Equal(t, "LeBron", rows[0].Player.FirstName)
	assert.Equal(t, 18, rows[0].Points)
	assert.Equal(t, "19:15", rows[0].Minutes)
	assert.Equal(t, 1, rows[0].Game.ID)
}

func TestLiveFetchMissingDataField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meta": {"per_page": 25}}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret-key")
	rows, err := client.FetchLiveBoxScores(context.Background())

	require.NoError(t, err)
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestLiveFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer server.Close()

	client := New(server.URL, "wrong-key")
	_, err := client.FetchLiveBoxScores(context.Background())

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusUnauthorized, upstreamErr.Status)
	assert.Contains(t, upstreamErr.Error(), "401")
}

func TestLiveFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := New(server.URL, "secret-key")
	_, err := client.FetchLiveBoxScores(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestLiveFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := New(server.URL, "secret-key")
	_, err := client.FetchLiveBoxScores(context.Background())
	require.Error(t, err)

	var upstreamErr *UpstreamError
	assert.False(t, errors.As(err, &upstreamErr), "transport failures are not upstream status errors")
}

func TestLiveFetchHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret-key")
	_, err := client.FetchLiveBoxScores(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
