package bdl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	BaseURL      = "https://api.balldontlie.io"
	livePath     = "/v1/box_scores/live"
	fetchTimeout = 15 * time.Second
)

// Mode selects the adapter's data source. It is fixed at construction and
// never re-checked per call.
type Mode int

const (
	// Mock serves the fixed in-memory sample set; used whenever no API key
	// is configured.
	Mock Mode = iota
	// Live issues authorized requests against the balldontlie API.
	Live
)

// UpstreamError is returned when the balldontlie API answers with a
// non-success status.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("balldontlie returned status %d: %s", e.Status, e.Body)
}

// Client fetches live box scores from balldontlie, or from a deterministic
// mock data set when constructed without an API key. The client performs no
// retries; retry policy belongs to the caller.
type Client struct {
	baseURL string
	apiKey  string
	mode    Mode
	http    *http.Client
}

// New creates a client. An empty apiKey selects Mock mode. An empty baseURL
// falls back to the production API.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}

	mode := Live
	if apiKey == "" {
		mode = Mock
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		mode:    mode,
		http:    &http.Client{Timeout: fetchTimeout},
	}
}

// Mode reports which data source the client was constructed with.
func (c *Client) Mode() Mode {
	return c.mode
}

// FetchLiveBoxScores returns the current live box score rows, one per
// (player, game). In Mock mode the same fixed sample set is returned on
// every call.
func (c *Client) FetchLiveBoxScores(ctx context.Context) ([]PlayerBoxScore, error) {
	if c.mode == Mock {
		return mockLiveBoxScores(), nil
	}

	url := c.baseURL + livePath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching live box scores: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: truncate(body, 200)}
	}

	var envelope liveEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w (body: %s)", err, truncate(body, 200))
	}

	// Absent "data" decodes to nil; callers always get a sequence.
	if envelope.Data == nil {
		return []PlayerBoxScore{}, nil
	}
	return envelope.Data, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
