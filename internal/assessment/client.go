package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"
)

// APIVersion is the assessment API version this client speaks. The server
// advertises its own version in the X-Api-Version response header; a major
// version mismatch is a hard error.
const APIVersion = "v2.3.0"

// Client is the core abstraction over the remote assessment API. Item
// selection and ability estimation happen server-side; the client only
// moves records back and forth.
type Client interface {
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, username, password string) error

	// Banks lists the item banks available to the user.
	Banks(ctx context.Context) ([]ItemBank, error)

	// Start begins an adaptive session on the given item bank and returns
	// the initial state including the first question.
	Start(ctx context.Context, itemBank string) (*SessionState, error)

	// Submit sends an answer for the current question. The returned state
	// carries the server-confirmed sequence number, the graded response,
	// the updated estimate, and the next question (nil once completed).
	Submit(ctx context.Context, sessionID, questionID, option string) (*SessionState, error)

	// Results fetches the final payload for a completed session.
	Results(ctx context.Context, sessionID string) (*Results, error)

	// PeerSessions fetches the completed sessions for an item bank, the
	// comparison population for percentile ranks and histograms.
	PeerSessions(ctx context.Context, itemBank string) ([]Session, error)
}

// HTTPClient talks to the assessment server over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the server at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	body, err := c.post(ctx, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return &ErrInvalidPayload{Body: body, Err: err}
	}
	if resp.Token == "" {
		return &ErrInvalidPayload{Body: body, Err: fmt.Errorf("login response carries no token")}
	}
	c.token = resp.Token
	return nil
}

func (c *HTTPClient) Banks(ctx context.Context) ([]ItemBank, error) {
	body, err := c.get(ctx, "/api/banks")
	if err != nil {
		return nil, err
	}
	var banks []ItemBank
	if err := json.Unmarshal(body, &banks); err != nil {
		return nil, &ErrInvalidPayload{Body: body, Err: err}
	}
	return banks, nil
}

func (c *HTTPClient) Start(ctx context.Context, itemBank string) (*SessionState, error) {
	body, err := c.post(ctx, "/api/sessions", map[string]string{"item_bank": itemBank})
	if err != nil {
		return nil, err
	}
	return decodeSessionState(body)
}

func (c *HTTPClient) Submit(ctx context.Context, sessionID, questionID, option string) (*SessionState, error) {
	path := fmt.Sprintf("/api/sessions/%s/answers", sessionID)
	body, err := c.post(ctx, path, map[string]string{
		"question_id":     questionID,
		"selected_option": option,
	})
	if err != nil {
		return nil, err
	}
	return decodeSessionState(body)
}

func (c *HTTPClient) Results(ctx context.Context, sessionID string) (*Results, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/sessions/%s/results", sessionID))
	if err != nil {
		return nil, err
	}
	results, err := DecodeResults(body)
	if err != nil {
		return nil, err
	}
	return &results, nil
}

func (c *HTTPClient) PeerSessions(ctx context.Context, itemBank string) ([]Session, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/banks/%s/sessions?status=completed", itemBank))
	if err != nil {
		return nil, err
	}
	return DecodeSessions(body)
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, data)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("X-Api-Version", APIVersion)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	if err := checkAPIVersion(resp.Header.Get("X-Api-Version")); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrUnavailable{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &ErrUnauthorized{Err: fmt.Errorf("%s %s: %s", method, path, resp.Status)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &ErrRateLimit{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("%s %s: %s", method, path, resp.Status),
		}
	case resp.StatusCode >= 500:
		return nil, &ErrUnavailable{Err: fmt.Errorf("%s %s: %s", method, path, resp.Status)}
	case resp.StatusCode >= 400:
		return nil, &ErrInvalidPayload{Body: data, Err: fmt.Errorf("%s %s: %s", method, path, resp.Status)}
	}

	return data, nil
}

// checkAPIVersion rejects servers with a different major version. Servers
// that do not advertise a version are accepted for compatibility with
// older deployments.
func checkAPIVersion(server string) error {
	if server == "" {
		return nil
	}
	if !semver.IsValid(server) {
		return &ErrVersionMismatch{Client: APIVersion, Server: server}
	}
	if semver.Major(server) != semver.Major(APIVersion) {
		return &ErrVersionMismatch{Client: APIVersion, Server: server}
	}
	return nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func decodeSessionState(body []byte) (*SessionState, error) {
	var state SessionState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, &ErrInvalidPayload{Body: body, Err: err}
	}
	if state.SessionID == "" {
		return nil, &ErrInvalidPayload{Body: body, Err: fmt.Errorf("state carries no session_id")}
	}
	return &state, nil
}
