package assessment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_LoginAndBanks(t *testing.T) {
	var sawAuth, sawRequestID bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-ID") != "" {
			sawRequestID = true
		}
		switch r.URL.Path {
		case "/api/login":
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "ada", creds["username"])
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
		case "/api/banks":
			sawAuth = r.Header.Get("Authorization") == "Bearer tok-123"
			json.NewEncoder(w).Encode([]ItemBank{{ID: "algebra-1", Name: "Algebra I"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "ada", "secret"))

	banks, err := c.Banks(ctx)
	require.NoError(t, err)
	require.Len(t, banks, 1)
	assert.Equal(t, "algebra-1", banks[0].ID)
	assert.True(t, sawAuth, "banks request should carry the bearer token")
	assert.True(t, sawRequestID, "requests should carry X-Request-ID")
}

func TestHTTPClient_SubmitRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/s-1/answers", r.URL.Path)
		json.NewEncoder(w).Encode(SessionState{
			SessionID: "s-1",
			Sequence:  3,
			Theta:     0.42,
			Status:    StatusActive,
			NextQuestion: &Question{
				QuestionID: "q-4",
				Options:    []string{"A", "B", "C", "D"},
			},
		})
	}))
	defer srv.Close()

	state, err := NewHTTPClient(srv.URL).Submit(context.Background(), "s-1", "q-3", "B")
	require.NoError(t, err)
	assert.Equal(t, 3, state.Sequence)
	assert.Equal(t, 0.42, state.Theta)
	require.NotNil(t, state.NextQuestion)
	assert.Equal(t, "q-4", state.NextQuestion.QuestionID)
}

func TestHTTPClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var e *ErrUnauthorized
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			header: http.Header{"Retry-After": []string{"2"}},
			check: func(t *testing.T, err error) {
				var e *ErrRateLimit
				require.ErrorAs(t, err, &e)
				assert.Equal(t, 2*time.Second, e.RetryAfter)
			},
		},
		{
			name:   "server down",
			status: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				var e *ErrUnavailable
				assert.ErrorAs(t, err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, vs := range tt.header {
					for _, v := range vs {
						w.Header().Add(k, v)
					}
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL).Banks(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestHTTPClient_VersionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Api-Version", "v3.0.0")
		json.NewEncoder(w).Encode([]ItemBank{})
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).Banks(context.Background())
	var e *ErrVersionMismatch
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "v3.0.0", e.Server)
}

func TestHTTPClient_SameMajorVersionAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Api-Version", "v2.9.1")
		json.NewEncoder(w).Encode([]ItemBank{})
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).Banks(context.Background())
	assert.NoError(t, err)
}

func TestHTTPClient_Unreachable(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1")
	_, err := c.Banks(context.Background())
	var e *ErrUnavailable
	assert.ErrorAs(t, err, &e)
}
