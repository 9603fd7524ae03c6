package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	path string
	auth string
}

func serve(t *testing.T, status int, body string) (*Client, *seenRequest) {
	t.Helper()
	got := &seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "secret"), got
}

func TestFetch(t *testing.T) {
	c, req := serve(t, http.StatusOK, `{"result":"success","base_code":"HKD","time_last_update_unix":1760832000,"rates":{"KZT":64.55,"USD":0.128}}`)
	c.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	q, err := c.Fetch(context.Background(), "hkd", "kzt")
	require.NoError(t, err)
	assert.Equal(t, "HKD", q.Base)
	assert.Equal(t, "KZT", q.Secondary)
	assert.Equal(t, 64.55, q.Rate)
	assert.Equal(t, time.Unix(1760832000, 0).UTC(), q.AsOf)
	assert.Equal(t, 2026, q.FetchedAt.Year())

	assert.Equal(t, "/latest/HKD", req.path)
	assert.Equal(t, "Bearer secret", req.auth)
}

func TestFetchStringRate(t *testing.T) {
	c, _ := serve(t, http.StatusOK, `{"base":"HKD","date":"2026-03-01","rates":{"KZT":"59"}}`)

	q, err := c.Fetch(context.Background(), "HKD", "KZT")
	require.NoError(t, err)
	assert.Equal(t, 59.0, q.Rate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), q.AsOf)
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, "", ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "", ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, "", ErrRateLimited},
		{"missing currency", http.StatusOK, `{"rates":{"USD":0.128}}`, ErrMissingRate},
		{"zero rate", http.StatusOK, `{"rates":{"KZT":0}}`, ErrMissingRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := serve(t, tt.status, tt.body)
			_, err := c.Fetch(context.Background(), "HKD", "KZT")
			if !errors.Is(err, tt.want) {
				t.Fatalf("Fetch err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetchBadPayload(t *testing.T) {
	c, _ := serve(t, http.StatusOK, `{"result":"error","rates":{}}`)
	_, err := c.Fetch(context.Background(), "HKD", "KZT")
	require.Error(t, err)

	c, _ = serve(t, http.StatusInternalServerError, "")
	_, err = c.Fetch(context.Background(), "HKD", "KZT")
	assert.Contains(t, err.Error(), "unexpected status 500")

	_, err = c.Fetch(context.Background(), "", "KZT")
	assert.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("  ", "")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Empty(t, c.apiKey)
}
