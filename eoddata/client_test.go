package eoddata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eodhub/eoddata-go/accounting"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New("test_api_key_12345", WithBaseURL(srv.URL))
	require.NoError(t, err)
	return srv, client
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestGet_AppendsAPIKey(t *testing.T) {
	var gotKey, gotPath string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("ApiKey")
		gotPath = r.URL.Path
		w.Write([]byte(`[{"code": "NASDAQ", "name": "NASDAQ Stock Exchange"}]`))
	})

	exchanges, err := client.Exchanges.List(context.Background())
	require.NoError(t, err)
	require.Len(t, exchanges, 1)
	assert.Equal(t, "NASDAQ", exchanges[0].Code)
	assert.Equal(t, "test_api_key_12345", gotKey)
	assert.Equal(t, "/Exchange/List", gotPath)
}

func TestGet_QueryParameters(t *testing.T) {
	var gotQuery string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("DateStamp")
		w.Write([]byte(`{"symbol": "AAPL", "close": 123.45}`))
	})

	quote, err := client.Quotes.Get(context.Background(), "NASDAQ", "AAPL", "2026-08-21")
	require.NoError(t, err)
	assert.Equal(t, 123.45, quote.Close)
	assert.Equal(t, "2026-08-21", gotQuery)
}

func TestGet_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"auth", http.StatusUnauthorized, func(t *testing.T, err error) {
			assert.True(t, IsAuthError(err))
		}},
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			assert.True(t, IsNotFound(err))
		}},
		{"rate limited", http.StatusTooManyRequests, func(t *testing.T, err error) {
			assert.Contains(t, err.Error(), "rate limit exceeded")
		}},
		{"server error", http.StatusInternalServerError, func(t *testing.T, err error) {
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.Exchanges.List(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestGet_RecordsAccounting(t *testing.T) {
	tracker := accounting.NewTracker(nil)
	tracker.Start()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := New("test_api_key_12345", WithBaseURL(srv.URL), WithTracker(tracker))
	require.NoError(t, err)

	_, err = client.Exchanges.List(context.Background())
	require.NoError(t, err)
	_, err = client.Symbols.List(context.Background(), "NASDAQ")
	require.NoError(t, err)

	usage, ok := tracker.Snapshot("test_api_key_12345")
	require.True(t, ok)
	assert.Equal(t, int64(2), usage.Global.TotalCalls)
	assert.Equal(t, int64(1), usage.Operations["exchange_list"].Totals.TotalCalls)
	assert.Equal(t, int64(1), usage.Operations["symbol_list"].Totals.TotalCalls)
}

func TestGet_QuotaDenialSkipsNetwork(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	tracker := accounting.NewTracker(nil)
	tracker.Start()
	require.NoError(t, tracker.EnableQuotas("test_api_key_12345", accounting.Quota{Total: 2}))

	client, err := New("test_api_key_12345", WithBaseURL(srv.URL), WithTracker(tracker))
	require.NoError(t, err)

	_, err = client.Exchanges.List(context.Background())
	require.NoError(t, err)

	// The second call reaches the total limit and is denied locally.
	_, err = client.Exchanges.List(context.Background())
	var oq *accounting.OutOfQuotaError
	require.ErrorAs(t, err, &oq)
	assert.Equal(t, accounting.LimitTotal, oq.Kind)

	_, err = client.Exchanges.List(context.Background())
	require.Error(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestGet_StoppedTrackerDoesNotBlock(t *testing.T) {
	tracker := accounting.NewTracker(nil)
	require.NoError(t, tracker.EnableQuotas("test_api_key_12345", accounting.Quota{Total: 1}))
	// Never started: accounting is inert.

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := New("test_api_key_12345", WithBaseURL(srv.URL), WithTracker(tracker))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := client.Exchanges.List(context.Background())
		require.NoError(t, err)
	}
}
