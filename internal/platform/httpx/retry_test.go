package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrierRetriesTransientStatus(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	r := Retrier{Client: srv.Client(), Service: "test", MaxAttempts: 3, Backoff: time.Millisecond}
	body, err := r.Do(context.Background(), func(ctx context.Context) (*http.Request, error) {
		return NewJSONRequest(ctx, http.MethodPost, srv.URL, []byte(`{}`))
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(3), attempts.Load())
}

func TestRetrierGivesUp(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		attempts int32
	}{
		{"client error is final", http.StatusBadRequest, 1},
		{"server error exhausts attempts", http.StatusBadGateway, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var attempts atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts.Add(1)
				http.Error(w, "nope", tc.status)
			}))
			defer srv.Close()

			r := Retrier{Client: srv.Client(), Service: "ors", MaxAttempts: 2, Backoff: time.Millisecond}
			_, err := r.Do(context.Background(), func(ctx context.Context) (*http.Request, error) {
				return NewJSONRequest(ctx, http.MethodGet, srv.URL, nil)
			})
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.status, se.StatusCode)
			assert.Equal(t, "nope", se.Body)
			assert.Contains(t, err.Error(), "ors status")
			assert.Equal(t, tc.attempts, attempts.Load())
		})
	}
}

func TestRetrierStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := Retrier{}.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		called = true
		return nil, errors.New("unreachable")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(&StatusError{StatusCode: 503}))
	assert.True(t, Retryable(&StatusError{StatusCode: 429}))
	assert.False(t, Retryable(&StatusError{StatusCode: 404}))
	assert.False(t, Retryable(context.DeadlineExceeded))
	assert.False(t, Retryable(errors.New("boom")))
}
