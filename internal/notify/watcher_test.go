package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitReady_ImmediateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := NewWatcher(srv.Client(), time.Millisecond, time.Second)
	assert.True(t, w.WaitReady(context.Background(), srv.URL))
}

func TestWaitReady_RecoversAfterFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := NewWatcher(srv.Client(), time.Millisecond, 5*time.Second)
	assert.True(t, w.WaitReady(context.Background(), srv.URL))
	assert.GreaterOrEqual(t, calls, 3)
}

func TestWaitReady_TimesOutWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	w := NewWatcher(srv.Client(), time.Millisecond, 20*time.Millisecond)
	assert.False(t, w.WaitReady(context.Background(), srv.URL))
}

func TestWaitReady_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWatcher(srv.Client(), time.Minute, time.Hour)
	assert.False(t, w.WaitReady(ctx, srv.URL))
}
