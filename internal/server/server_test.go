package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// -----------------------------------------------------------------------------
// Unit Tests (White-Box Testing of Handler Logic)
// -----------------------------------------------------------------------------

// TestHandler_ServingContent verifies that the handler writes the standard
// HTTP headers and body content when a schedule has been loaded.
func TestHandler_ServingContent(t *testing.T) {
	srv := NewFeedServer("0") // Port irrelevant for handler tests
	expectedICS := []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR")

	srv.Update(expectedICS)

	req := httptest.NewRequest(http.MethodGet, config.RouteFeed, nil)
	w := httptest.NewRecorder()
	srv.handleFeed(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, expectedICS, body)
}

// TestHandler_Caching verifies the If-None-Match / 304 path.
func TestHandler_Caching(t *testing.T) {
	srv := NewFeedServer("0")
	srv.Update([]byte("SCHEDULE_VERSION_1"))

	req1 := httptest.NewRequest(http.MethodGet, config.RouteFeed, nil)
	w1 := httptest.NewRecorder()
	srv.handleFeed(w1, req1)

	etag := w1.Result().Header.Get(config.HeaderETag)
	require.NotEmpty(t, etag, "Server must provide an ETag")

	req2 := httptest.NewRequest(http.MethodGet, config.RouteFeed, nil)
	req2.Header.Set(config.HeaderIfNoneMatch, etag)
	w2 := httptest.NewRecorder()
	srv.handleFeed(w2, req2)

	resp2 := w2.Result()
	defer func() { _ = resp2.Body.Close() }()

	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
	body, _ := io.ReadAll(resp2.Body)
	assert.Empty(t, body, "Body must be empty on 304 Not Modified")
}

// TestHandler_MethodNotAllowed ensures strictly GET and HEAD are accepted.
func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := NewFeedServer("0")

	req := httptest.NewRequest(http.MethodPost, config.RouteFeed, nil)
	w := httptest.NewRecorder()
	srv.handleFeed(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(config.HeaderAllow))
}

// TestHandler_Initializing verifies the 503 behavior before the first Update.
func TestHandler_Initializing(t *testing.T) {
	srv := NewFeedServer("0")

	req := httptest.NewRequest(http.MethodGet, config.RouteFeed, nil)
	w := httptest.NewRecorder()
	srv.handleFeed(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, validatePort("18090"))
	assert.Error(t, validatePort("0"))
	assert.Error(t, validatePort("65536"))
	assert.Error(t, validatePort("not-a-port"))
	assert.Error(t, validatePort(""))
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition validates the thread-safety of atomic.Pointer
// usage by running writers and readers concurrently. Run with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := NewFeedServer("0")
	var wg sync.WaitGroup

	duration := 500 * time.Millisecond
	end := time.Now().Add(duration)

	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			i := 0
			for time.Now().Before(end) {
				srv.Update([]byte(fmt.Sprintf("VERSION:%d-%d", id, i)))
				i++
				time.Sleep(1 * time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req := httptest.NewRequest(http.MethodGet, config.RouteFeed, nil)
				w := httptest.NewRecorder()
				srv.handleFeed(w, req)

				if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

// TestServer_Lifecycle spins up the actual TCP listener to verify network
// binding and graceful shutdown.
func TestServer_Lifecycle(t *testing.T) {
	const port = "18098"

	srv := NewFeedServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + config.RouteFeed

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	// 1. Initial state: schedule not loaded yet.
	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	// 2. Load a schedule.
	srv.Update([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR"))

	// 3. Served content.
	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")

	// 4. Graceful shutdown.
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_InvalidPort(t *testing.T) {
	srv := NewFeedServer("not-a-port")
	assert.Error(t, srv.Start(context.Background()))
}
