package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// feedItem stores the rendered schedule and its caching metadata.
type feedItem struct {
	data         []byte
	etag         string
	lastModified string
}

// FeedServer serves the generated role schedule as an ICS document over
// localhost HTTP, so team members can subscribe to the rotation without
// access to the shared calendar.
type FeedServer struct {
	// cache uses atomic.Pointer: the feed is read often and replaced
	// rarely, so lock-free reads beat a mutex on the GET path.
	cache atomic.Pointer[feedItem]
	Port  string
}

// NewFeedServer creates a feed server bound to the given port.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{Port: port}
}

// Start runs the HTTP server until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if err := validatePort(s.Port); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteFeed, s.handleFeed)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served document.
func (s *FeedServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	item := &feedItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
	s.cache.Store(item)

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

// handleFeed serves the ICS content with ETag-based caching.
func (s *FeedServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgNotReady, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastMod, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// validatePort checks the configured port parses and is in range.
func validatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < config.MinPort || n > config.MaxPort {
		return errors.New(config.ErrPortRange)
	}
	return nil
}
