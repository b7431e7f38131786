// Package server serves a photo folder: the JSON image listing, the image
// files themselves and a server-rendered masonry page.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/folio/internal/config"
)

const shutdownTimeout = 5 * time.Second

// Server serves the gallery for one images directory
type Server struct {
	cfg     config.ServerConfig
	matcher *Matcher
	logger  *slog.Logger
	handler http.Handler

	// list reads the images directory; scan unless replaced in tests
	list func() ([]string, error)

	mu     sync.RWMutex
	cache  []string
	cached bool
	gen    uint64 // bumped by Invalidate
}

// New creates a server for cfg
func New(cfg config.ServerConfig, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	patterns := cfg.Include
	if len(patterns) == 0 {
		patterns = config.DefaultIncludePatterns
	}
	matcher, err := NewMatcher(patterns)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, matcher: matcher, logger: logger}
	s.list = s.scan
	s.handler = s.routes()
	return s, nil
}

// Handler returns the HTTP handler with CORS headers applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Images returns the sorted image names in the images directory.
// A missing or unreadable directory yields an empty list. A scan that
// overlaps an Invalidate is returned but not cached.
func (s *Server) Images() []string {
	s.mu.RLock()
	if s.cached {
		names := s.cache
		s.mu.RUnlock()
		return names
	}
	gen := s.gen
	s.mu.RUnlock()

	names, err := s.list()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("images directory missing", "dir", s.cfg.ImagesDir)
		} else {
			s.logger.Error("failed to list images", "dir", s.cfg.ImagesDir, "error", err)
		}
		return []string{}
	}

	s.mu.Lock()
	if s.gen == gen {
		s.cache = names
		s.cached = true
	}
	s.mu.Unlock()
	return names
}

// Invalidate drops the cached listing
func (s *Server) Invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.cached = false
	s.gen++
	s.mu.Unlock()
}

func (s *Server) scan() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.ImagesDir)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if s.matcher.Match(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Run listens on the configured address and serves until ctx is cancelled.
// The directory watcher runs alongside when enabled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.announce(ln.Addr().String())

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if s.cfg.Watch {
		g.Go(func() error {
			return s.watch(gctx)
		})
	}

	return g.Wait()
}

// announce logs where the gallery is served and what it found
func (s *Server) announce(addr string) {
	s.logger.Info("serving gallery", "addr", addr, "images_dir", s.cfg.ImagesDir)

	if _, err := os.Stat(s.cfg.ImagesDir); err != nil {
		s.logger.Warn("images folder not found, create it and add your photos", "dir", s.cfg.ImagesDir)
		return
	}
	s.logger.Info("images found", "count", len(s.Images()))
}
