package exposition

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/probegrid/sensord/internal/store"
)

// contentType is the text exposition content type understood by scrapers.
const contentType = "text/plain; version=0.0.4; charset=utf-8"

// Server serves the current metric store snapshot on every request. The
// snapshot is rendered fresh from the live store; there is no caching layer.
type Server struct {
	cfg    Config
	store  *store.Store
	logger *slog.Logger
}

// NewServer creates a Server. Config defaults are applied automatically.
func NewServer(cfg Config, st *store.Store, logger *slog.Logger) *Server {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		store:  st,
		logger: logger.With("component", "exposition"),
	}
}

// Handler returns the HTTP handler serving the snapshot.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", contentType)
		if r.Method == http.MethodHead {
			return
		}
		if _, err := s.store.WriteTo(w); err != nil {
			s.logger.Debug("write snapshot failed", "error", err)
		}
	})
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("exposition: listen %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener until ctx is cancelled, then shuts
// down gracefully. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	s.logger.Info("exposition endpoint started", "listen", ln.Addr().String())

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("exposition: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("exposition endpoint shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	<-errCh

	return ctx.Err()
}
