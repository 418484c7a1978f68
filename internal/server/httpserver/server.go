// Package httpserver exposes the note-taking API over HTTP with JSON
// bodies. Routing relies on method-qualified ServeMux patterns.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	notes     *services.NoteService
	jwtSecret []byte
	handler   http.Handler
}

func NewHTTPServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, notes *services.NoteService) *HTTPServer {

	s := &HTTPServer{
		address:   cfg.EndpointAddr,
		logger:    logger,
		users:     users,
		notes:     notes,
		jwtSecret: []byte(cfg.SecretKey),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = chain(mux, s.withRequestID(), s.withRecover(), s.withLogging())

	return s
}

// Handler returns the fully wired root handler. Exposed for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info(context.Background(), "http server stopped")
	return <-errCh
}
