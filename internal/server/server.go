// Package server exposes the search pipeline over HTTP for the browser-based
// file-manager UI.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/harrison/filescout/internal/config"
	"github.com/harrison/filescout/internal/history"
	"github.com/harrison/filescout/internal/logger"
	"github.com/harrison/filescout/internal/search"
)

// Server wires the router, the searcher and the optional history store.
type Server struct {
	cfg      *config.Config
	log      *logger.Logger
	router   *mux.Router
	searcher *search.Searcher
	history  *history.Store // nil when history is disabled
	started  time.Time
	version  string
	httpSrv  *http.Server
}

// New creates a Server. store may be nil to disable history recording.
func New(cfg *config.Config, log *logger.Logger, store *history.Store, version string) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		router:   mux.NewRouter(),
		searcher: search.New(log),
		history:  store,
		started:  time.Now(),
		version:  version,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/search", s.searchHandler).Methods("POST")
	s.router.HandleFunc("/api/health", s.healthHandler).Methods("GET")
}

// Handler returns the full middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server", "listening", "addr", addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("server", "shutting down")
	return s.httpSrv.Shutdown(shutdownCtx)
}
