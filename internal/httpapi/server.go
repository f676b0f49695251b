// Package httpapi exposes lists, items, AI actions and templates over a JSON
// HTTP API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/listo-app/listo/internal/ai"
	"github.com/listo-app/listo/internal/checklist"
	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/templates"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the API is served from.
type Deps struct {
	Lists     *checklist.Service
	Templates *templates.Service
	AI        ai.Generator
	Health    Pinger

	// AdminSecret guards the admin routes. When empty every admin request is
	// refused.
	AdminSecret string
	Log         *zap.Logger
}

// Server serves the API.
type Server struct {
	lists       *checklist.Service
	templates   *templates.Service
	gen         ai.Generator
	health      Pinger
	adminSecret string
	log         *zap.Logger
}

// New creates a server.
func New(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	gen := d.AI
	if gen == nil {
		gen = ai.Disabled{}
	}
	return &Server{
		lists:       d.Lists,
		templates:   d.Templates,
		gen:         gen,
		health:      d.Health,
		adminSecret: d.AdminSecret,
		log:         log.Named("http"),
	}
}

// Handler returns the routed handler with request logging and panic
// recovery applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/lists/{id}", s.handleListGet)
	mux.HandleFunc("PATCH /api/lists/{id}", s.handleListPatch)
	mux.HandleFunc("POST /api/lists/{id}/items", s.handleItemsCreate)
	mux.HandleFunc("POST /api/lists/{id}/actions", s.handleListAction)

	mux.HandleFunc("PATCH /api/items/{id}", s.handleItemPatch)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleItemDelete)
	mux.HandleFunc("POST /api/items/{id}/toggle", s.handleItemToggle)
	mux.HandleFunc("POST /api/items/{id}/indent", s.handleItemIndent)
	mux.HandleFunc("POST /api/items/{id}/outdent", s.handleItemOutdent)
	mux.HandleFunc("POST /api/items/{id}/move", s.handleItemMove)
	mux.HandleFunc("POST /api/items/{id}/reorder", s.handleItemReorder)

	mux.HandleFunc("POST /api/ai", s.handleAI)

	mux.HandleFunc("GET /api/templates", s.handleTemplatesList)
	mux.HandleFunc("POST /api/templates", s.handleTemplatesCreate)
	mux.HandleFunc("GET /api/templates/{id}", s.handleTemplateGet)
	mux.HandleFunc("POST /api/templates/{id}/use", s.handleTemplateUse)

	mux.Handle("GET /api/admin/templates", s.admin(s.handleAdminPending))
	mux.Handle("POST /api/admin/templates/{id}/approve", s.admin(s.handleAdminApprove))
	mux.Handle("POST /api/admin/templates/{id}/reject", s.admin(s.handleAdminReject))
	mux.Handle("DELETE /api/admin/templates/{id}", s.admin(s.handleAdminDelete))

	return s.recoverer(s.requestLogger(mux))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg model.ServerConfig) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSec) * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.log.Error("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
