// Package web hosts the JSON API for accounts, sessions, and character
// sheets.
package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/charkeep/internal/auth/credential"
	"github.com/louisbranch/charkeep/internal/auth/session"
	"github.com/louisbranch/charkeep/internal/platform/requestctx"
	"github.com/louisbranch/charkeep/internal/platform/timeouts"
	"github.com/louisbranch/charkeep/internal/storage"
	"github.com/louisbranch/charkeep/internal/web/httpx"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
}

// Dependencies carries the services the handlers call into.
type Dependencies struct {
	Credentials *credential.Service
	Sessions    *session.Manager
	Characters  storage.CharacterStore

	// Now and IDGenerator are injectable for tests; nil selects the
	// production defaults.
	Now         func() time.Time
	IDGenerator func() (string, error)
}

type handler struct {
	credentials *credential.Service
	sessions    *session.Manager
	characters  storage.CharacterStore
	now         func() time.Time
	idGenerator func() (string, error)
}

// NewHandler assembles the API routes with identity resolution applied
// to every request.
func NewHandler(deps Dependencies) http.Handler {
	h := &handler{
		credentials: deps.Credentials,
		sessions:    deps.Sessions,
		characters:  deps.Characters,
		now:         deps.Now,
		idGenerator: deps.IDGenerator,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", h.handleRegister)
	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("POST /api/logout", h.handleLogout)
	mux.HandleFunc("GET /api/characters", h.handleListCharacters)
	mux.HandleFunc("POST /api/characters", h.handleCreateCharacter)
	mux.HandleFunc("GET /api/characters/{id}", h.handleGetCharacter)
	mux.HandleFunc("PUT /api/characters/{id}", h.handleUpdateCharacter)
	mux.HandleFunc("DELETE /api/characters/{id}", h.handleDeleteCharacter)

	return httpx.Chain(mux,
		httpx.RequestID(),
		httpx.RecoverPanic(),
		withIdentity(deps.Sessions),
	)
}

// withIdentity resolves the session cookie into a request-scoped user id.
// Requests without a valid session pass through with no identity; each
// handler decides whether that is acceptable.
func withIdentity(resolver session.Resolver) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolver != nil {
				if userID := resolver.ResolveUserID(r); userID != "" {
					r = r.WithContext(requestctx.WithUserID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Server hosts the API over HTTP.
type Server struct {
	httpServer *http.Server
}

// NewServer wires the handler into an HTTP server with shared timeouts.
func NewServer(config Config, apiHandler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              config.HTTPAddr,
			Handler:           apiHandler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}
}

// Run serves HTTP until the context is canceled, then drains in-flight
// requests within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return errors.New("server is not configured")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
		return err
	}

	err := <-errCh
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
