// Package httpapi exposes the REST surface of the server: account
// registration and login plus the owner-scoped item CRUD, with bearer-token
// authorization enforced before any item handler runs.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AccountsService is the account surface the HTTP layer needs.
type AccountsService interface {
	Register(ctx context.Context, name, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Resolve(ctx context.Context, accountID string) (*models.Account, error)
}

// ItemsService is the item surface the HTTP layer needs. All methods take
// the authenticated account id resolved by the authorization middleware.
type ItemsService interface {
	List(ctx context.Context, accountID string) ([]*models.Item, error)
	Create(ctx context.Context, accountID string, title string) (*models.Item, error)
	Get(ctx context.Context, accountID string, id string) (*models.Item, error)
	Update(ctx context.Context, accountID string, id string, patch models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, accountID string, id string) error
}

type Server struct {
	address   string
	logger    logging.Logger
	accounts  AccountsService
	items     ItemsService
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, as AccountsService, is ItemsService, secretKey string) (*Server, error) {
	return &Server{
		address:   address,
		logger:    l.With("module", "httpapi"),
		accounts:  as,
		items:     is,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Router builds the chi route tree. Item routes sit behind the
// authorization middleware; nothing below it runs without a verified
// account id in the request context.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})

	r.Post("/accounts", s.handleRegister)
	r.Post("/accounts/login", s.handleLogin)

	r.Route("/items", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.handleListItems)
		r.Post("/", s.handleCreateItem)
		r.Get("/{id}", s.handleGetItem)
		r.Put("/{id}", s.handleUpdateItem)
		r.Delete("/{id}", s.handleDeleteItem)
	})

	return r
}

// Run serves the API until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}
