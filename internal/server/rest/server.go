// Package rest exposes the user, auth and follower operations over HTTP.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/dmitrijs2005/gophsocial/internal/server/auth"
	"github.com/dmitrijs2005/gophsocial/internal/server/models"
	"github.com/dmitrijs2005/gophsocial/internal/server/ratelimit"
	"github.com/dmitrijs2005/gophsocial/internal/server/validation"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Current(ctx context.Context, id string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	ParseToken(token string) (*auth.Claims, error)
}

type FollowService interface {
	Follow(ctx context.Context, actorID, targetID string) (*models.User, error)
	Unfollow(ctx context.Context, actorID, targetID string) (*models.User, error)
}

// Pinger reports store health for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RESTServer struct {
	address    string
	users      UserService
	follows    FollowService
	store      Pinger
	limiter    ratelimit.Limiter
	validator  *validation.Validator
	logger     logging.Logger
	trustProxy bool
}

// NewRESTServer wires the API. A nil limiter disables rate limiting.
// trustProxy enables client IP headers for logging and rate limiting.
func NewRESTServer(a string, l logging.Logger, us UserService, fs FollowService, store Pinger, limiter ratelimit.Limiter, trustProxy bool) *RESTServer {
	return &RESTServer{
		address:    a,
		logger:     l.With("module", "rest_server"),
		users:      us,
		follows:    fs,
		store:      store,
		limiter:    limiter,
		validator:  validation.New(),
		trustProxy: trustProxy,
	}
}

// Router builds the HTTP handler tree.
func (s *RESTServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if s.trustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.healthz)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/test", s.test)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Post("/register", s.register)
			r.Post("/login", s.login)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/current", s.current)
			r.Post("/follow/{id}", s.follow)
			r.Post("/unfollow/{id}", s.unfollow)
		})

		// ids are uuids or ObjectID hex, so GET /register and /login stay 405.
		r.Get("/{id:[0-9a-fA-F-]+}", s.getUser)
		r.NotFound(s.userNotFound)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *RESTServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "REST server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting REST server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
