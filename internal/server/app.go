// Package server initializes and runs the gophsocial server: it opens the
// configured store, wires services into the REST API and the gRPC health
// service, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/dmitrijs2005/gophsocial/internal/server/config"
	"github.com/dmitrijs2005/gophsocial/internal/server/ratelimit"
	"github.com/dmitrijs2005/gophsocial/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophsocial/internal/server/rest"
	"github.com/dmitrijs2005/gophsocial/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/gophsocial/internal/server/grpc"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	store         repomanager.RepositoryManager
	userService   *services.UserService
	followService *services.FollowService
	limiter       ratelimit.Limiter
	closers       []io.Closer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	store, err := repomanager.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{
		config:        c,
		logger:        logger,
		store:         store,
		userService:   services.NewUserService(store, c),
		followService: services.NewFollowService(store),
	}
	app.limiter = app.newLimiter()

	return app, nil
}

// newLimiter returns nil when rate limiting is disabled.
func (app *App) newLimiter() ratelimit.Limiter {
	if app.config.RateLimit <= 0 {
		return nil
	}

	if app.config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: app.config.RedisAddr})
		app.closers = append(app.closers, client)
		return ratelimit.NewRedisLimiter(client, "", app.config.RateLimit, app.config.RateLimitWindow)
	}

	return ratelimit.NewMemoryLimiter(app.config.RateLimit, app.config.RateLimitWindow)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewRESTServer(app.config.HTTPAddr, app.logger, app.userService, app.followService, app.store, app.limiter, app.config.TrustProxy)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCHealthAddr, app.logger, app.store, app.config.HealthCheckInterval)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a shutdown signal arrives, ctx is cancelled or one of
// the servers fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRESTServer(ctx, cancelFunc)
	}()

	if app.config.GRPCHealthAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.close()
}

func (app *App) close() {
	ctx := context.Background()

	if err := app.store.Close(ctx); err != nil {
		app.logger.Error(ctx, "store close", "error", err)
	}
	for _, c := range app.closers {
		if err := c.Close(); err != nil {
			app.logger.Error(ctx, "close", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}
