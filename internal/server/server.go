// Package server defines the application container that composes the app's
// main dependencies and owns the HTTP server lifecycle.
//
// It owns:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool and redis client
//   - token service and rate-limit bucket store
//   - background job worker (asynq)
//   - the http.Server, including graceful shutdown
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/portal-platform/internal/config"
	"github.com/deppfellow/portal-platform/internal/database"
	"github.com/deppfellow/portal-platform/internal/lib/job"
	"github.com/deppfellow/portal-platform/internal/ratelimit"
	"github.com/deppfellow/portal-platform/internal/token"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/portal-platform/internal/logger"
)

// Server is the application container holding shared resources. It is not
// the HTTP server itself; that lives in httpServer and is configured via
// SetupHTTPServer.
type Server struct {
	Config *config.Config

	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	DB *database.Database

	Redis *redis.Client

	// Token issues and verifies identity tokens for the auth middleware.
	Token *token.Service

	// RateLimitStore holds the counting buckets shared by all limiters.
	// Memory by default; redis when configured for multi-instance setups.
	RateLimitStore ratelimit.Store

	// Job runs background workers and provides a client for enqueueing.
	Job *job.JobService

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies. The HTTP server
// itself is configured later via SetupHTTPServer and run via Start.
//
// A Redis connection failure does not block startup (the client stays usable
// once Redis recovers); a job worker failure does.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})
	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	var rateLimitStore ratelimit.Store
	if cfg.RateLimit.Store == "redis" {
		rateLimitStore = ratelimit.NewRedisStore(redisClient)
	} else {
		rateLimitStore = ratelimit.NewMemoryStore()
	}

	tokenService := token.NewService(
		cfg.Auth.SecretKey,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger)
	if err := jobService.Start(); err != nil {
		return nil, err
	}

	return &Server{
		Config:         cfg,
		Logger:         logger,
		LoggerService:  loggerService,
		DB:             db,
		Redis:          redisClient,
		Token:          tokenService,
		RateLimitStore: rateLimitStore,
		Job:            jobService,
	}, nil
}

// SetupHTTPServer configures the internal net/http server with the router
// and the transport-level timeouts from config. These timeouts are the only
// backstop for slow clients; the pipeline itself enforces none.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, the job workers and the
// datastore connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
