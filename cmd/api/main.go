package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/portal-platform/internal/config"
	"github.com/deppfellow/portal-platform/internal/handler"
	"github.com/deppfellow/portal-platform/internal/logger"
	"github.com/deppfellow/portal-platform/internal/middleware"
	"github.com/deppfellow/portal-platform/internal/repository"
	"github.com/deppfellow/portal-platform/internal/router"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/service"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger, loggerService, err := logger.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logger")
	}

	srv, err := server.New(cfg, appLogger, loggerService)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialize services")
	}

	middlewares := middleware.NewMiddlewares(srv)
	handlers := handler.NewHandlers(srv, services)

	e := router.New(srv, middlewares, handlers)
	srv.SetupHTTPServer(e)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if loggerService != nil {
		loggerService.Shutdown(5 * time.Second)
	}
}
