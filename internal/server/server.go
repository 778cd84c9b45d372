// Package server boots the catalog: configuration, storage, database,
// cache, the HTTP handler stack, and the background schedule. It owns
// the listen/serve lifecycle including graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/reqid"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/schedule"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

// Boot loads configuration and connects the backing services. Split
// out of Start so CLI commands that need the database but not the
// listener can reuse it.
func Boot() error {
	if err := config.Load(); err != nil {
		return err
	}

	if config.MongoLogShipping() {
		stop, err := logger.ShipToMongo(config.MongoURI(), config.MongoDB(), "logs")
		if err != nil {
			logger.Warn("log shipping disabled", "error", err)
		} else {
			shutdownHooks = append(shutdownHooks, stop)
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, catalog reads go to the database", "error", err)
	}
	storage.Connect()
	services.RegisterCacheInvalidation()
	return nil
}

var shutdownHooks []func()

// Handler builds the full middleware stack and route table.
func Handler() http.Handler {
	r := router.New()

	// Outermost to innermost: metrics first for accurate totals,
	// recovery before anything that can panic, request id before
	// anything that logs.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())
	r.Static("/uploads", config.StorageLocalRoot())

	routes.RegisterAPI(r)
	return r.Handler()
}

// Start boots the application, registers the nightly asset sweep and
// serves until SIGINT/SIGTERM, then drains in-flight requests.
func Start() error {
	if err := Boot(); err != nil {
		return err
	}

	sweeper := services.NewSweepService(repositories.NewProductRepository())
	schedule.Daily().At("02:30").Name("assets:sweep").WithoutOverlapping().Run(func() {
		if _, err := sweeper.Run(context.Background()); err != nil {
			logger.Error("asset sweep failed", "error", err)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	schedule.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("vastra listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown incomplete", "error", err)
		}
	}

	for _, hook := range shutdownHooks {
		hook()
	}
	if err := database.Disconnect(); err != nil {
		logger.Warn("mongo disconnect failed", "error", err)
	}
	return nil
}
