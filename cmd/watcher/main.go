package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"league-watcher/internal/config"
	"league-watcher/internal/constants"
	"league-watcher/internal/engine"
	fxmodules "league-watcher/internal/fx"
	"league-watcher/internal/httpapi"
	"league-watcher/internal/middleware"
	"league-watcher/internal/supervisor"
	"league-watcher/internal/ws"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
		fx.Invoke(runLoops),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	handlers *httpapi.Handlers,
	stream *ws.Handler,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := middleware.RequestID(logger)(c.Handler(httpapi.SetupRoutes(handlers, stream)))

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%s", cfg.ServerPort),
		Handler: handler,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

// runLoops starts the two long-running units of work: the connection
// supervisor and the single automation engine loop.
func runLoops(
	lc fx.Lifecycle,
	sup *supervisor.Supervisor,
	eng *engine.Engine,
	logger zerolog.Logger,
) {
	var cancel context.CancelFunc
	var group *errgroup.Group

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			loopCtx, loopCancel := context.WithCancel(context.Background())
			cancel = loopCancel
			group, loopCtx = errgroup.WithContext(loopCtx)

			group.Go(func() error { return sup.Run(loopCtx) })
			group.Go(func() error { return eng.Run(loopCtx) })
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			if err := group.Wait(); err != nil {
				logger.Error().Err(err).Msg("loop exited with error")
				return err
			}
			return nil
		},
	})
}
