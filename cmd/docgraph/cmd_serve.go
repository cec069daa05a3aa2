package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docgraph-labs/docgraph/internal/api"
	"github.com/docgraph-labs/docgraph/internal/config"
)

func newServeCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [paths...]",
		Short: "Analyze source files and serve the entity graph over HTTP",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, runner, err := runAnalysis(cmd, cfg, logger, args)
			if err != nil {
				return err
			}
			logger.Info("serving graph",
				slog.String("addr", cfg.Server.Addr()),
				slog.Int("entities", report.Entities))

			srv := &http.Server{
				Addr:         cfg.Server.Addr(),
				Handler:      api.NewRouter(logger, runner.Graph()),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
