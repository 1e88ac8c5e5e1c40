package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidstat/pkg/cli/config"
	controller "github.com/secmon-lab/covidstat/pkg/controller/http"
	"github.com/secmon-lab/covidstat/pkg/usecase"
	"github.com/secmon-lab/covidstat/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		datasetCfg config.Dataset
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Load the dataset and start HTTP server",
		Flags: joinFlags(
			serverCfg.Flags(),
			datasetCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting covidstat server",
				slog.Any("server", serverCfg),
				slog.Any("dataset", datasetCfg),
			)

			httpCfg, err := serverCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "invalid server configuration")
			}

			// The dataset is loaded once, synchronously, before serving
			dataset, err := datasetCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load dataset")
			}

			statsUC := usecase.NewStatsUseCase(dataset)

			server, err := controller.NewServer(ctx, httpCfg, statsUC)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			serverErr := async.Go(ctx, "http-server", func(ctx context.Context) error {
				ctxlog.From(ctx).Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-serverErr:
				if err != nil {
					return goerr.Wrap(err, "HTTP server error", goerr.V("addr", serverCfg.Addr))
				}
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
