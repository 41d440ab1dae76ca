package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"scout/pkg/config"
	"scout/pkg/draft"
	"scout/pkg/logger"
	"scout/pkg/state"
	"scout/pkg/webui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the settings HTTP server",
	Long: `Run the settings HTTP API with JWT authentication.

Set a password first:
  scout set-password

Then log in and edit settings over HTTP:
  curl -X POST localhost:18420/api/auth/login -d '{"password":"..."}'`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	app := fx.New(
		config.Module,
		logger.Module,
		state.Module,
		draft.Module,
		webui.Module,

		fx.Invoke(func(lc fx.Lifecycle, loader *config.Loader, cfg *config.Config, log *logger.Logger) {
			watcher := config.NewWatcher(loader, cfg)
			watcher.AddHandler(func(next *config.Config) error {
				if err := config.ValidateConfig(next); err != nil {
					log.Warn("Ignoring invalid config change", zap.Error(err))
					return err
				}
				cfg.UpdateFrom(next)
				log.Info("Config reloaded")
				return nil
			})
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error { return watcher.Start() },
				OnStop: func(context.Context) error {
					watcher.Stop()
					return nil
				},
			})
		}),
		fx.NopLogger,
	)

	if err := app.Start(ctx); err != nil {
		fmt.Printf("Error starting server: %v\n", err)
		os.Exit(1)
	}

	<-ctx.Done()

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Printf("Error stopping server: %v\n", err)
	}
}
