package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"scout/pkg/config"
	"scout/pkg/draft"
	"scout/pkg/logger"
	"scout/pkg/state"
	"scout/pkg/tui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Open the interactive settings panel",
	Long:  "Open the Bubble Tea settings panel for web-search providers.",
	Run:   runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) {
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

		fx.Invoke(func(lc fx.Lifecycle, log *logger.Logger, drafts *draft.Manager) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						defer cancel()

						updates, unsubscribe := drafts.Subscribe()
						defer unsubscribe()

						panel := tui.New(ctx, drafts, updates)
						if _, err := tea.NewProgram(panel, tea.WithAltScreen()).Run(); err != nil {
							log.Error("Settings panel terminated with error", zap.Error(err))
						}
					}()
					return nil
				},
			})
		}),
		fx.NopLogger,
	)

	if err := app.Start(ctx); err != nil {
		fmt.Printf("Error starting settings panel: %v\n", err)
		os.Exit(1)
	}

	<-ctx.Done()

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Printf("Error stopping settings panel: %v\n", err)
	}
}
