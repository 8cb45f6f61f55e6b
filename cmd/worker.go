package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/novahq/nova-admin/internal/core/events"
	"github.com/novahq/nova-admin/internal/weather"
	weatherpg "github.com/novahq/nova-admin/internal/weather/postgres"
	"github.com/novahq/nova-admin/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers like the weather refresh poller.`,
}

// Weather poller command
var weatherWorkerCmd = &cobra.Command{
	Use:   "weather",
	Short: "Start the weather refresh poller",
	Long:  `Periodically refresh every monitored location from the upstream weather provider`,
	Run: func(cmd *cobra.Command, args []string) {
		startWeatherWorker()
	},
}

// Event Bus worker command
var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus `,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var refreshInterval time.Duration

func startWeatherWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	gormDB, err := initGormDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize orm: %v\n", err)
		os.Exit(1)
	}

	// Flag overrides the configured interval when provided.
	interval := config.Weather.RefreshInterval
	if refreshInterval > 0 {
		interval = refreshInterval
	}

	bus := events.NewEventBus(lg)
	provider := weather.NewHTTPProvider(config.Weather, lg)
	service := weather.NewService(weatherpg.NewLocationRepository(gormDB), provider, bus, lg)

	lg.Info("starting weather poller",
		"interval", interval.String(),
		"provider_url", config.Weather.ProviderURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Sweep once on startup so a fresh deployment has current readings.
	if err := service.RefreshAll(ctx); err != nil {
		lg.Error("initial refresh sweep failed", "error", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := service.RefreshAll(ctx); err != nil {
				lg.Error("refresh sweep failed", "error", err)
			}
		case sig := <-sigChan:
			lg.Info("received signal, shutting down weather poller", "signal", sig)
			cancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer shutdownCancel()

			done := make(chan struct{})
			go func() {
				if sqlDB, err := gormDB.DB(); err == nil {
					_ = sqlDB.Close()
				}
				close(done)
			}()

			select {
			case <-done:
				lg.Info("weather poller shutdown complete")
			case <-shutdownCtx.Done():
				lg.Warn("shutdown timeout reached, forcing exit")
			}
			return
		}
	}
}

func startEventWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	eventBus := events.NewEventBus(lg)

	for _, eventType := range []string{
		events.EventTypeOverrideCreated,
		events.EventTypeOverrideReverted,
		events.EventTypeLocationRefreshed,
		events.EventTypeSnapshotRefreshed,
	} {
		eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			lg.Info("received event",
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"payload", event.Payload())
			return nil
		})
	}

	lg.Info("event bus worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	lg.Info("event bus is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	lg.Info("received signal, shutting down event bus", "signal", sig)
	lg.Info("event bus shutdown complete")
}

func init() {
	weatherWorkerCmd.Flags().DurationVar(&refreshInterval, "interval", 0, "Refresh interval (overrides config)")

	workerCmd.AddCommand(weatherWorkerCmd)
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
