package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mmuteeullah/CamView/internal/camera"
	"github.com/mmuteeullah/CamView/internal/config"
	"github.com/mmuteeullah/CamView/internal/health"
	"github.com/mmuteeullah/CamView/internal/viewer"
	"github.com/mmuteeullah/CamView/internal/webui"
)

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog := setupLogging(cfg.System, cmd.ErrOrStderr())
	defer closeLog()

	logger.Info().Msgf("starting CamView v%s", version)
	logger.Info().Msgf("camera list source: %s", cfg.Viewer.Source)
	logger.Info().Msgf("camera proxy: %s:%d", cfg.Viewer.ProxyHost, cfg.Viewer.ProxyPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctrl := viewer.NewController(
		viewer.NewSource(cfg.Viewer.Source, cfg.Viewer.FetchTimeoutDuration()),
		camera.ProxyTemplate{Host: cfg.Viewer.ProxyHost, Port: cfg.Viewer.ProxyPort},
		viewer.Layout{CollapsedWidth: cfg.Viewer.CollapsedWidth, ExpandedWidth: cfg.Viewer.ExpandedWidth},
		cfg.Viewer.StartCollapsed,
		logger,
	)

	monitor := health.NewMonitor(version, cfg.Viewer.Source, logger)
	ctrl.Builder.SetObserver(monitor)

	// Initial build so the first page load already has links
	ctrl.Builder.Refresh(ctx)

	if interval := cfg.Viewer.RefreshIntervalDuration(); interval > 0 {
		go startRefresher(ctx, ctrl.Builder, interval, logger)
	}

	if cfg.System.HealthCheckInterval > 0 {
		go monitor.BackgroundMonitor(ctx, time.Duration(cfg.System.HealthCheckInterval)*time.Second)
	}

	webServer := webui.NewServer(cfg, ctrl, monitor, logger)
	serveErr := webServer.Start()

	// Wait for shutdown signal or a listener failure
	select {
	case sig := <-sigChan:
		logger.Info().Msgf("received signal %v, shutting down...", sig)
	case err := <-serveErr:
		return fmt.Errorf("web server: %w", err)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := webServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("web server shutdown error")
	}

	logger.Info().Msg("CamView shutdown complete")
	return nil
}

// startRefresher rebuilds the camera list periodically
func startRefresher(ctx context.Context, builder *viewer.Builder, interval time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", interval).Msg("background camera list refresh enabled")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			builder.Refresh(ctx)
		}
	}
}
