package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mmuteeullah/CamView/internal/config"
)

var (
	version = "0.1.0"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("execute root command")
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "camview",
		Short:        "Camera viewer: sidebar of camera links next to a proxied video frame",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "/etc/camview/config.yaml", "path to configuration file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the viewer page (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd, configPath)
			},
		},
		&cobra.Command{
			Use:   "cameras",
			Short: "Fetch the camera list once and print each camera with its proxy URL",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCameras(cmd, configPath)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show version and exit",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "CamView v%s\n", version)
			},
		},
	)

	return rootCmd
}

// setupLogging configures the global zerolog logger from the system config.
// The returned closer releases the log file, if one was opened.
func setupLogging(cfg config.SystemConfig, stderr io.Writer) (zerolog.Logger, func()) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = stderr
	closer := func() {}

	// If log file is specified, create/open it
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(stderr, "failed to open log file %s: %v, using stderr\n", cfg.LogFile, err)
		} else {
			out = logFile
			closer = func() { logFile.Close() }
		}
	}

	if cfg.LogFormat != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime, NoColor: cfg.LogFile != ""}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	if level == zerolog.DebugLevel || level == zerolog.TraceLevel {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger
	return logger, closer
}
