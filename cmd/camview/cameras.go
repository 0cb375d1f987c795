package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmuteeullah/CamView/internal/camera"
	"github.com/mmuteeullah/CamView/internal/config"
	"github.com/mmuteeullah/CamView/internal/viewer"
)

// runCameras prints the sorted camera list the viewer would render, one
// tab-separated label and proxy URL per line.
func runCameras(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	source := viewer.NewSource(cfg.Viewer.Source, cfg.Viewer.FetchTimeoutDuration())
	entries, err := viewer.Load(cmd.Context(), source)
	if err != nil {
		return err
	}

	proxy := camera.ProxyTemplate{Host: cfg.Viewer.ProxyHost, Port: cfg.Viewer.ProxyPort}
	out := cmd.OutOrStdout()
	for _, item := range viewer.Items(entries, proxy) {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", item.Text, item.Href); err != nil {
			return err
		}
	}
	return nil
}
