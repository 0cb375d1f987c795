package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Viewer ViewerConfig `yaml:"viewer"`
	System SystemConfig `yaml:"system"`
}

// ServerConfig defines web server settings
type ServerConfig struct {
	Port              int `yaml:"port"`
	ReadHeaderTimeout int `yaml:"read_header_timeout"` // seconds
}

// ViewerConfig defines the camera list source and page layout
type ViewerConfig struct {
	Source          string  `yaml:"source"` // URL or file path of the tab-separated camera list
	ProxyHost       string  `yaml:"proxy_host"`
	ProxyPort       int     `yaml:"proxy_port"`
	CollapsedWidth  int     `yaml:"collapsed_width"` // pixels
	ExpandedWidth   int     `yaml:"expanded_width"`  // pixels
	StartCollapsed  bool    `yaml:"start_collapsed"`
	FetchTimeout    int     `yaml:"fetch_timeout"`    // seconds, 0 = none
	RefreshInterval int     `yaml:"refresh_interval"` // seconds, 0 = disabled
	RefreshRate     float64 `yaml:"refresh_rate"`     // page-load refreshes per second
	RefreshBurst    int     `yaml:"refresh_burst"`
	PageLoadWait    int     `yaml:"page_load_wait"` // milliseconds a page load waits for its refresh
}

// SystemConfig defines system settings
type SystemConfig struct {
	LogLevel            string `yaml:"log_level"`
	LogFile             string `yaml:"log_file"`
	LogFormat           string `yaml:"log_format"`            // console or json
	HealthCheckInterval int    `yaml:"health_check_interval"` // seconds, 0 = disabled
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5,
		},
		Viewer: ViewerConfig{
			Source:         "cameras.txt",
			ProxyHost:      "192.168.129.200",
			ProxyPort:      8889,
			CollapsedWidth: 60,
			ExpandedWidth:  250,
			RefreshRate:    1,
			RefreshBurst:   3,
			PageLoadWait:   500,
		},
		System: SystemConfig{
			LogLevel:            "info",
			LogFormat:           "console",
			HealthCheckInterval: 60,
		},
	}
}

// Load reads and parses the configuration file. A missing file yields the
// defaults; any other read error is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Viewer.Source == "" {
		return fmt.Errorf("viewer.source is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Viewer.ProxyHost == "" {
		return fmt.Errorf("viewer.proxy_host is required")
	}

	if c.Viewer.ProxyPort < 1 || c.Viewer.ProxyPort > 65535 {
		return fmt.Errorf("viewer.proxy_port must be between 1 and 65535")
	}

	if c.Viewer.CollapsedWidth < 0 || c.Viewer.ExpandedWidth < 0 {
		return fmt.Errorf("sidebar widths must not be negative")
	}

	if c.System.HealthCheckInterval < 0 {
		return fmt.Errorf("system.health_check_interval must not be negative")
	}

	if c.Viewer.FetchTimeout < 0 || c.Viewer.RefreshInterval < 0 {
		return fmt.Errorf("fetch_timeout and refresh_interval must not be negative")
	}

	if c.Viewer.PageLoadWait < 0 {
		return fmt.Errorf("viewer.page_load_wait must not be negative")
	}

	if c.Viewer.RefreshRate <= 0 || c.Viewer.RefreshBurst < 1 {
		return fmt.Errorf("refresh_rate must be positive and refresh_burst at least 1")
	}

	switch c.System.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("system.log_format must be console or json")
	}

	return nil
}

// FetchTimeoutDuration returns the source fetch timeout; zero means none.
func (v ViewerConfig) FetchTimeoutDuration() time.Duration {
	return time.Duration(v.FetchTimeout) * time.Second
}

// RefreshIntervalDuration returns the background refresh period; zero disables it.
func (v ViewerConfig) RefreshIntervalDuration() time.Duration {
	return time.Duration(v.RefreshInterval) * time.Second
}

// PageLoadWaitDuration returns how long a page load waits for the list refresh
// it started before rendering the current list.
func (v ViewerConfig) PageLoadWaitDuration() time.Duration {
	return time.Duration(v.PageLoadWait) * time.Millisecond
}
