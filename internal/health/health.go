package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Status represents the health check status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// LinksHealth describes the camera link list builds
type LinksHealth struct {
	Source      string    `json:"source"`
	LastBuildID string    `json:"last_build_id,omitempty"`
	LastBuild   time.Time `json:"last_build"`
	LastSuccess time.Time `json:"last_success"`
	Cameras     int       `json:"cameras"`
	BuildCount  int       `json:"build_count"`
	ErrorCount  int       `json:"error_count"`
	LastError   string    `json:"last_error,omitempty"`
}

// SystemHealth represents process resource health
type SystemHealth struct {
	MemoryUsed    uint64     `json:"memory_used_bytes"`
	MemoryTotal   uint64     `json:"memory_total_bytes"`
	MemoryPercent float64    `json:"memory_percent"`
	LoadAverage   [3]float64 `json:"load_average"`
	Uptime        int64      `json:"uptime_seconds"`
	GoRoutines    int        `json:"goroutines"`
}

// HealthResponse represents the complete health check response
type HealthResponse struct {
	Status    Status          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	Uptime    time.Duration   `json:"uptime"`
	System    SystemHealth    `json:"system"`
	Links     LinksHealth     `json:"links"`
	Checks    map[string]bool `json:"checks"`
	Messages  []string        `json:"messages,omitempty"`
}

// Monitor handles health monitoring
type Monitor struct {
	mu        sync.RWMutex
	startTime time.Time
	version   string
	links     LinksHealth
	lastOK    bool
	logger    zerolog.Logger
}

// NewMonitor creates a new health monitor
func NewMonitor(version, source string, logger zerolog.Logger) *Monitor {
	return &Monitor{
		startTime: time.Now(),
		version:   version,
		links:     LinksHealth{Source: source},
		logger:    logger.With().Str("component", "health").Logger(),
	}
}

// RecordBuild records the outcome of a link list build
func (m *Monitor) RecordBuild(id string, entries int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.links.LastBuildID = id
	m.links.LastBuild = now
	m.links.BuildCount++

	if err != nil {
		m.links.ErrorCount++
		m.links.LastError = err.Error()
		m.lastOK = false
		return
	}

	m.links.LastSuccess = now
	m.links.Cameras = entries
	m.links.LastError = ""
	m.lastOK = true
}

// GetSystemHealth returns current process health metrics
func (m *Monitor) GetSystemHealth() SystemHealth {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	health := SystemHealth{
		MemoryUsed:    memStats.Alloc,
		MemoryTotal:   memStats.Sys,
		MemoryPercent: float64(memStats.Alloc) * 100 / float64(memStats.Sys),
		GoRoutines:    runtime.NumGoroutine(),
		Uptime:        int64(time.Since(m.startTime).Seconds()),
	}

	// Get load average
	if loadavg, err := os.ReadFile("/proc/loadavg"); err == nil {
		var l1, l5, l15 float64
		fmt.Sscanf(string(loadavg), "%f %f %f", &l1, &l5, &l15)
		health.LoadAverage = [3]float64{l1, l5, l15}
	}

	return health
}

// Check performs a complete health check
func (m *Monitor) Check() HealthResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()

	response := HealthResponse{
		Timestamp: time.Now(),
		Version:   m.version,
		Uptime:    time.Since(m.startTime),
		System:    m.GetSystemHealth(),
		Links:     m.links,
		Checks:    make(map[string]bool),
		Messages:  make([]string, 0),
	}

	everBuilt := !m.links.LastSuccess.IsZero()
	response.Checks["links_built"] = everBuilt
	response.Checks["last_build_ok"] = m.lastOK

	// Determine overall status
	switch {
	case !everBuilt:
		response.Status = StatusUnhealthy
		if m.links.BuildCount == 0 {
			response.Messages = append(response.Messages, "Camera list not built yet")
		} else {
			response.Messages = append(response.Messages, "Camera list never loaded: "+m.links.LastError)
		}
	case !m.lastOK:
		response.Status = StatusDegraded
		response.Messages = append(response.Messages, "Last camera list refresh failed: "+m.links.LastError)
	default:
		response.Status = StatusHealthy
	}

	return response
}

// HTTPHandler returns an HTTP handler for health checks
func (m *Monitor) HTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := m.Check()

		// Degraded still serves the last good list
		statusCode := http.StatusOK
		if health.Status == StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}

		if r.URL.Query().Get("detail") == "true" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(statusCode)
			json.NewEncoder(w).Encode(health)
		} else {
			w.WriteHeader(statusCode)
			if health.Status == StatusHealthy {
				w.Write([]byte("ok"))
			} else {
				w.Write([]byte(string(health.Status)))
			}
		}
	}
}

// BackgroundMonitor runs periodic health checks in the background
func (m *Monitor) BackgroundMonitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			health := m.Check()

			if health.Status != StatusHealthy {
				m.logger.Warn().
					Str("status", string(health.Status)).
					Strs("messages", health.Messages).
					Msg("health check warning")
			}

		case <-ctx.Done():
			return
		}
	}
}
