package webui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mmuteeullah/CamView/internal/config"
	"github.com/mmuteeullah/CamView/internal/health"
	"github.com/mmuteeullah/CamView/internal/viewer"
)

// Server represents the web UI server
type Server struct {
	config     *config.Config
	viewer     *viewer.Controller
	monitor    *health.Monitor
	limiter    *rate.Limiter
	logger     zerolog.Logger
	httpServer *http.Server
}

// NewServer creates a new web UI server
func NewServer(cfg *config.Config, ctrl *viewer.Controller, monitor *health.Monitor, logger zerolog.Logger) *Server {
	return &Server{
		config:  cfg,
		viewer:  ctrl,
		monitor: monitor,
		limiter: rate.NewLimiter(rate.Limit(cfg.Viewer.RefreshRate), cfg.Viewer.RefreshBurst),
		logger:  logger.With().Str("component", "webui").Logger(),
	}
}

// Handler builds the HTTP router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.monitor.HTTPHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/sidebar/toggle", s.handleToggleSidebar)
		r.Post("/video", s.handleVideo)
		r.Post("/links/refresh", s.handleRefresh)
		r.Post("/links/{index}/click", s.handleClick)
	})

	return r
}

// Start begins the web server. The returned channel receives the listener
// error if the server stops for any reason other than Shutdown.
func (s *Server) Start() <-chan error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Duration(s.config.Server.ReadHeaderTimeout) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info().Msgf("starting web UI on http://0.0.0.0%s", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("web server error")
			errCh <- err
		}
	}()
	return errCh
}

// Shutdown stops the web server, waiting for open requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs each request at debug level
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

type pageView struct {
	State          viewer.State
	FrameStyle     template.CSS
	CollapsedWidth int
	ExpandedWidth  int
}

// handleIndex refreshes the camera list, as a page load does, and renders the page.
// The refresh runs detached from the request; the page waits for it at most
// page_load_wait and otherwise renders the current list. Refreshes beyond the
// configured rate reuse the current list.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.limiter.Allow() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			s.viewer.Builder.Refresh(context.WithoutCancel(r.Context()))
		}()

		timer := time.NewTimer(s.config.Viewer.PageLoadWaitDuration())
		select {
		case <-done:
		case <-timer.C:
			s.logger.Debug().Msg("camera list still loading, rendering current list")
		case <-r.Context().Done():
		}
		timer.Stop()
	} else {
		s.logger.Debug().Msg("page load refresh rate limited")
	}

	state := s.viewer.Page.Snapshot()
	view := pageView{
		State: state,
		// Left and Width are produced by viewer.UpdateFrameWidth from integers.
		FrameStyle:     template.CSS(fmt.Sprintf("left: %s; width: %s;", state.Frame.Left, state.Frame.Width)),
		CollapsedWidth: s.config.Viewer.CollapsedWidth,
		ExpandedWidth:  s.config.Viewer.ExpandedWidth,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, view); err != nil {
		s.logger.Error().Err(err).Msg("rendering page")
	}
}

// handleState returns the page state as JSON
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w)
}

// handleToggleSidebar flips the sidebar and returns the new layout
func (s *Server) handleToggleSidebar(w http.ResponseWriter, r *http.Request) {
	s.viewer.Sidebar.Toggle()
	s.writeState(w)
}

// handleVideo points the video frame at the posted URL
func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Src string `json:"src"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.viewer.Switcher.Switch(req.Src)
	s.writeState(w)
}

// handleClick runs the click action of a rendered link
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid link index")
		return
	}

	if !s.viewer.Click(index) {
		writeError(w, http.StatusNotFound, "no such link")
		return
	}
	s.writeState(w)
}

// handleRefresh rebuilds the camera list and reports failures to the caller
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	n, err := s.viewer.Builder.Build(r.Context())
	switch {
	case errors.Is(err, viewer.ErrSuperseded):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		s.logger.Error().Err(err).Msg("camera list refresh failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"cameras": n,
	})
}

func (s *Server) writeState(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.viewer.Page.Snapshot())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
