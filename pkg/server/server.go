package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	embedded "github.com/goliatone/go-rangeslider"
	"github.com/goliatone/go-rangeslider/pkg/components"
	"github.com/goliatone/go-rangeslider/pkg/host"
	"github.com/goliatone/go-rangeslider/pkg/manifest"
	"github.com/goliatone/go-rangeslider/pkg/nouislider"
	"github.com/goliatone/go-rangeslider/pkg/rangeslider"
	rendertemplate "github.com/goliatone/go-rangeslider/pkg/render/template"
	"github.com/goliatone/go-rangeslider/pkg/render/template/pongo"
)

const pageTemplate = "page"

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithManifest sets the control manifest used for the page and asset list.
func WithManifest(m manifest.Manifest) Option {
	return func(s *Server) {
		s.manifest = m
	}
}

// WithParameters sets the property bag every session starts from. It takes
// precedence over the manifest defaults.
func WithParameters(params host.Parameters) Option {
	return func(s *Server) {
		s.params = params.Clone()
	}
}

// WithRenderer overrides the template engine.
func WithRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithMetrics overrides the metric collectors.
func WithMetrics(metrics *Metrics) Option {
	return func(s *Server) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// Server hosts range slider controls for browsers.
type Server struct {
	cfg    Config
	logger *logrus.Entry

	mu       sync.RWMutex
	manifest manifest.Manifest
	params   host.Parameters
	registry *components.Registry

	renderer rendertemplate.TemplateRenderer
	metrics  *Metrics
	sessions *sessionStore
	upgrader websocket.Upgrader
	router   chi.Router
}

// New builds a server. Without WithParameters the manifest defaults, with
// cfg.Parameters applied over them, seed every session.
func New(cfg Config, opts ...Option) (*Server, error) {
	cfg = cfg.normalize()
	s := &Server{
		cfg:      cfg,
		sessions: newSessionStore(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	s.logger = s.logger.WithField("component", "server")

	if s.manifest.Constructor == "" {
		m, err := loadManifest(cfg.Manifest)
		if err != nil {
			return nil, err
		}
		s.manifest = m
	}
	if s.params == nil {
		params, err := s.manifest.Parameters(cfg.Parameters)
		if err != nil {
			return nil, fmt.Errorf("server: build parameters: %w", err)
		}
		s.params = params
	}
	if s.renderer == nil {
		engine, err := pongo.New(
			pongo.WithBaseDir(cfg.TemplateDir),
			pongo.WithFS(embedded.EmbeddedTemplates()),
		)
		if err != nil {
			return nil, fmt.Errorf("server: template engine: %w", err)
		}
		s.renderer = engine
	}
	if err := s.renderer.GlobalContext(map[string]any{
		"base_path":   cfg.BasePath,
		"socket_path": cfg.mountPath("/ws"),
	}); err != nil {
		return nil, fmt.Errorf("server: template globals: %w", err)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}

	s.registry = s.buildRegistry(s.manifest)

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     checkOrigin(cfg.AllowedOrigins),
	}
	s.router = s.routes()
	return s, nil
}

func loadManifest(path string) (manifest.Manifest, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return manifest.Default()
	}
	m, err := manifest.LoadFile(path)
	if err != nil {
		return manifest.Manifest{}, fmt.Errorf("server: %w", err)
	}
	return m, nil
}

func (s *Server) buildRegistry(m manifest.Manifest) *components.Registry {
	registry := components.NewDefaultRegistry()
	if res := m.Resources; len(res.Scripts) > 0 || len(res.Stylesheets) > 0 {
		scripts := append(slices.Clone(res.Scripts), s.cfg.mountPath("/assets/rangeslider.js"))
		registry.MustRegister(components.RangeSlider, components.RangeSliderDescriptor(res.Stylesheets, scripts))
	}
	return registry
}

// Reload swaps the manifest and property bag. Open sessions keep the bag
// they started with; new sessions and pages use the new one.
func (s *Server) Reload(m manifest.Manifest, params host.Parameters) {
	registry := s.buildRegistry(m)
	s.mu.Lock()
	s.manifest = m
	s.params = params.Clone()
	s.registry = registry
	s.mu.Unlock()
	s.logger.WithField("control", m.ID()).Info("control reloaded")
}

func (s *Server) snapshot() (manifest.Manifest, host.Parameters, *components.Registry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manifest, s.params.Clone(), s.registry
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Parameters returns a copy of the property bag sessions start from.
func (s *Server) Parameters() host.Parameters {
	_, params, _ := s.snapshot()
	return params
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	mount := func(r chi.Router) {
		r.Get("/", s.handlePage)
		r.Get("/ws", s.handleSocket)
		r.Get("/outputs", s.handleOutputs)
		r.Get("/healthz", s.handleHealth)
		r.Handle("/metrics", s.metrics.Handler())
		r.Handle("/assets/*", http.StripPrefix(s.cfg.mountPath("/assets/"), http.FileServer(http.FS(embedded.ClientAssetsFS()))))
	}
	if s.cfg.BasePath == "" {
		mount(r)
	} else {
		r.Route(s.cfg.BasePath, mount)
	}
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request served")
	})
}

// Render produces the standalone page for a fresh preview of the control.
func (s *Server) Render() (string, error) {
	m, params, registry := s.snapshot()
	id := newSessionID()
	runtime, _, _, err := hostControl(id, params, s.logger, func(rangeslider.Outputs) {})
	if err != nil {
		return "", fmt.Errorf("server: host preview: %w", err)
	}
	defer runtime.Stop()

	markup, err := registry.Render(components.RangeSlider, runtime.Container(), components.ComponentData{
		Template: s.renderer,
	})
	if err != nil {
		return "", err
	}

	stylesheets, scripts := registry.Assets([]string{components.RangeSlider})
	title := s.cfg.Title
	if title == "" {
		title = m.DisplayName
	}
	outputs := runtime.Outputs()
	return s.renderer.RenderTemplate(pageTemplate, map[string]any{
		"title":       title,
		"description": m.Description,
		"control_id":  m.ID(),
		"control":     markup,
		"stylesheets": stylesheets,
		"scripts":     scripts,
		"outputs": map[string]string{
			rangeslider.OutputSelectedLowerValue: formatOutput(outputs.SelectedLowerValue),
			rangeslider.OutputSelectedUpperValue: formatOutput(outputs.SelectedUpperValue),
		},
	})
}

func formatOutput(value float64) string {
	if math.IsNaN(value) {
		return "NaN"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.Render()
	if err != nil {
		s.logger.WithError(err).Error("render page")
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.len(),
	})
}

type outputsResponse struct {
	Session string              `json:"session"`
	Outputs rangeslider.Outputs `json:"outputs"`
}

func (s *Server) handleOutputs(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("session"))
	if id == "" {
		writeError(w, errMissingSession)
		return
	}
	sess, ok := s.sessions.get(id)
	if !ok {
		writeError(w, errUnknownSession)
		return
	}
	writeJSON(w, http.StatusOK, outputsResponse{Session: sess.ID, Outputs: sess.Outputs()})
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(s.cfg.MaxMessageSize)

	sess := &Session{ID: newSessionID(), conn: conn}
	sess.logger = s.logger.WithField("session", sess.ID)
	if err := sess.send(serverFrame{Type: FrameSession, Session: sess.ID}); err != nil {
		_ = conn.Close()
		return
	}

	_, params, _ := s.snapshot()
	runtime, control, slider, err := hostControl(sess.ID, params, sess.logger, func(outputs rangeslider.Outputs) {
		s.metrics.Notifications.Inc()
		sess.pushOutputs(outputs)
	})
	if err != nil {
		sess.logger.WithError(err).Error("host control")
		_ = sess.send(serverFrame{Type: FrameError, Error: "control failed to start"})
		_ = conn.Close()
		return
	}
	sess.runtime, sess.control, sess.slider = runtime, control, slider

	s.sessions.add(sess)
	s.metrics.ActiveSessions.Inc()
	sess.logger.Info("session opened")

	defer func() {
		if s.sessions.remove(sess.ID) {
			s.metrics.ActiveSessions.Dec()
		}
		sess.close()
		sess.logger.Info("session closed")
	}()

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.logger.WithError(err).Warn("session read failed")
			}
			return
		}
		if err := sess.apply(frame); err != nil {
			if errors.Is(err, nouislider.ErrDestroyed) {
				return
			}
			sess.logger.WithError(err).Debug("frame rejected")
			_ = sess.send(serverFrame{Type: FrameError, Session: sess.ID, Error: err.Error()})
			continue
		}
		s.metrics.UpdateEvents.Inc()
	}
}

// Shutdown closes every open session.
func (s *Server) Shutdown() {
	for _, sess := range s.sessions.drain() {
		s.metrics.ActiveSessions.Dec()
		sess.close()
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr).Info("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func checkOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, candidate := range allowed {
			if candidate == "*" || strings.EqualFold(candidate, origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}
