package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/recipes/internal/edamam"
	"github.com/vango-dev/recipes/pkg/middleware"
	"github.com/vango-dev/recipes/pkg/recipes"
)

// Searcher is the recipe search API as the server uses it. *edamam.Client
// implements it.
type Searcher interface {
	Search(ctx context.Context, p *recipes.Params) (*recipes.List, error)
	Next(ctx context.Context, href string) (*recipes.List, error)
	Recipe(ctx context.Context, id string) (*edamam.Recipe, error)
}

var _ Searcher = (*edamam.Client)(nil)

// Server is the HTTP/WebSocket server.
type Server struct {
	config   *ServerConfig
	searcher Searcher

	metrics *middleware.Metrics
	tracing []middleware.OTelOption
	traced  bool

	router   chi.Router
	sessions *SessionManager
	upgrader websocket.Upgrader
	pages    *pages

	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records HTTP, session, dispatch and fetch metrics in m and
// serves them at ServerConfig.MetricsPath.
func WithMetrics(m *middleware.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithTracing enables OpenTelemetry spans for requests, dispatches and
// search API calls.
func WithTracing(opts ...middleware.OTelOption) Option {
	return func(s *Server) {
		s.traced = true
		s.tracing = opts
	}
}

// New creates a server. searcher may be nil, in which case search ops
// report ErrNoSearcher and recipe pages show an error.
func New(config *ServerConfig, searcher Searcher, opts ...Option) *Server {
	config = config.withDefaults()
	logger := config.Logger.With("component", "server")

	s := &Server{
		config:   config,
		searcher: searcher,
		sessions: NewSessionManager(config.MaxSessions, logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		pages:  newPages(config.Name),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if s.metrics != nil {
		r.Use(s.metrics.HTTP)
	}
	if s.traced {
		r.Use(middleware.Tracing(s.tracing...))
	}
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/recipes", s.handleSearch)
	r.Get("/recipes/{id}", s.handleRecipe)
	r.Get("/_ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil && s.config.MetricsPath != "" {
		r.Handle(s.config.MetricsPath, s.metrics.Handler())
	}
	return r
}

// Handler returns the root handler.
//
// Example:
//
//	srv := server.New(server.DefaultServerConfig(), client)
//	http.ListenAndServe(":3000", srv.Handler())
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Full() {
		s.recordWSError("limit")
		http.Error(w, ErrMaxSessionsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.recordWSError("upgrade")
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	location, err := url.Parse(r.URL.Query().Get("u"))
	if err != nil {
		location = &url.URL{Path: "/"}
	}

	// Session spans hang off the upgrade request span.
	session := newSession(middleware.TraceContext(r), conn, s)
	if err := s.sessions.add(session); err != nil {
		s.recordWSError("limit")
		session.closeWith(err)
		return
	}
	session.registered.Store(true)
	if s.metrics != nil {
		s.metrics.RecordSessionOpen()
	}
	session.logger.Info("session created",
		"path", location.Path,
		"active_sessions", s.sessions.Count())

	session.start(location)
}

func (s *Server) sessionClosed(session *Session) {
	s.sessions.remove(session.ID)
	if s.metrics != nil {
		s.metrics.RecordSessionClose()
	}
}

func (s *Server) recordWSError(kind string) {
	if s.metrics != nil {
		s.metrics.RecordWebSocketError(kind)
	}
}

// Run listens on ServerConfig.Address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()
	s.logger.Info("server started", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown closes every session and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	start := time.Now()
	if err := s.sessions.Shutdown(ctx); err != nil {
		s.logger.Warn("session shutdown incomplete", "error", err)
	}
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.logger.Info("server stopped", "took", time.Since(start))
	return nil
}
