package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/recipes/internal/config"
	"github.com/vango-dev/recipes/pkg/urlparam"
)

// SessionConfig holds configuration for individual sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a message or pong from
	// the client.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings. It must be
	// shorter than ReadTimeout.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxQueue is the size of the event loop's post buffer.
	// Default: 64.
	MaxQueue int

	// URLMode is how search changes reach the browser history. The zero
	// value is urlparam.ModePush; DefaultSessionConfig uses ModeReplace.
	URLMode urlparam.URLMode
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxQueue:          64,
		URLMode:           urlparam.ModeReplace,
	}
}

// Clone returns a copy of the SessionConfig.
func (c *SessionConfig) Clone() *SessionConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// ServerConfig holds configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: "localhost:3000".
	Address string

	// Name is shown in page titles.
	Name string

	// ReadBufferSize is the WebSocket read buffer size.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	// Default: 4096.
	WriteBufferSize int

	// CheckOrigin is called to validate the request origin.
	// Default: same-origin only (gorilla's default).
	CheckOrigin func(r *http.Request) bool

	// SessionConfig is the configuration for individual sessions.
	// Default: DefaultSessionConfig().
	SessionConfig *SessionConfig

	// MaxSessions is the maximum number of concurrent sessions.
	// 0 means no limit.
	MaxSessions int

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 5 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout is http.Server.ReadHeaderTimeout.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// MetricsPath is where Prometheus metrics are served. Empty disables
	// the route even when metrics are collected.
	// Default: "/metrics".
	MetricsPath string

	// Logger is the server logger.
	// Default: slog.Default().
	Logger *slog.Logger
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           "localhost:3000",
		Name:              "recipes",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		SessionConfig:     DefaultSessionConfig(),
		ShutdownTimeout:   5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MetricsPath:       "/metrics",
		Logger:            slog.Default(),
	}
}

// FromConfig builds a ServerConfig from recipes.json settings.
func FromConfig(cfg *config.Config) *ServerConfig {
	c := DefaultServerConfig()
	c.Address = cfg.Address()
	c.Name = cfg.Name
	c.ShutdownTimeout = cfg.ShutdownTimeout()
	c.SessionConfig.URLMode = urlparam.ParseMode(cfg.Server.URLMode)
	if cfg.MetricsEnabled() {
		c.MetricsPath = cfg.Metrics.Path
	} else {
		c.MetricsPath = ""
	}
	return c
}

// withDefaults fills unset fields from DefaultServerConfig.
func (c *ServerConfig) withDefaults() *ServerConfig {
	defaults := DefaultServerConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.Name == "" {
		out.Name = defaults.Name
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = defaults.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = defaults.WriteBufferSize
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if out.Logger == nil {
		out.Logger = defaults.Logger
	}

	sc := out.SessionConfig.Clone()
	if sc == nil {
		sc = defaults.SessionConfig
	}
	ds := DefaultSessionConfig()
	if sc.ReadTimeout == 0 {
		sc.ReadTimeout = ds.ReadTimeout
	}
	if sc.WriteTimeout == 0 {
		sc.WriteTimeout = ds.WriteTimeout
	}
	if sc.HeartbeatInterval == 0 {
		sc.HeartbeatInterval = ds.HeartbeatInterval
	}
	if sc.MaxQueue == 0 {
		sc.MaxQueue = ds.MaxQueue
	}
	out.SessionConfig = sc
	return &out
}
