package server

import (
	"context"
	"log/slog"
	"net/url"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/recipes/internal/edamam"
	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/middleware"
	"github.com/vango-dev/recipes/pkg/protocol"
	"github.com/vango-dev/recipes/pkg/recipes"
	"github.com/vango-dev/recipes/pkg/urlparam"
)

// readLimit is the hard WebSocket message limit. Messages between
// protocol.MaxMessageSize and readLimit get a non-fatal E301; larger ones
// drop the connection.
const readLimit = 2 * protocol.MaxMessageSize

// Session is one WebSocket connection and the container behind it.
type Session struct {
	// Identity
	ID        string
	CreatedAt time.Time

	// Connection
	conn   *websocket.Conn
	mu     sync.Mutex // Protects conn writes
	closed atomic.Bool
	done   chan struct{}

	server    *Server
	config    *SessionConfig
	container *recipes.Container
	encoder   protocol.Encoder

	// posts carries the ticks of the event loop.
	posts chan func()

	// Owned by the event loop.
	sent       *recipes.Snapshot
	pendingURL []urlparam.Patch
	skipURL    bool
	fetchGen   uint64
	stopFetch  context.CancelFunc

	ctx        context.Context
	cancel     context.CancelFunc
	started    atomic.Bool
	registered atomic.Bool
	loops      sync.WaitGroup
	fetches    sync.WaitGroup

	logger *slog.Logger

	// Metrics
	dispatchCount atomic.Uint64
	bytesSent     atomic.Uint64
	bytesRecv     atomic.Uint64
}

func newSession(parent context.Context, conn *websocket.Conn, srv *Server) *Session {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		done:      make(chan struct{}),
		server:    srv,
		config:    srv.config.SessionConfig,
		posts:     make(chan func(), srv.config.SessionConfig.MaxQueue),
		ctx:       ctx,
		cancel:    cancel,
		logger:    srv.logger.With("session_id", id),
	}

	opts := []recipes.Option{
		recipes.WithLogger(s.logger),
		recipes.WithNavigator(urlparam.NewNavigator(s.queueURL), s.config.URLMode),
	}
	if srv.metrics != nil {
		opts = append(opts, recipes.WithHook(srv.metrics.DispatchHook()))
	}
	if srv.traced {
		opts = append(opts, recipes.WithHook(middleware.TraceDispatch(ctx, srv.tracing...)))
	}
	s.container = recipes.New(opts...)
	return s
}

// Container returns the session's container. Only the event loop may
// dispatch on it; other goroutines use Post.
func (s *Session) Container() *recipes.Container {
	return s.container
}

func (s *Session) start(location *url.URL) {
	s.started.Store(true)
	_ = s.Post(func() { s.hydrate(location) })

	s.loops.Add(3)
	go s.eventLoop()
	go s.readLoop()
	go s.pingLoop()
}

// Post queues fn to run as one tick on the event loop. It blocks while the
// queue is full and fails with ErrSessionClosed once the session closes.
//
// Never call Post from the event loop itself.
func (s *Session) Post(fn func()) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.posts <- fn:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// hydrate seeds the container from the page address: the query becomes the
// params, /recipes/{id} puts that recipe in focus, and a search page with a
// query starts a search.
func (s *Session) hydrate(location *url.URL) {
	d := s.container.Dispatch()
	s.skipURL = true

	p, err := recipes.DecodeQuery(location.Query())
	if err != nil {
		s.writeError(errors.New("E303").WithDetail("The page address has an invalid search parameter.").Wrap(err), false)
		p = recipes.NewParams()
	}
	if p.Len() > 0 {
		d.Params.Set(p)
	}
	if id, ok := recipeID(location.Path); ok {
		d.Focus(id)
	}
	if location.Path == "/recipes" && p.Len() > 0 {
		s.search()
	}
}

func recipeID(path string) (string, bool) {
	id, ok := strings.CutPrefix(path, "/recipes/")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// eventLoop runs ticks until the session closes. It is the only goroutine
// that dispatches on the container.
func (s *Session) eventLoop() {
	defer s.loops.Done()
	defer s.container.Dispose()

	for {
		select {
		case fn := <-s.posts:
			s.tick(fn)
		case <-s.done:
			return
		}
	}
}

func (s *Session) tick(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tick panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	s.container.Batch(fn)
	s.flush()
}

// flush writes what the last tick produced: a state frame if the snapshot
// changed, then the queued url frames.
func (s *Session) flush() {
	if s.closed.Load() {
		return
	}
	if state := s.container.State(); state != s.sent {
		data, err := s.encoder.State(state)
		if err != nil {
			s.logger.Error("state encode error", "error", err)
		} else if s.write(data) != nil {
			return
		}
		s.sent = state
	}

	patches := s.pendingURL
	s.pendingURL = nil
	if s.skipURL {
		s.skipURL = false
		return
	}
	for _, p := range patches {
		data, err := s.encoder.URL(p)
		if err != nil {
			s.logger.Error("url encode error", "error", err)
			continue
		}
		if s.write(data) != nil {
			return
		}
		if s.server.metrics != nil {
			s.server.metrics.RecordURLSync(p.Mode)
		}
	}
}

// queueURL is the navigator's sink. It runs inside a tick.
func (s *Session) queueURL(p urlparam.Patch) {
	s.pendingURL = append(s.pendingURL, p)
}

func (s *Session) handle(d *protocol.Dispatch) {
	s.dispatchCount.Add(1)

	if d.Op.Remote() {
		s.handleRemote(d)
		return
	}
	a, err := d.Action()
	if err != nil {
		s.writeError(err, false)
		return
	}
	s.container.Dispatch().Apply(a)
}

// handleRemote runs the ops that call the recipe API.
func (s *Session) handleRemote(d *protocol.Dispatch) {
	switch d.Op {
	case protocol.OpSearch:
		if d.HasPayload() {
			p, err := d.Params()
			if err != nil {
				s.writeError(err, false)
				return
			}
			s.container.Dispatch().Params.Update(p)
		}
		s.search()
	case protocol.OpNext:
		href := s.container.State().List.Next.Href
		s.fetch("next", func(ctx context.Context) (*recipes.List, error) {
			return s.server.searcher.Next(ctx, href)
		})
	}
}

func (s *Session) search() {
	p := s.container.State().Params
	s.fetch("search", func(ctx context.Context) (*recipes.List, error) {
		return s.server.searcher.Search(ctx, p)
	})
}

// fetch starts an API call on its own goroutine and cancels the previous
// one. Dispatches of a superseded call are dropped on the loop.
func (s *Session) fetch(op string, fetch edamam.Fetch) {
	if s.server.searcher == nil {
		s.writeError(ErrNoSearcher, false)
		return
	}
	if s.stopFetch != nil {
		s.stopFetch()
	}
	s.fetchGen++
	gen := s.fetchGen
	ctx, cancel := context.WithCancel(s.ctx)
	s.stopFetch = cancel

	post := func(fn func()) {
		_ = s.Post(func() {
			if gen == s.fetchGen {
				fn()
			}
		})
	}

	s.fetches.Add(1)
	go func() {
		defer s.fetches.Done()

		ctx := ctx
		var span trace.Span
		if s.server.traced {
			ctx, span = middleware.StartSpan(ctx, "recipes."+op,
				attribute.String("recipes.session_id", s.ID))
		}

		start := time.Now()
		err := edamam.Load(ctx, post, s.container.Dispatch(), fetch)
		if span != nil {
			middleware.EndSpan(span, err)
		}
		if s.server.metrics != nil {
			s.server.metrics.RecordFetch(op, time.Since(start), err)
		}
		if err != nil && ctx.Err() == nil {
			s.logger.Warn("fetch failed", "op", op, "error", err)
		}
	}()
}

// readLoop decodes client dispatches and posts them to the event loop. It
// closes the session when the connection ends.
func (s *Session) readLoop() {
	defer s.loops.Done()
	defer s.Close()

	s.conn.SetReadLimit(readLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived) && !s.closed.Load() {
				s.logger.Error("read error", "error", err)
				s.server.recordWSError("read")
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		s.bytesRecv.Add(uint64(len(msg)))

		d, err := protocol.Decode(msg)
		if err != nil {
			s.logger.Debug("dispatch decode error", "error", err)
			s.server.recordWSError("decode")
			if s.Post(func() { s.writeError(err, false) }) != nil {
				return
			}
			continue
		}
		if s.Post(func() { s.handle(d) }) != nil {
			return
		}
	}
}

// pingLoop sends heartbeat pings until the session closes.
func (s *Session) pingLoop() {
	defer s.loops.Done()

	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
			if err != nil {
				s.logger.Debug("ping error", "error", err)
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Session) writeError(err error, fatal bool) {
	data, encErr := s.encoder.Error(err, fatal)
	if encErr != nil {
		s.logger.Error("error encode error", "error", encErr)
		return
	}
	_ = s.write(data)
}

func (s *Session) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		if !s.closed.Load() {
			s.logger.Error("write error", "error", err)
			s.server.recordWSError("write")
			go s.Close()
		}
		return err
	}
	s.bytesSent.Add(uint64(len(data)))
	return nil
}

// Close gracefully closes the session.
func (s *Session) Close() {
	s.closeWith(nil)
}

// closeWith closes the session, first sending err as a fatal error frame
// when it is non-nil.
func (s *Session) closeWith(err error) {
	if err != nil && !s.closed.Load() {
		s.writeError(err, true)
	}
	if s.closed.Swap(true) {
		return
	}

	close(s.done)
	s.cancel()
	if !s.started.Load() {
		s.container.Dispose()
	}

	s.mu.Lock()
	_ = s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	_ = s.conn.Close()
	s.mu.Unlock()

	if s.registered.Load() {
		s.server.sessionClosed(s)
	}

	s.logger.Info("session closed",
		"dispatches", s.dispatchCount.Load(),
		"bytes_sent", s.bytesSent.Load(),
		"bytes_recv", s.bytesRecv.Load(),
		"duration", time.Since(s.CreatedAt))
}

// IsClosed returns whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session's goroutines and API calls have returned.
func (s *Session) Wait() {
	s.loops.Wait()
	s.fetches.Wait()
}

// SessionStats contains session statistics.
type SessionStats struct {
	ID         string
	CreatedAt  time.Time
	Dispatches uint64
	BytesSent  uint64
	BytesRecv  uint64
}

// Stats returns session statistics.
func (s *Session) Stats() SessionStats {
	return SessionStats{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		Dispatches: s.dispatchCount.Load(),
		BytesSent:  s.bytesSent.Load(),
		BytesRecv:  s.bytesRecv.Load(),
	}
}
