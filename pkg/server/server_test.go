package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/recipes/internal/edamam"
	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/middleware"
	"github.com/vango-dev/recipes/pkg/protocol"
	"github.com/vango-dev/recipes/pkg/recipes"
)

// fakeSearcher answers every search with list. While hold is non-nil the
// first search blocks until its context is cancelled.
type fakeSearcher struct {
	mu       sync.Mutex
	searches []*recipes.Params
	nexts    []string
	list     *recipes.List
	recipe   *edamam.Recipe
	hold     chan struct{}
}

func (f *fakeSearcher) Search(ctx context.Context, p *recipes.Params) (*recipes.List, error) {
	f.mu.Lock()
	f.searches = append(f.searches, p)
	first := len(f.searches) == 1
	f.mu.Unlock()

	if first && f.hold != nil {
		close(f.hold)
		<-ctx.Done()
		return nil, errors.New("E201").Wrap(ctx.Err())
	}
	return f.list, nil
}

func (f *fakeSearcher) Next(ctx context.Context, href string) (*recipes.List, error) {
	f.mu.Lock()
	f.nexts = append(f.nexts, href)
	f.mu.Unlock()
	if href == "" {
		return nil, errors.New("E201").WithDetail("The result list has no next page.")
	}
	return &recipes.List{From: 20, To: 40, Count: 100, Hits: []recipes.Hit{}}, nil
}

func (f *fakeSearcher) Recipe(ctx context.Context, id string) (*edamam.Recipe, error) {
	if f.recipe == nil || f.recipe.ID() != id {
		return nil, errors.New("E204").WithDetailf("No recipe with id %q.", id)
	}
	return f.recipe, nil
}

func (f *fakeSearcher) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

func (f *fakeSearcher) lastSearch() *recipes.Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.searches) == 0 {
		return nil
	}
	return f.searches[len(f.searches)-1]
}

func page() *recipes.List {
	return &recipes.List{
		From:  0,
		To:    1,
		Count: 1,
		Hits: []recipes.Hit{{
			Recipe: recipes.RecipeRef{URI: "http://www.edamam.com/ontologies/edamam.owl#recipe_abc", Label: "Soup"},
		}},
		Next: recipes.Link{Href: "https://api.example/next", Title: "Next page"},
	}
}

func quietConfig() *ServerConfig {
	cfg := DefaultServerConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

func newTestServer(t *testing.T, searcher Searcher, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(quietConfig(), searcher, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Sessions().Shutdown(ctx)
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, location string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_ws?u=" + url.QueryEscape(location)
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, op protocol.Op, payload any) {
	t.Helper()
	d, err := protocol.NewDispatch(op, payload)
	if err != nil {
		t.Fatalf("NewDispatch() error: %v", err)
	}
	data, err := d.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("WriteMessage() error: %v", err)
	}
}

// readUntil reads frames until match accepts one, and returns every frame
// read so far.
func readUntil(t *testing.T, conn *websocket.Conn, match func(*protocol.Frame) bool) []*protocol.Frame {
	t.Helper()
	var frames []*protocol.Frame
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage() error after %d frames: %v", len(frames), err)
		}
		f, err := protocol.DecodeFrame(data)
		if err != nil {
			t.Fatalf("DecodeFrame() error: %v", err)
		}
		frames = append(frames, f)
		if match(f) {
			return frames
		}
	}
}

func stateOf(t *testing.T, f *protocol.Frame) *protocol.State {
	t.Helper()
	var s protocol.State
	if err := json.Unmarshal(f.Data, &s); err != nil {
		t.Fatalf("state Unmarshal() error: %v", err)
	}
	return &s
}

func isState(pred func(*protocol.State) bool) func(*protocol.Frame) bool {
	return func(f *protocol.Frame) bool {
		if f.Type != protocol.FrameState {
			return false
		}
		var s protocol.State
		if json.Unmarshal(f.Data, &s) != nil {
			return false
		}
		return pred(&s)
	}
}

func isType(t protocol.FrameType) func(*protocol.Frame) bool {
	return func(f *protocol.Frame) bool { return f.Type == t }
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok\n" {
		t.Errorf("got %d %q, want 200 %q", resp.StatusCode, body, "ok\n")
	}
}

func TestPages(t *testing.T) {
	searcher := &fakeSearcher{recipe: &edamam.Recipe{
		URI:             "http://www.edamam.com/ontologies/edamam.owl#recipe_abc",
		Label:           "Tomato Soup",
		IngredientLines: []string{"4 tomatoes"},
	}}
	_, ts := newTestServer(t, searcher)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   []string
	}{
		{"home", "/", http.StatusOK, []string{`action="/recipes"`, `<option value="Dinner">Dinner</option>`}},
		{"search keeps filters", "/recipes?mealType=Dinner&diet=balanced", http.StatusOK,
			[]string{`<option value="Dinner" selected>`, `<option value="balanced" selected>`, `id="hits"`}},
		{"search bad query", "/recipes?calories=lots", http.StatusBadRequest, []string{`class="error"`}},
		{"recipe", "/recipes/abc", http.StatusOK, []string{"<h1>Tomato Soup</h1>", "<li>4 tomatoes</li>"}},
		{"recipe not found", "/recipes/nope", http.StatusNotFound, []string{"Recipe not found"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("GET %s error: %v", tt.path, err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			for _, want := range tt.wantBody {
				if !strings.Contains(string(body), want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}
}

func TestRecipePageWithoutSearcher(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/recipes/abc")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestMetricsRoute(t *testing.T) {
	m := middleware.NewMetrics(middleware.WithRegistry(prometheus.NewRegistry()))
	_, ts := newTestServer(t, nil, WithMetrics(m))

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	want := `recipes_http_requests_total{code="200",method="GET",route="/healthz"} 1`
	if !strings.Contains(string(body), want) {
		t.Errorf("metrics missing %q", want)
	}
}

func TestWebSocketInitialState(t *testing.T) {
	_, ts := newTestServer(t, &fakeSearcher{list: page()})
	conn := dial(t, ts, "/")

	frames := readUntil(t, conn, isType(protocol.FrameState))
	s := stateOf(t, frames[0])
	if s.Loading || s.Error.IsSet() || s.ID.IsSet() || s.Query != "" || s.List.Count != 0 {
		t.Errorf("initial state = %+v, want zero", s)
	}
	if frames[0].Seq != 1 {
		t.Errorf("seq = %d, want 1", frames[0].Seq)
	}
}

func TestWebSocketHydratesAndSearches(t *testing.T) {
	searcher := &fakeSearcher{list: page()}
	_, ts := newTestServer(t, searcher)
	conn := dial(t, ts, "/recipes?mealType=Dinner")

	frames := readUntil(t, conn, isState(func(s *protocol.State) bool {
		return s.List.Count == 1 && !s.Loading
	}))
	for _, f := range frames {
		if f.Type == protocol.FrameURL {
			t.Errorf("hydration wrote the address: %s", f.Data)
		}
	}
	last := stateOf(t, frames[len(frames)-1])
	if last.Query != "mealType=Dinner" {
		t.Errorf("query = %q, want %q", last.Query, "mealType=Dinner")
	}
	if got := searcher.lastSearch().Encode(); got != "mealType=Dinner" {
		t.Errorf("searched %q, want %q", got, "mealType=Dinner")
	}
}

func TestWebSocketFocusFromRecipePath(t *testing.T) {
	_, ts := newTestServer(t, &fakeSearcher{})
	conn := dial(t, ts, "/recipes/abc")

	frames := readUntil(t, conn, isType(protocol.FrameState))
	if id, _ := stateOf(t, frames[0]).ID.Get(); id != "abc" {
		t.Errorf("id = %q, want %q", id, "abc")
	}
}

func TestWebSocketParamsUpdateNavigates(t *testing.T) {
	_, ts := newTestServer(t, &fakeSearcher{})
	conn := dial(t, ts, "/recipes")
	readUntil(t, conn, isType(protocol.FrameState))

	send(t, conn, protocol.OpParamsUpdate, map[string]any{"mealType": "Lunch", "diet": []string{"balanced"}})

	frames := readUntil(t, conn, isType(protocol.FrameURL))
	if len(frames) != 2 || frames[0].Type != protocol.FrameState {
		t.Fatalf("frames = %d, want state then url", len(frames))
	}
	var patch protocol.URLPatch
	if err := json.Unmarshal(frames[1].Data, &patch); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if patch.Mode != "replace" || patch.Query != "diet=balanced&mealType=Lunch" {
		t.Errorf("patch = %+v, want replace diet=balanced&mealType=Lunch", patch)
	}
	if frames[1].Seq != frames[0].Seq+1 {
		t.Errorf("seq %d after %d", frames[1].Seq, frames[0].Seq)
	}
}

func TestWebSocketStatusDoesNotNavigate(t *testing.T) {
	_, ts := newTestServer(t, &fakeSearcher{})
	conn := dial(t, ts, "/recipes")
	readUntil(t, conn, isType(protocol.FrameState))

	send(t, conn, protocol.OpLoading, true)
	send(t, conn, protocol.OpParamsClear, nil)
	send(t, conn, protocol.OpID, "xyz")

	frames := readUntil(t, conn, isState(func(s *protocol.State) bool { return s.ID.IsSet() }))
	for _, f := range frames {
		if f.Type == protocol.FrameURL {
			t.Errorf("unexpected url frame %s", f.Data)
		}
	}
}

func TestWebSocketBadDispatch(t *testing.T) {
	_, ts := newTestServer(t, &fakeSearcher{})
	conn := dial(t, ts, "/")
	readUntil(t, conn, isType(protocol.FrameState))

	tests := []struct {
		name string
		msg  string
		code string
	}{
		{"malformed", `{"op":`, "E301"},
		{"unknown op", `{"op":"params.merge"}`, "E302"},
		{"bad payload", `{"op":"loading","payload":"yes"}`, "E303"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.msg)); err != nil {
				t.Fatalf("WriteMessage() error: %v", err)
			}
			frames := readUntil(t, conn, isType(protocol.FrameError))
			var em protocol.ErrorMessage
			if err := json.Unmarshal(frames[len(frames)-1].Data, &em); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if em.Code != tt.code || em.Fatal {
				t.Errorf("got %+v, want non-fatal %s", em, tt.code)
			}
		})
	}

	// The connection survives bad messages.
	send(t, conn, protocol.OpLoading, true)
	readUntil(t, conn, isState(func(s *protocol.State) bool { return s.Loading }))
}

func TestWebSocketSearchWithPayload(t *testing.T) {
	searcher := &fakeSearcher{list: page()}
	_, ts := newTestServer(t, searcher)
	conn := dial(t, ts, "/recipes")
	readUntil(t, conn, isType(protocol.FrameState))

	send(t, conn, protocol.OpSearch, map[string]any{"dishType": "Soup", "calories": "100-300"})

	frames := readUntil(t, conn, isState(func(s *protocol.State) bool { return s.List.Count == 1 && !s.Loading }))
	var sawLoading, sawURL bool
	for _, f := range frames {
		switch f.Type {
		case protocol.FrameState:
			sawLoading = sawLoading || stateOf(t, f).Loading
		case protocol.FrameURL:
			sawURL = true
		}
	}
	if !sawLoading {
		t.Error("no loading state before results")
	}
	if !sawURL {
		t.Error("search params were not written to the address")
	}
	if got := searcher.lastSearch().Encode(); got != "calories=100-300&dishType=Soup" {
		t.Errorf("searched %q, want %q", got, "calories=100-300&dishType=Soup")
	}
}

func TestWebSocketNextFollowsLink(t *testing.T) {
	searcher := &fakeSearcher{list: page()}
	_, ts := newTestServer(t, searcher)
	conn := dial(t, ts, "/recipes?dishType=Soup")
	readUntil(t, conn, isState(func(s *protocol.State) bool { return s.List.Count == 1 && !s.Loading }))

	send(t, conn, protocol.OpNext, nil)
	readUntil(t, conn, isState(func(s *protocol.State) bool { return s.List.From == 20 && !s.Loading }))

	searcher.mu.Lock()
	defer searcher.mu.Unlock()
	if len(searcher.nexts) != 1 || searcher.nexts[0] != "https://api.example/next" {
		t.Errorf("next calls = %v", searcher.nexts)
	}
}

func TestWebSocketNextWithoutLinkFails(t *testing.T) {
	_, ts := newTestServer(t, &fakeSearcher{})
	conn := dial(t, ts, "/recipes")
	readUntil(t, conn, isType(protocol.FrameState))

	send(t, conn, protocol.OpNext, nil)
	frames := readUntil(t, conn, isState(func(s *protocol.State) bool { return s.Error.IsSet() && !s.Loading }))
	msg, _ := stateOf(t, frames[len(frames)-1]).Error.Get()
	if msg != edamam.Message(errors.New("E201")) {
		t.Errorf("error = %q", msg)
	}
}

func TestWebSocketNextStaysOnAPIHost(t *testing.T) {
	var foreign atomic.Int32
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreign.Add(1)
		w.Write([]byte(`{"from":1,"to":1,"count":1,"hits":[]}`))
	}))
	defer other.Close()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"from":1,"to":20,"count":100,"hits":[]}`))
	}))
	defer api.Close()

	_, ts := newTestServer(t, edamam.New(api.URL, "id", "key"))
	conn := dial(t, ts, "/recipes")
	readUntil(t, conn, isType(protocol.FrameState))

	send(t, conn, protocol.OpListSet, map[string]any{
		"from":  0,
		"to":    0,
		"count": 0,
		"hits":  []any{},
		"next":  map[string]string{"href": other.URL + "/admin/secret", "title": "next"},
	})
	readUntil(t, conn, isState(func(s *protocol.State) bool { return s.List.Next.Href != "" }))

	send(t, conn, protocol.OpNext, nil)
	frames := readUntil(t, conn, isState(func(s *protocol.State) bool { return s.Error.IsSet() && !s.Loading }))
	msg, _ := stateOf(t, frames[len(frames)-1]).Error.Get()
	if msg != edamam.Message(errors.New("E201")) {
		t.Errorf("error = %q", msg)
	}
	if n := foreign.Load(); n != 0 {
		t.Errorf("foreign host received %d requests, want 0", n)
	}
}

func TestWebSocketSupersededSearchIsDropped(t *testing.T) {
	searcher := &fakeSearcher{list: page(), hold: make(chan struct{})}
	_, ts := newTestServer(t, searcher)
	conn := dial(t, ts, "/recipes")
	readUntil(t, conn, isType(protocol.FrameState))

	send(t, conn, protocol.OpSearch, nil)
	<-searcher.hold
	send(t, conn, protocol.OpSearch, map[string]any{"mealType": "Snack"})

	frames := readUntil(t, conn, isState(func(s *protocol.State) bool { return s.List.Count == 1 && !s.Loading }))
	last := stateOf(t, frames[len(frames)-1])
	if last.Error.IsSet() {
		t.Errorf("error = %v, want none from the cancelled search", last.Error)
	}
	if searcher.searchCount() != 2 {
		t.Errorf("searches = %d, want 2", searcher.searchCount())
	}
}

func TestWebSocketSearchWithoutSearcher(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "/recipes")
	readUntil(t, conn, isType(protocol.FrameState))

	send(t, conn, protocol.OpSearch, nil)
	frames := readUntil(t, conn, isType(protocol.FrameError))
	var em protocol.ErrorMessage
	_ = json.Unmarshal(frames[len(frames)-1].Data, &em)
	if em.Message != ErrNoSearcher.Error() {
		t.Errorf("message = %q, want %q", em.Message, ErrNoSearcher.Error())
	}
}

func TestSessionLifecycle(t *testing.T) {
	m := middleware.NewMetrics(middleware.WithRegistry(prometheus.NewRegistry()))
	srv, ts := newTestServer(t, &fakeSearcher{}, WithMetrics(m))

	conn := dial(t, ts, "/")
	readUntil(t, conn, isType(protocol.FrameState))
	if got := srv.Sessions().Count(); got != 1 {
		t.Fatalf("sessions = %d, want 1", got)
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitFor(t, "session removal", func() bool { return srv.Sessions().Count() == 0 })
}

func TestMaxSessions(t *testing.T) {
	cfg := quietConfig()
	cfg.MaxSessions = 1
	srv := New(cfg, &fakeSearcher{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	defer srv.Sessions().Shutdown(context.Background())

	conn := dial(t, ts, "/")
	readUntil(t, conn, isType(protocol.FrameState))

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_ws"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatal("second Dial() succeeded, want rejection")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("response = %v, want 503", resp)
	}
}

func TestShutdownClosesSessions(t *testing.T) {
	srv := New(quietConfig(), &fakeSearcher{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dial(t, ts, "/")
	readUntil(t, conn, isType(protocol.FrameState))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
	if got := srv.Sessions().Count(); got != 0 {
		t.Errorf("sessions = %d, want 0", got)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("ReadMessage() error = %v, want normal closure", err)
	}
}
