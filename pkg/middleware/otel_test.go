package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/recipes/pkg/recipes"
)

type recordedSpan struct {
	noop.Span
	name   string
	kind   trace.SpanKind
	attrs  []attribute.KeyValue
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordedSpan) IsRecording() bool                             { return !s.ended }
func (s *recordedSpan) SetName(name string)                           { s.name = name }
func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue)        { s.attrs = append(s.attrs, kv...) }
func (s *recordedSpan) SetStatus(code codes.Code, _ string)           { s.status = code }
func (s *recordedSpan) End(...trace.SpanEndOption)                    { s.ended = true }
func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }

func (s *recordedSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, kind: cfg.SpanKind(), attrs: cfg.Attributes()}
	t.mu.Lock()
	t.spans = append(t.spans, s)
	t.mu.Unlock()
	return trace.ContextWithSpan(ctx, s), s
}

type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func (p recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer { return p.tracer }

func newRecordingProvider() (recordingProvider, *recordingTracer) {
	t := &recordingTracer{}
	return recordingProvider{tracer: t}, t
}

func TestTracingNamesSpanAfterRoute(t *testing.T) {
	tp, tracer := newRecordingProvider()

	var inHandler trace.Span
	r := chi.NewRouter()
	r.Use(Tracing(WithTracerProvider(tp)))
	r.Get("/recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		inHandler = SpanFromContext(r.Context())
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recipes/abc", nil))

	if len(tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tracer.spans))
	}
	s := tracer.spans[0]
	if s.name != "GET /recipes/{id}" {
		t.Errorf("name = %q, want %q", s.name, "GET /recipes/{id}")
	}
	if s.kind != trace.SpanKindServer {
		t.Errorf("kind = %v, want server", s.kind)
	}
	if v, ok := s.attr("http.status_code"); !ok || v.AsInt64() != 200 {
		t.Errorf("http.status_code = %v, want 200", v.AsInt64())
	}
	if !s.ended {
		t.Error("span not ended")
	}
	if inHandler != trace.Span(s) {
		t.Error("handler did not see the request span")
	}
}

func TestTracingServerErrorStatus(t *testing.T) {
	tp, tracer := newRecordingProvider()
	h := Tracing(WithTracerProvider(tp))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := tracer.spans[0].status; got != codes.Error {
		t.Errorf("status = %v, want Error", got)
	}
}

func TestTracingFilterAndExtractor(t *testing.T) {
	tp, tracer := newRecordingProvider()
	h := Tracing(
		WithTracerProvider(tp),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/healthz" }),
		WithAttributeExtractor(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("custom", "yes")}
		}),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recipes", nil))

	if len(tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tracer.spans))
	}
	if v, ok := tracer.spans[0].attr("custom"); !ok || v.AsString() != "yes" {
		t.Errorf("custom = %q, want %q", v.AsString(), "yes")
	}
}

func TestTraceDispatch(t *testing.T) {
	tp, tracer := newRecordingProvider()
	hook := TraceDispatch(context.Background(),
		WithTracerProvider(tp),
		WithActionFilter(func(a recipes.Action) bool { return a.Slice() != recipes.SliceStatus }),
	)
	c := recipes.New(recipes.WithHook(hook))
	defer c.Dispose()

	c.Dispatch().Loading(true)
	c.Dispatch().List.Clear()

	if len(tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tracer.spans))
	}
	s := tracer.spans[0]
	if s.name != "recipes.dispatch list.clear" {
		t.Errorf("name = %q, want %q", s.name, "recipes.dispatch list.clear")
	}
	if v, _ := s.attr("recipes.changed"); v.AsBool() {
		t.Error("clearing the initial list reported a change")
	}
}

func TestEndSpan(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"ok", nil, codes.Ok},
		{"error", errors.New("boom"), codes.Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &recordedSpan{}
			EndSpan(s, tt.err)
			if s.status != tt.want {
				t.Errorf("got %v, want %v", s.status, tt.want)
			}
			if !s.ended {
				t.Error("span not ended")
			}
			if (tt.err != nil) != (len(s.errs) == 1) {
				t.Errorf("recorded errors = %v", s.errs)
			}
		})
	}
}

func TestSpanFromContextEmpty(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("got %v, want nil", span)
	}
}

func TestTraceContextDetaches(t *testing.T) {
	tp, _ := newRecordingProvider()
	ctx, cancel := context.WithCancel(context.Background())
	ctx, span := tp.Tracer("t").Start(ctx, "req")
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	cancel()

	got := TraceContext(r)
	if got.Err() != nil {
		t.Errorf("Err() = %v, want nil", got.Err())
	}
	if trace.SpanFromContext(got) != span {
		t.Error("span not carried")
	}
}
