package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/recipes/pkg/recipes"
)

// Default tracer name for the recipes server.
const defaultTracerName = "recipes"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "recipes").
	TracerName string

	// Provider supplies the tracer. If nil, the global provider is used.
	Provider trace.TracerProvider

	// Filter determines which requests to trace.
	// If nil, all requests are traced.
	Filter func(r *http.Request) bool

	// AttributeExtractor extracts custom attributes from the request.
	AttributeExtractor func(r *http.Request) []attribute.KeyValue

	// ActionFilter determines which dispatched actions TraceDispatch records.
	// If nil, all actions are traced.
	ActionFilter func(a recipes.Action) bool

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(r *http.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(r *http.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// WithActionFilter sets a filter function for dispatched actions.
func WithActionFilter(filter func(a recipes.Action) bool) OTelOption {
	return func(c *OTelConfig) {
		c.ActionFilter = filter
	}
}

func resolveOTelConfig(opts []OTelOption) OTelConfig {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider != nil {
		config.tracer = config.Provider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}
	return config
}

// Tracing creates chi-compatible middleware that wraps every request in a
// server span.
//
// The span is named after the matched chi route once the handler returns,
// so /recipes/{id} is one span name for all ids. 5xx responses mark the
// span as an error.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before serving:
//
//	otel.SetTracerProvider(tp)
//	r.Use(middleware.Tracing())
func Tracing(opts ...OTelOption) func(http.Handler) http.Handler {
	config := resolveOTelConfig(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Filter != nil && !config.Filter(r) {
				next.ServeHTTP(w, r)
				return
			}

			attrs := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			}
			if id := chimw.GetReqID(r.Context()); id != "" {
				attrs = append(attrs, attribute.String("recipes.request_id", id))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(r)...)
			}

			ctx, span := config.tracer.Start(
				r.Context(),
				r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(ctx)
			next.ServeHTTP(ww, r)

			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					span.SetName(r.Method + " " + pattern)
					span.SetAttributes(attribute.String("http.route", pattern))
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

// TraceDispatch returns a container hook that records one span per
// dispatched action as a child of ctx.
func TraceDispatch(ctx context.Context, opts ...OTelOption) recipes.Hook {
	config := resolveOTelConfig(opts)

	return func(a recipes.Action, changed bool) {
		if config.ActionFilter != nil && !config.ActionFilter(a) {
			return
		}
		slice, kind := a.Slice().String(), strings.ToLower(a.Kind().String())
		_, span := config.tracer.Start(ctx,
			"recipes.dispatch "+slice+"."+kind,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("recipes.slice", slice),
				attribute.String("recipes.kind", kind),
				attribute.Bool("recipes.changed", changed),
			),
		)
		span.End()
	}
}

// StartSpan starts an internal span for work done on behalf of a session,
// such as a search API call. The caller ends the span with EndSpan.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(defaultTracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err, if any, and ends span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// SpanFromContext retrieves the current trace span from the context.
// Returns nil if no valid span is recorded there.
//
// Example:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    if span := middleware.SpanFromContext(r.Context()); span != nil {
//	        span.SetAttributes(attribute.Int("recipes.hits", n))
//	    }
//	}
func SpanFromContext(ctx context.Context) trace.Span {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() && !span.IsRecording() {
		return nil
	}
	return span
}

// TraceContext returns a context carrying the span of r but not its
// cancellation, for work that outlives the request.
func TraceContext(r *http.Request) context.Context {
	return trace.ContextWithSpan(context.Background(), trace.SpanFromContext(r.Context()))
}
